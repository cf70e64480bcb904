// Package main provides the CLI entry point for wifiqr-go.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vgqr/wifiqr-go/internal/log"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/config"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
	"github.com/vgqr/wifiqr-go/pkg/wifiqr/sheet"
)

var (
	configPath  string
	outputDir   string
	sheetName   string
	columnsSpec string
	security    string
	property    string
	stopOnError bool
	logLevel    string
	logJSON     bool

	manualSSID     string
	manualPassword string
	manualRoom     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wifiqr",
		Short:         "Generate printable WiFi QR codes from room credential spreadsheets",
		Long:          "wifiqr reads room/SSID/password tables from xlsx workbooks and renders\nstandardized, print-ready QR code images with property logos and captions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "Config file path (default: wifiqr.yaml in . or ~/.wifiqr)")
	pf.StringVarP(&outputDir, "output-dir", "o", "", "Directory for generated images")
	pf.StringVarP(&sheetName, "sheet", "s", "", "Sheet name (default: first sheet)")
	pf.StringVar(&columnsSpec, "columns", "", "Manual column mapping, e.g. room=A,ssid=C,password=D")
	pf.StringVar(&security, "security", "", "Default security type for rows that omit it (WPA, WPA2, WEP, nopass)")
	pf.StringVar(&property, "property", "", "Default property tag for rows that omit it")
	pf.BoolVar(&stopOnError, "stop-on-error", false, "Abort the batch on the first failed record")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")

	batchCmd := &cobra.Command{
		Use:   "batch [input.xlsx]",
		Short: "Generate QR images for every room in a sheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	roomCmd := &cobra.Command{
		Use:   "room [input.xlsx] [room]",
		Short: "Generate the QR image for a single room",
		Args:  cobra.ExactArgs(2),
		RunE:  runRoom,
	}

	sheetsCmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List the sheets in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}

	manualCmd := &cobra.Command{
		Use:   "manual",
		Short: "Generate one QR image from credentials given on the command line",
		Args:  cobra.NoArgs,
		RunE:  runManual,
	}
	manualCmd.Flags().StringVar(&manualSSID, "ssid", "", "Network SSID (required)")
	manualCmd.Flags().StringVar(&manualPassword, "password", "", "Network password (empty for open networks)")
	manualCmd.Flags().StringVar(&manualRoom, "room", "", "Room label")
	_ = manualCmd.MarkFlagRequired("ssid")

	recentCmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened workbooks",
		Args:  cobra.NoArgs,
		RunE:  runRecent,
	}

	rootCmd.AddCommand(batchCmd, roomCmd, sheetsCmd, manualCmd, recentCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, sheet.ErrColumnsNotFound) {
			fmt.Fprintln(os.Stderr, "Hint: map the columns yourself, e.g. --columns room=A,ssid=C,password=D")
		}
		os.Exit(1)
	}
}

// loadOptions layers: built-in defaults, then the config file, then flags.
func loadOptions() (wifiqr.Options, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return wifiqr.Options{}, nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return wifiqr.Options{}, nil, err
	}

	if outputDir != "" {
		opts.OutputDir = outputDir
	}
	if security != "" {
		opts.DefaultSecurity = security
	}
	if property != "" {
		opts.DefaultProperty = property
	}
	if stopOnError {
		opts.StopOnError = true
	}
	if columnsSpec != "" {
		manual, err := sheet.ParseColumnSpec(columnsSpec)
		if err != nil {
			return wifiqr.Options{}, nil, err
		}
		opts.ManualColumns = manual
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger := log.New(log.Config{Level: log.ParseLevel(level), JSON: logJSON || cfg.LogJSON})
	return opts, logger, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	opts, logger, err := loadOptions()
	if err != nil {
		return err
	}

	result, err := wifiqr.GenerateWorkbook(cmd.Context(), inputPath, sheetName, opts, logger)
	if err != nil {
		return err
	}

	for _, p := range result.Paths {
		fmt.Println(p)
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "skipped:", e)
	}
	fmt.Fprintf(os.Stderr, "%d generated, %d failed\n", len(result.Paths), len(result.Errors))

	rememberWorkbook(inputPath, logger)
	if len(result.Errors) > 0 {
		return fmt.Errorf("%d of %d records failed", len(result.Errors), len(result.Paths)+len(result.Errors))
	}
	return nil
}

func runRoom(cmd *cobra.Command, args []string) error {
	inputPath, roomKey := args[0], args[1]
	opts, logger, err := loadOptions()
	if err != nil {
		return err
	}

	path, err := wifiqr.GenerateRoom(inputPath, sheetName, roomKey, opts, logger)
	if err != nil {
		return err
	}
	fmt.Println(path)
	rememberWorkbook(inputPath, logger)
	return nil
}

func runSheets(cmd *cobra.Command, args []string) error {
	_, logger, err := loadOptions()
	if err != nil {
		return err
	}

	session := sheet.NewSession(args[0], nil, logger)
	if err := session.Load(); err != nil {
		return err
	}
	defer session.Close()

	names, err := session.SheetNames()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

func runManual(cmd *cobra.Command, args []string) error {
	opts, logger, err := loadOptions()
	if err != nil {
		return err
	}

	cred := models.WiFiCredential{
		Room:     manualRoom,
		SSID:     manualSSID,
		Password: manualPassword,
	}
	path, err := wifiqr.NewGenerator(opts, logger).Generate(cred)
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func runRecent(cmd *cobra.Command, args []string) error {
	storePath, err := config.DefaultRecentPath()
	if err != nil {
		return err
	}
	store, err := config.OpenRecentStore(storePath, 0)
	if err != nil {
		return err
	}
	entries := store.Entries()
	if len(entries) == 0 {
		fmt.Println("no recent workbooks")
		return nil
	}
	for _, e := range entries {
		if e.LastSheet != "" {
			fmt.Printf("%s (sheet: %s)\n", e.Path, e.LastSheet)
		} else {
			fmt.Println(e.Path)
		}
	}
	return nil
}

// rememberWorkbook records a successful run in the recent-files store.
// Store failures only warn; the artifacts are already on disk.
func rememberWorkbook(path string, logger *slog.Logger) {
	storePath, err := config.DefaultRecentPath()
	if err != nil {
		logger.Warn("recent files store unavailable", "error", err)
		return
	}
	store, err := config.OpenRecentStore(storePath, 0)
	if err != nil {
		logger.Warn("recent files store unreadable", "error", err)
		return
	}
	if err := store.Add(path, sheetName); err != nil {
		logger.Warn("recent files store not updated", "error", err)
	}
}
