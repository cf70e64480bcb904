package sheet

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
)

// workbookExtensions lists the file extensions the resolver accepts.
// Legacy .xls (BIFF) workbooks are rejected up front; excelize cannot
// parse them.
var workbookExtensions = []string{".xlsx", ".xlsm"}

// Session walks one workbook through the loading lifecycle:
//
//	Unloaded → Loaded → SheetActive → ColumnsResolved
//
// Load parses the workbook, SelectSheet activates a non-empty sheet and
// attempts column auto-detection, and SetColumnsManually recovers when
// detection fails. Extraction requires a resolved mapping.
type Session struct {
	path     string
	keywords KeywordTable
	logger   *slog.Logger

	file    *excelize.File
	sheet   string
	rows    [][]string
	mapping *models.ColumnMapping
}

// NewSession creates a session for the workbook at path. A nil keyword
// table selects DefaultKeywords; a nil logger discards diagnostics.
func NewSession(path string, kw KeywordTable, logger *slog.Logger) *Session {
	if kw == nil {
		kw = DefaultKeywords()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{path: path, keywords: kw, logger: logger}
}

// ValidateFile checks the workbook path before parsing: non-empty, an
// accepted extension, and an existing file.
func (s *Session) ValidateFile() error {
	if strings.TrimSpace(s.path) == "" {
		return ErrEmptyPath
	}
	ext := strings.ToLower(filepath.Ext(s.path))
	if !slices.Contains(workbookExtensions, ext) {
		return fmt.Errorf("%w: extension %q (want .xlsx or .xlsm)", ErrInvalidFormat, ext)
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %s", ErrFileNotFound, s.path)
	}
	return nil
}

// Load parses the workbook (Unloaded → Loaded). The workbook must contain
// at least one sheet.
func (s *Session) Load() error {
	if err := s.ValidateFile(); err != nil {
		return err
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(f.GetSheetList()) == 0 {
		f.Close()
		return fmt.Errorf("%w: workbook has no sheets", ErrInvalidFormat)
	}
	s.file = f
	s.logger.Info("workbook loaded", "path", s.path, "sheets", len(f.GetSheetList()))
	return nil
}

// Close releases the underlying workbook. Safe to call on an unloaded
// session.
func (s *Session) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Path returns the workbook path the session was created for.
func (s *Session) Path() string { return s.path }

// SheetNames returns the workbook's sheet names in workbook order.
func (s *Session) SheetNames() ([]string, error) {
	if s.file == nil {
		return nil, ErrNoWorkbook
	}
	return s.file.GetSheetList(), nil
}

// ActiveSheet returns the name of the selected sheet, or "" before
// SelectSheet succeeds.
func (s *Session) ActiveSheet() string { return s.sheet }

// SelectSheet activates a sheet and attempts column auto-detection
// (Loaded → SheetActive → ColumnsResolved). A sheet with fewer than two
// rows fails with ErrEmptySheet. When the sheet is usable but the required
// columns cannot be detected, SelectSheet returns ErrColumnsNotFound and
// the session stays SheetActive awaiting SetColumnsManually.
func (s *Session) SelectSheet(name string) error {
	if s.file == nil {
		return ErrNoWorkbook
	}
	if !slices.Contains(s.file.GetSheetList(), name) {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	rows, err := s.file.GetRows(name)
	if err != nil {
		return fmt.Errorf("reading sheet %q: %w", name, err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("%w: sheet %q needs a header row and at least one data row", ErrEmptySheet, name)
	}

	s.sheet = name
	s.rows = rows
	s.mapping = nil
	return s.detectColumns()
}

// detectColumns runs header auto-detection on the active sheet and records
// which roles were found and missing.
func (s *Session) detectColumns() error {
	found := ScanHeader(s.rows[0], s.keywords)

	var foundNames, missingNames []string
	for _, role := range roleOrder {
		if _, ok := found[role]; ok {
			foundNames = append(foundNames, string(role))
		} else {
			missingNames = append(missingNames, string(role))
		}
	}
	s.logger.Info("header columns detected", "sheet", s.sheet, "found", strings.Join(foundNames, ","))
	if len(missingNames) > 0 {
		s.logger.Warn("header columns missing", "sheet", s.sheet, "missing", strings.Join(missingNames, ","))
	}

	mapping, ok := mappingFromRoles(found)
	if !ok {
		return ErrColumnsNotFound
	}
	s.mapping = &mapping
	return nil
}

// SetColumnsManually installs an operator-supplied role to zero-based index
// mapping, replacing any previous mapping wholesale. This is the only
// recovery path after auto-detection fails. The room and ssid roles are
// required; indices must be distinct and within the sheet's column bounds.
func (s *Session) SetColumnsManually(roles map[Role]int) error {
	if s.file == nil {
		return ErrNoWorkbook
	}
	if s.rows == nil {
		return ErrNoActiveSheet
	}

	mapping, ok := mappingFromRoles(roles)
	if !ok {
		return fmt.Errorf("%w: room and ssid are required", ErrInvalidMapping)
	}

	bound := s.columnCount()
	seen := make(map[int]bool)
	for _, idx := range mapping.Indices() {
		if idx < 0 || idx >= bound {
			letter, _ := IndexToColumn(idx)
			return fmt.Errorf("%w: column %s is outside the sheet's %d columns", ErrInvalidMapping, letter, bound)
		}
		if seen[idx] {
			letter, _ := IndexToColumn(idx)
			return fmt.Errorf("%w: column %s assigned to more than one role", ErrInvalidMapping, letter)
		}
		seen[idx] = true
	}

	s.mapping = &mapping
	s.logger.Info("columns set manually", "sheet", s.sheet)
	return nil
}

// Resolved reports whether a valid column mapping is in place.
func (s *Session) Resolved() bool { return s.mapping != nil }

// Mapping returns a copy of the resolved column mapping.
func (s *Session) Mapping() (models.ColumnMapping, error) {
	if s.mapping == nil {
		return models.ColumnMapping{}, ErrColumnsNotResolved
	}
	return *s.mapping, nil
}

// columnCount returns the widest row of the active sheet. GetRows trims
// trailing empty cells, so individual rows may be narrower.
func (s *Session) columnCount() int {
	widest := 0
	for _, row := range s.rows {
		if len(row) > widest {
			widest = len(row)
		}
	}
	return widest
}

// ExtractRoom returns the credential for the first data row whose room cell
// equals key after trimming and case folding. Later duplicate rows are
// ignored. It fails with ErrRoomNotFound when no row matches or the matched
// row has an empty SSID.
func (s *Session) ExtractRoom(key string) (models.WiFiCredential, error) {
	mapping, err := s.Mapping()
	if err != nil {
		return models.WiFiCredential{}, err
	}
	want := strings.ToUpper(strings.TrimSpace(key))
	if want == "" {
		return models.WiFiCredential{}, fmt.Errorf("%w: empty room key", ErrRoomNotFound)
	}

	for _, row := range s.rows[1:] {
		if strings.ToUpper(cellAt(row, mapping.Room)) != want {
			continue
		}
		cred, ok := credentialFromRow(row, mapping)
		if !ok {
			return models.WiFiCredential{}, fmt.Errorf("%w: room %q has no ssid", ErrRoomNotFound, strings.TrimSpace(key))
		}
		return cred, nil
	}
	s.logger.Warn("room not found", "sheet", s.sheet, "room", want)
	return models.WiFiCredential{}, fmt.Errorf("%w: %q", ErrRoomNotFound, strings.TrimSpace(key))
}

// ExtractAll returns one credential per data row in physical row order,
// skipping rows whose room or ssid cell is empty. An empty result is not
// an error.
func (s *Session) ExtractAll() ([]models.WiFiCredential, error) {
	mapping, err := s.Mapping()
	if err != nil {
		return nil, err
	}

	var creds []models.WiFiCredential
	for _, row := range s.rows[1:] {
		if cellAt(row, mapping.Room) == "" {
			continue
		}
		if cred, ok := credentialFromRow(row, mapping); ok {
			creds = append(creds, cred)
		}
	}
	return creds, nil
}

// credentialFromRow derives a credential from one data row. ok is false
// when the ssid cell is empty; no partial record is ever produced. The
// security field stays empty when the sheet omits it — defaults are the
// caller's responsibility.
func credentialFromRow(row []string, m models.ColumnMapping) (models.WiFiCredential, bool) {
	ssid := cellAt(row, m.SSID)
	if ssid == "" {
		return models.WiFiCredential{}, false
	}
	return models.WiFiCredential{
		Room:        cellAt(row, m.Room),
		SSID:        ssid,
		Password:    optCellAt(row, m.Password),
		Security:    optCellAt(row, m.Security),
		PropertyTag: optCellAt(row, m.Property),
	}, true
}

// cellAt returns the trimmed cell text at idx, tolerating the ragged rows
// GetRows produces.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optCellAt(row []string, idx *int) string {
	if idx == nil {
		return ""
	}
	return cellAt(row, *idx)
}
