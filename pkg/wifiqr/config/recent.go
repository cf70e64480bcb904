package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultMaxRecent caps the recent-files list.
const DefaultMaxRecent = 5

// RecentEntry records a previously opened workbook and the sheet that was
// active when it was last used.
type RecentEntry struct {
	Path      string `mapstructure:"path" json:"path"`
	LastSheet string `mapstructure:"last_sheet" json:"last_sheet"`
}

// RecentStore persists the most recently opened workbooks so repeat runs
// can suggest the previous file and sheet.
type RecentStore struct {
	path    string
	max     int
	v       *viper.Viper
	entries []RecentEntry
}

// DefaultRecentPath returns the per-user store location.
func DefaultRecentPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, appDirName, "recent.json"), nil
}

// OpenRecentStore loads the store at path, creating an empty one when the
// file does not exist yet. max <= 0 selects DefaultMaxRecent.
func OpenRecentStore(path string, max int) (*RecentStore, error) {
	if max <= 0 {
		max = DefaultMaxRecent
	}
	s := &RecentStore{path: path, max: max, v: viper.New()}
	s.v.SetConfigFile(path)
	s.v.SetConfigType("json")

	if _, err := os.Stat(path); err == nil {
		if err := s.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading recent files store %s: %w", path, err)
		}
		if err := s.v.UnmarshalKey("recent", &s.entries); err != nil {
			return nil, fmt.Errorf("parsing recent files store %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking recent files store %s: %w", path, err)
	}
	if len(s.entries) > s.max {
		s.entries = s.entries[:s.max]
	}
	return s, nil
}

// Add moves path to the front of the list, recording the sheet used, and
// persists the store.
func (s *RecentStore) Add(path, lastSheet string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}

	updated := make([]RecentEntry, 0, len(s.entries)+1)
	updated = append(updated, RecentEntry{Path: abs, LastSheet: lastSheet})
	for _, e := range s.entries {
		if e.Path == abs {
			continue
		}
		updated = append(updated, e)
	}
	if len(updated) > s.max {
		updated = updated[:s.max]
	}
	s.entries = updated
	return s.save()
}

// Entries returns the stored workbooks, most recent first, skipping any
// whose file has since disappeared.
func (s *RecentStore) Entries() []RecentEntry {
	out := make([]RecentEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if _, err := os.Stat(e.Path); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out
}

// LastSheet reports the sheet recorded for path, if present.
func (s *RecentStore) LastSheet(path string) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	for _, e := range s.entries {
		if e.Path == abs && e.LastSheet != "" {
			return e.LastSheet, true
		}
	}
	return "", false
}

func (s *RecentStore) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating store directory: %w", err)
		}
	}
	s.v.Set("recent", s.entries)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("writing recent files store %s: %w", s.path, err)
	}
	return nil
}
