package sheet

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows to a temporary xlsx file and returns its path.
// Each entry of sheets maps a sheet name to its rows.
func writeWorkbook(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("renaming sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("adding sheet %q: %v", name, err)
		}
		for r, row := range rows {
			for c, val := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := f.SetCellValue(name, cell, val); err != nil {
					t.Fatalf("setting %s: %v", cell, err)
				}
			}
		}
	}

	path := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	return path
}

func credentialSheet(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, map[string][][]string{
		"Rooms": {
			{"Room", "SSID", "Password", "Security", "Property"},
			{"101", "NetA", "secretA", "WPA2", "VLEV"},
			{"", "NetB", "secretB", "WPA2", "VLEV"},
			{"103", "", "secretC", "WPA2", "VLEV"},
			{"104", "NetD", "", "", ""},
		},
	})
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", ErrEmptyPath},
		{"blank path", "   ", ErrEmptyPath},
		{"legacy xls", "book.xls", ErrInvalidFormat},
		{"csv", "book.csv", ErrInvalidFormat},
		{"missing file", filepath.Join(t.TempDir(), "nope.xlsx"), ErrFileNotFound},
	}
	for _, tt := range tests {
		err := NewSession(tt.path, nil, nil).ValidateFile()
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: ValidateFile() = %v, expected %v", tt.name, err, tt.want)
		}
	}
}

func TestSessionLifecycle(t *testing.T) {
	path := credentialSheet(t)
	s := NewSession(path, nil, nil)

	// Operations before Load must fail with ErrNoWorkbook.
	if _, err := s.SheetNames(); !errors.Is(err, ErrNoWorkbook) {
		t.Errorf("SheetNames before Load = %v, expected ErrNoWorkbook", err)
	}
	if err := s.SelectSheet("Rooms"); !errors.Is(err, ErrNoWorkbook) {
		t.Errorf("SelectSheet before Load = %v, expected ErrNoWorkbook", err)
	}

	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()

	names, err := s.SheetNames()
	if err != nil {
		t.Fatalf("SheetNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Rooms" {
		t.Fatalf("SheetNames = %v, expected [Rooms]", names)
	}

	// Extraction before a sheet is active must fail.
	if _, err := s.ExtractAll(); !errors.Is(err, ErrColumnsNotResolved) {
		t.Errorf("ExtractAll before SelectSheet = %v, expected ErrColumnsNotResolved", err)
	}

	if err := s.SelectSheet("Rooms"); err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}
	if !s.Resolved() {
		t.Fatal("columns not resolved after successful detection")
	}
	if s.ActiveSheet() != "Rooms" {
		t.Errorf("ActiveSheet = %q, expected Rooms", s.ActiveSheet())
	}

	mapping, err := s.Mapping()
	if err != nil {
		t.Fatalf("Mapping failed: %v", err)
	}
	if mapping.Room != 0 || mapping.SSID != 1 {
		t.Errorf("mapping = room %d ssid %d, expected 0 and 1", mapping.Room, mapping.SSID)
	}
	if mapping.Password == nil || *mapping.Password != 2 {
		t.Errorf("password mapping = %v, expected column 2", mapping.Password)
	}
}

func TestSelectSheetErrors(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Rooms": {
			{"Room", "SSID"},
			{"101", "NetA"},
		},
		"Empty": {
			{"Room", "SSID"},
		},
	})
	s := NewSession(path, nil, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()

	if err := s.SelectSheet("Missing"); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("SelectSheet(Missing) = %v, expected ErrSheetNotFound", err)
	}
	if err := s.SelectSheet("Empty"); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("SelectSheet(Empty) = %v, expected ErrEmptySheet", err)
	}
	if err := s.SelectSheet("Rooms"); err != nil {
		t.Errorf("SelectSheet(Rooms) failed: %v", err)
	}
}

func TestManualRecovery(t *testing.T) {
	// Headers no keyword table recognizes.
	path := writeWorkbook(t, map[string][][]string{
		"Datos": {
			{"Col1", "Col2", "Col3"},
			{"201", "NetX", "secretX"},
		},
	})
	s := NewSession(path, nil, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()

	err := s.SelectSheet("Datos")
	if !errors.Is(err, ErrColumnsNotFound) {
		t.Fatalf("SelectSheet = %v, expected ErrColumnsNotFound", err)
	}
	// The sheet stays active so a manual mapping can recover the session.
	if s.ActiveSheet() != "Datos" {
		t.Fatalf("ActiveSheet = %q, expected Datos", s.ActiveSheet())
	}
	if s.Resolved() {
		t.Fatal("session resolved despite failed detection")
	}

	// Invalid manual mappings are rejected without changing state.
	invalid := []struct {
		name  string
		roles map[Role]int
	}{
		{"missing ssid", map[Role]int{RoleRoom: 0}},
		{"out of bounds", map[Role]int{RoleRoom: 0, RoleSSID: 9}},
		{"negative", map[Role]int{RoleRoom: -1, RoleSSID: 1}},
		{"duplicate index", map[Role]int{RoleRoom: 1, RoleSSID: 1}},
	}
	for _, tt := range invalid {
		if err := s.SetColumnsManually(tt.roles); !errors.Is(err, ErrInvalidMapping) {
			t.Errorf("%s: SetColumnsManually = %v, expected ErrInvalidMapping", tt.name, err)
		}
		if s.Resolved() {
			t.Fatalf("%s: invalid mapping left the session resolved", tt.name)
		}
	}

	if err := s.SetColumnsManually(map[Role]int{RoleRoom: 0, RoleSSID: 1, RolePassword: 2}); err != nil {
		t.Fatalf("SetColumnsManually failed: %v", err)
	}
	cred, err := s.ExtractRoom("201")
	if err != nil {
		t.Fatalf("ExtractRoom failed: %v", err)
	}
	if cred.SSID != "NetX" || cred.Password != "secretX" {
		t.Errorf("extracted %+v, expected NetX/secretX", cred)
	}
}

func TestExtractAllSkipsIncompleteRows(t *testing.T) {
	s := NewSession(credentialSheet(t), nil, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()
	if err := s.SelectSheet("Rooms"); err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}

	creds, err := s.ExtractAll()
	if err != nil {
		t.Fatalf("ExtractAll failed: %v", err)
	}
	// Rows with an empty room or ssid are skipped, not errors.
	if len(creds) != 2 {
		t.Fatalf("extracted %d credentials, expected 2: %+v", len(creds), creds)
	}
	if creds[0].Room != "101" || creds[0].SSID != "NetA" {
		t.Errorf("first credential = %+v, expected room 101", creds[0])
	}
	if creds[1].Room != "104" {
		t.Errorf("second credential = %+v, expected room 104", creds[1])
	}
	// The resolver never invents a security value for a blank cell.
	if creds[1].Security != "" {
		t.Errorf("security = %q, expected empty", creds[1].Security)
	}
}

func TestExtractRoom(t *testing.T) {
	s := NewSession(credentialSheet(t), nil, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()
	if err := s.SelectSheet("Rooms"); err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}

	// Lookup trims and case-folds the key.
	cred, err := s.ExtractRoom(" 101 ")
	if err != nil {
		t.Fatalf("ExtractRoom failed: %v", err)
	}
	if cred.SSID != "NetA" || cred.Password != "secretA" {
		t.Errorf("extracted %+v, expected NetA/secretA", cred)
	}

	// A matched row with an empty ssid is a failure, not a partial record.
	if _, err := s.ExtractRoom("103"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("ExtractRoom(103) = %v, expected ErrRoomNotFound", err)
	}
	if _, err := s.ExtractRoom("999"); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("ExtractRoom(999) = %v, expected ErrRoomNotFound", err)
	}
	if _, err := s.ExtractRoom("  "); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("ExtractRoom(blank) = %v, expected ErrRoomNotFound", err)
	}
}

func TestExtractRoomFirstMatchWins(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Rooms": {
			{"Room", "SSID", "Password"},
			{"101", "First", "pw1"},
			{"101", "Second", "pw2"},
		},
	})
	s := NewSession(path, nil, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()
	if err := s.SelectSheet("Rooms"); err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}

	cred, err := s.ExtractRoom("101")
	if err != nil {
		t.Fatalf("ExtractRoom failed: %v", err)
	}
	if cred.SSID != "First" {
		t.Errorf("SSID = %q, expected the first matching row to win", cred.SSID)
	}
}

func TestSessionCustomKeywords(t *testing.T) {
	path := writeWorkbook(t, map[string][][]string{
		"Zimmer": {
			{"Zimmer", "Netzwerk", "Kennwort"},
			{"301", "NetDE", "geheim"},
		},
	})
	kw := KeywordTable{
		RoleRoom:     {"zimmer"},
		RoleSSID:     {"netzwerk"},
		RolePassword: {"kennwort"},
	}
	s := NewSession(path, kw, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer s.Close()
	if err := s.SelectSheet("Zimmer"); err != nil {
		t.Fatalf("SelectSheet failed: %v", err)
	}

	cred, err := s.ExtractRoom("301")
	if err != nil {
		t.Fatalf("ExtractRoom failed: %v", err)
	}
	if cred.SSID != "NetDE" || cred.Password != "geheim" {
		t.Errorf("extracted %+v, expected NetDE/geheim", cred)
	}
}
