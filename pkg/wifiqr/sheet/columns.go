package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnToIndex converts a spreadsheet column letter ("A", "Z", "AA") to a
// zero-based column index: A→0, Z→25, AA→26, AB→27.
func ColumnToIndex(letter string) (int, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(letter))
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty column letter", ErrInvalidMapping)
	}
	n, err := excelize.ColumnNameToNumber(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: column letter %q", ErrInvalidMapping, letter)
	}
	return n - 1, nil
}

// IndexToColumn converts a zero-based column index back to its letter form.
func IndexToColumn(index int) (string, error) {
	name, err := excelize.ColumnNumberToName(index + 1)
	if err != nil {
		return "", fmt.Errorf("%w: column index %d", ErrInvalidMapping, index)
	}
	return name, nil
}

// ParseColumnSpec parses an operator column specification of the form
// "room=A,ssid=C,password=D" into a role to zero-based index map, suitable
// for Session.SetColumnsManually. Role names follow the Role constants.
func ParseColumnSpec(spec string) (map[Role]int, error) {
	known := make(map[Role]bool, len(roleOrder))
	for _, r := range roleOrder {
		known[r] = true
	}

	roles := make(map[Role]int)
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, letter, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: expected role=letter, got %q", ErrInvalidMapping, part)
		}
		role := Role(strings.ToLower(strings.TrimSpace(name)))
		if !known[role] {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidMapping, name)
		}
		if _, dup := roles[role]; dup {
			return nil, fmt.Errorf("%w: role %q specified twice", ErrInvalidMapping, role)
		}
		idx, err := ColumnToIndex(letter)
		if err != nil {
			return nil, err
		}
		roles[role] = idx
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: empty column specification", ErrInvalidMapping)
	}
	return roles, nil
}
