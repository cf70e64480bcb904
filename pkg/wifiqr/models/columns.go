package models

// ColumnMapping is the resolved role-to-index assignment for one sheet.
// Room and SSID are always assigned in a valid mapping; the optional roles
// are nil when the sheet has no such column. Mappings are replaced
// wholesale on re-detection or manual override, never mutated in place.
type ColumnMapping struct {
	// Room is the zero-based index of the room column.
	Room int
	// SSID is the zero-based index of the network name column.
	SSID int
	// Password is the password column index, nil when absent.
	Password *int
	// Security is the security type column index, nil when absent.
	Security *int
	// Property is the property tag column index, nil when absent.
	Property *int
}

// Indices returns every assigned column index in role order
// (room, ssid, password, security, property).
func (m ColumnMapping) Indices() []int {
	out := []int{m.Room, m.SSID}
	for _, idx := range []*int{m.Password, m.Security, m.Property} {
		if idx != nil {
			out = append(out, *idx)
		}
	}
	return out
}
