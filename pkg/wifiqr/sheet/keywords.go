// Package sheet resolves untyped spreadsheet grids into typed room/network
// credential records: it locates the header row's semantic columns by
// keyword matching and extracts per-row WiFi credentials.
package sheet

import "fmt"

// Role identifies the semantic purpose assigned to a spreadsheet column.
type Role string

const (
	RoleRoom     Role = "room"
	RoleSSID     Role = "ssid"
	RolePassword Role = "password"
	RoleSecurity Role = "security"
	RoleProperty Role = "property"
)

// roleOrder fixes the role scan order during detection. When keyword sets
// overlap, the earlier role claims the column; assignment order is part of
// the documented contract.
var roleOrder = []Role{RoleRoom, RoleSSID, RolePassword, RoleSecurity, RoleProperty}

// Roles returns all column roles in detection order.
func Roles() []Role {
	out := make([]Role, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// KeywordTable maps each role to the lower-cased header keywords that
// select it.
type KeywordTable map[Role][]string

// EnglishKeywords returns the shipped English header keyword set.
func EnglishKeywords() KeywordTable {
	return KeywordTable{
		RoleRoom:     {"room", "number", "villa"},
		RoleSSID:     {"ssid", "network", "wifi", "name", "net"},
		RolePassword: {"password", "pass", "key", "pwd"},
		RoleSecurity: {"security", "encryption", "type"},
		RoleProperty: {"property", "hotel", "region", "site"},
	}
}

// SpanishKeywords returns the shipped Spanish header keyword set.
func SpanishKeywords() KeywordTable {
	return KeywordTable{
		RoleRoom:     {"habitacion", "habitación", "numero", "número", "hab", "cuarto", "villa"},
		RoleSSID:     {"red", "nombre"},
		RolePassword: {"contraseña", "contrasena", "clave"},
		RoleSecurity: {"seguridad", "encriptacion", "encriptación", "tipo"},
		RoleProperty: {"propiedad", "zona", "lugar"},
	}
}

// DefaultKeywords returns the union of the shipped locale sets. Deployments
// with other header conventions supply their own table via configuration.
func DefaultKeywords() KeywordTable {
	return MergeKeywords(EnglishKeywords(), SpanishKeywords())
}

// MergeKeywords unions several keyword tables, preserving order and
// dropping duplicate keywords within a role.
func MergeKeywords(tables ...KeywordTable) KeywordTable {
	merged := make(KeywordTable)
	for _, t := range tables {
		for role, words := range t {
			seen := make(map[string]bool, len(merged[role]))
			for _, w := range merged[role] {
				seen[w] = true
			}
			for _, w := range words {
				if !seen[w] {
					merged[role] = append(merged[role], w)
					seen[w] = true
				}
			}
		}
	}
	return merged
}

// ParseKeywords converts a raw role-name to keyword-list map (as loaded
// from configuration) into a KeywordTable, rejecting unknown role names.
func ParseKeywords(raw map[string][]string) (KeywordTable, error) {
	known := make(map[Role]bool, len(roleOrder))
	for _, r := range roleOrder {
		known[r] = true
	}
	table := make(KeywordTable, len(raw))
	for name, words := range raw {
		role := Role(name)
		if !known[role] {
			return nil, fmt.Errorf("unknown column role %q", name)
		}
		table[role] = append([]string(nil), words...)
	}
	return table, nil
}
