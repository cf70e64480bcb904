package sheet

import (
	"strings"

	"github.com/vgqr/wifiqr-go/pkg/wifiqr/models"
)

// ScanHeader assigns column roles to the cells of a header row.
//
// Matching runs in two passes: an exact-match pass over every cell, then a
// substring-containment pass for roles still unassigned. The first
// successful assignment per role is final, and a column claimed by one role
// is never reused by another, so header order can influence the outcome
// when keyword sets overlap ambiguously.
func ScanHeader(header []string, kw KeywordTable) map[Role]int {
	found := make(map[Role]int, len(roleOrder))
	claimed := make(map[int]bool, len(header))

	match := func(exact bool) {
		for idx, raw := range header {
			if claimed[idx] {
				continue
			}
			text := strings.ToLower(strings.TrimSpace(raw))
			if text == "" {
				continue
			}
			for _, role := range roleOrder {
				if _, done := found[role]; done {
					continue
				}
				if matchKeywords(kw[role], text, exact) {
					found[role] = idx
					claimed[idx] = true
					break
				}
			}
		}
	}

	match(true)
	match(false)
	return found
}

// DetectColumns builds a validated column mapping from a header row.
// ok is false unless both the room and ssid roles were assigned; a caller
// receiving false must fall back to a manual mapping.
func DetectColumns(header []string, kw KeywordTable) (models.ColumnMapping, bool) {
	return mappingFromRoles(ScanHeader(header, kw))
}

func matchKeywords(keywords []string, text string, exact bool) bool {
	for _, k := range keywords {
		if exact {
			if text == k {
				return true
			}
		} else if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func mappingFromRoles(roles map[Role]int) (models.ColumnMapping, bool) {
	room, hasRoom := roles[RoleRoom]
	ssid, hasSSID := roles[RoleSSID]
	if !hasRoom || !hasSSID {
		return models.ColumnMapping{}, false
	}
	return models.ColumnMapping{
		Room:     room,
		SSID:     ssid,
		Password: optionalIndex(roles, RolePassword),
		Security: optionalIndex(roles, RoleSecurity),
		Property: optionalIndex(roles, RoleProperty),
	}, true
}

func optionalIndex(roles map[Role]int, role Role) *int {
	if idx, ok := roles[role]; ok {
		return &idx
	}
	return nil
}
