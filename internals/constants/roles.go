package constants

import (
	"fmt"
	"strings"
)

const (
	RoleAdmin     = "admin"
	RoleCounselor = "counselor"

	// Older accounts and clients still send "member" for counselors.
	RoleLegacyMember = "member"
)

const ErrOnlyAdminsCanAccess = "only admin may access %s"

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleCounselor,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)

// NormalizeRole maps boundary input onto the canonical role set.
// Empty input defaults to counselor.
func NormalizeRole(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", RoleCounselor, RoleLegacyMember:
		return RoleCounselor, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
