// utils/ids.go
package utils

import (
	"fmt"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

// RolePrefix returns the single letter prefix used for portal usernames.
func RolePrefix(role models.Role) string {
	switch role {
	case models.RoleVendor:
		return "V"
	case models.RoleFranchise:
		return "F"
	case models.RolePartner:
		return "P"
	case models.RoleTelecaller:
		return "T"
	}
	return "U"
}

// GenerateUsername builds a self-registration username like V-40231.
// The suffix is the last five digits of the millisecond clock, which is
// unique enough for the registration rate the portal sees; the unique
// index on users.username catches the rest.
func GenerateUsername(role models.Role, now time.Time) string {
	millis := fmt.Sprintf("%d", now.UnixMilli())
	suffix := millis
	if len(millis) > 5 {
		suffix = millis[len(millis)-5:]
	}
	return fmt.Sprintf("%s-%s", RolePrefix(role), suffix)
}
