package repositories

import (
	"testing"

	"github.com/nirmaantech/portal_backend/models"
)

func TestRoleFilter(t *testing.T) {
	filter := roleFilter(models.RoleTelecaller)
	if got := filter["role"]; got != models.RoleTelecaller {
		t.Errorf("roleFilter(telecaller) = %v, want role clause", filter)
	}

	filter = roleFilter("")
	if len(filter) != 0 {
		t.Errorf("roleFilter(\"\") = %v, want empty filter so every account matches", filter)
	}
}
