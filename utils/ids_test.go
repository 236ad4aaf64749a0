// utils/ids_test.go
package utils

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/nirmaantech/portal_backend/models"
)

func TestRolePrefix(t *testing.T) {
	cases := []struct {
		role models.Role
		want string
	}{
		{models.RoleVendor, "V"},
		{models.RoleFranchise, "F"},
		{models.RolePartner, "P"},
		{models.RoleTelecaller, "T"},
		{models.RoleAdmin, "U"},
		{models.Role("bogus"), "U"},
	}
	for _, c := range cases {
		if got := RolePrefix(c.role); got != c.want {
			t.Errorf("RolePrefix(%q) = %q, want %q", c.role, got, c.want)
		}
	}
}

func TestGenerateUsername(t *testing.T) {
	now := time.UnixMilli(1764547200123)

	got := GenerateUsername(models.RoleVendor, now)
	want := "V-00123"
	if got != want {
		t.Errorf("GenerateUsername(vendor) = %q, want %q", got, want)
	}

	got = GenerateUsername(models.RoleFranchise, now)
	if !strings.HasPrefix(got, "F-") {
		t.Errorf("franchise username %q should start with F-", got)
	}
	if len(got) != 7 {
		t.Errorf("username %q should be prefix plus five digits", got)
	}
}

func TestBuildUPILink(t *testing.T) {
	link := BuildUPILink(1764547200123, 1180)

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("link %q should use the upi://pay scheme", link)
	}
	for _, frag := range []string{"am=1180.00", "cu=INR", "pn=NirmaanTech"} {
		if !strings.Contains(link, frag) {
			t.Errorf("link %q missing %q", link, frag)
		}
	}
	if !strings.Contains(link, fmt.Sprintf("Order+%d", int64(1764547200123))) {
		t.Errorf("link %q missing transaction note", link)
	}
}
