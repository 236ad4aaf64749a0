// utils/valid_test.go
package utils

import "testing"

func TestSanitizePhone(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"+91 80731-26541", "+918073126541", false},
		{"9876543210", "9876543210", false},
		{"", "", false},
		{"12345", "", true},
		{"12345678901234567890", "", true},
	}
	for _, c := range cases {
		got, err := SanitizePhone(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("SanitizePhone(%q) should fail", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("SanitizePhone(%q) returned error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("SanitizePhone(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	got, err := SanitizeEmail("  Raju@Traders.IN ")
	if err != nil {
		t.Fatalf("SanitizeEmail returned error: %v", err)
	}
	if got != "raju@traders.in" {
		t.Errorf("SanitizeEmail = %q, want lowercased trimmed address", got)
	}

	for _, bad := range []string{"", "not-an-email", "a@b"} {
		if _, err := SanitizeEmail(bad); err == nil {
			t.Errorf("SanitizeEmail(%q) should fail", bad)
		}
	}
}
