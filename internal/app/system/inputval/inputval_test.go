package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"office@sydneycatholic.org.au",
		"parish.secretary@example.org",
		"crusade+nsw@example.com",
		"admin@localhost",
		"  contact@example.org  ",
	}
	invalid := []string{
		"",
		"   ",
		"parish",
		"parish@",
		"@example.org",
		".parish@example.org",
		"parish.@example.org",
		"st..marys@example.org",
		"office@example..org",
		"Parish Office <office@example.org>",
		"st marys@example.org",
	}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}
