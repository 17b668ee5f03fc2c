package services

import "testing"

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name    string
		pw      string
		wantErr bool
	}{
		{"valid", "Sunshine7", false},
		{"too short", "ab1", true},
		{"no number", "longenoughpw", true},
		{"digits only", "12345678", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.pw)
			if tc.wantErr && err == nil {
				t.Errorf("Expected error for %q, got nil", tc.pw)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Expected no error for %q, got %v", tc.pw, err)
			}
		})
	}
}

func TestEmailRegex(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org"}
	invalid := []string{"", "plain", "no@tld", "@missing.com"}

	for _, email := range valid {
		if !emailRegex.MatchString(email) {
			t.Errorf("Expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if emailRegex.MatchString(email) {
			t.Errorf("Expected %q to be invalid", email)
		}
	}
}
