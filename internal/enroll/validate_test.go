package enroll

import "testing"

func TestValidatePhoneLocalNumber(t *testing.T) {
	got, ok := ValidatePhone("901234567")
	if !ok {
		t.Fatalf("expected 9-digit local number to be accepted")
	}
	if got != "+998901234567" {
		t.Fatalf("normalized = %q, want %q", got, "+998901234567")
	}
}

func TestValidatePhoneFullNumber(t *testing.T) {
	got, ok := ValidatePhone("+998901234567")
	if !ok {
		t.Fatalf("expected full +998 number to be accepted")
	}
	if got != "+998901234567" {
		t.Fatalf("full number should pass through unchanged, got %q", got)
	}
}

func TestValidatePhoneRejected(t *testing.T) {
	cases := []string{
		"",
		"12345",
		"+99890123456",   // 12 chars
		"+9989012345678", // 14 chars
		"99890123456789", // no prefix
		"9012345678",     // 10 digits
	}
	for _, raw := range cases {
		if _, ok := ValidatePhone(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
