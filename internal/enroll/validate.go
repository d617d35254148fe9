package enroll

import "strings"

const phonePrefix = "+998"

// ValidatePhone checks a raw phone input and returns its normalized form.
// Accepted shapes: a full "+998XXXXXXXXX" number (13 characters) or a bare
// 9-digit local number, which gets the "+998" prefix attached. The check is
// purely syntactic.
func ValidatePhone(raw string) (string, bool) {
	if strings.HasPrefix(raw, phonePrefix) && len(raw) == 13 {
		return raw, true
	}
	if len(raw) == 9 {
		return phonePrefix + raw, true
	}
	return "", false
}
