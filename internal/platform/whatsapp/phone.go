package whatsapp

import "strings"

// NormalizePhone strips formatting from a phone number and prefixes the
// country code when absent. "(11) 98888-7777" with country code "55"
// becomes "5511988887777"; an already-prefixed number is unchanged.
func NormalizePhone(phone, countryCode string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	normalized := digits.String()
	if normalized == "" {
		return ""
	}
	if strings.HasPrefix(normalized, countryCode) && len(normalized) > len(countryCode)+9 {
		return normalized
	}
	return countryCode + normalized
}
