package payment

import (
	"strings"

	"helicharter-portal/internal/domain"
)

// NormalizePhone converts the local and international spellings of a Kenyan
// mobile number into the 2547XXXXXXXX / 2541XXXXXXXX form the payment prompt needs.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return "", invalidPhone()
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "254"):
	case len(digits) == 10 && strings.HasPrefix(digits, "0"):
		digits = "254" + digits[1:]
	case len(digits) == 9:
		digits = "254" + digits
	default:
		return "", invalidPhone()
	}

	if digits[3] != '7' && digits[3] != '1' {
		return "", invalidPhone()
	}
	return digits, nil
}

func invalidPhone() error {
	return domain.ValidationError{Field: "phone", Msg: "enter a valid Safaricom number, e.g. 0712345678"}
}
