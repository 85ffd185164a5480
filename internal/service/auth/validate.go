package auth

import (
	"net/mail"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const minPasswordLength = 8

// NormalizeEmail lowercases and validates an address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// NormalizePhone returns the E.164 form of phone, parsed against region when
// it has no country code.
func NormalizePhone(phone, region string) (string, error) {
	num, err := phonenumbers.Parse(strings.TrimSpace(phone), region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func ValidatePassword(pw string) error {
	if len(pw) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
