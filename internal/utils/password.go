package utils

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/taskboard/taskboard-api/internal/constants"
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	ErrPasswordNumeric  = errors.New("password cannot be entirely numeric")
)

// ValidatePassword applies the account password strength rules.
func ValidatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ErrPasswordNumeric
	}

	return nil
}
