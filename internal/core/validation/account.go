package validation

import (
	"strings"
	"unicode"
)

const minPasswordLen = 8

// Password strength messages.
const (
	MsgPasswordRequired  = "new password is required"
	MsgCurrentRequired   = "current password is required"
	MsgConfirmRequired   = "password confirmation is required"
	MsgPasswordMismatch  = "new password and confirmation do not match"
	MsgPasswordTooShort  = "password must be at least 8 characters"
	MsgPasswordUppercase = "password must contain an uppercase letter"
	MsgPasswordLowercase = "password must contain a lowercase letter"
	MsgPasswordDigit     = "password must contain a digit"
)

// ValidatePasswordStrength requires at least 8 characters with upper, lower
// and digit. Symbols are not required.
func ValidatePasswordStrength(pw string) Result {
	var msgs []string
	if len([]rune(pw)) < minPasswordLen {
		msgs = append(msgs, MsgPasswordTooShort)
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		msgs = append(msgs, MsgPasswordUppercase)
	}
	if !lower {
		msgs = append(msgs, MsgPasswordLowercase)
	}
	if !digit {
		msgs = append(msgs, MsgPasswordDigit)
	}
	if len(msgs) > 0 {
		return failed(msgs...)
	}
	return ok()
}

// ValidatePasswordChange checks the three password fields. The current
// password is only checked for presence.
func ValidatePasswordChange(current, next, confirm string) Result {
	var msgs []string
	if strings.TrimSpace(current) == "" {
		msgs = append(msgs, MsgCurrentRequired)
	}
	if strings.TrimSpace(next) == "" {
		msgs = append(msgs, MsgPasswordRequired)
	}
	if strings.TrimSpace(confirm) == "" {
		msgs = append(msgs, MsgConfirmRequired)
	}
	if len(msgs) > 0 {
		return failed(msgs...)
	}
	if next != confirm {
		return failed(MsgPasswordMismatch)
	}
	return ValidatePasswordStrength(next)
}

// ValidatePersonalInfo checks the editable profile fields. A blank email
// keeps the current address.
func ValidatePersonalInfo(firstName, lastName, email string) Result {
	var msgs []string
	if !IsName(firstName) {
		msgs = append(msgs, "first name must be 2-50 characters and contain only letters, spaces, hyphens or apostrophes")
	}
	if !IsName(lastName) {
		msgs = append(msgs, "last name must be 2-50 characters and contain only letters, spaces, hyphens or apostrophes")
	}
	if email = strings.TrimSpace(email); email != "" && !IsEmail(email) {
		msgs = append(msgs, "email must be a valid email address")
	}
	if len(msgs) > 0 {
		return failed(msgs...)
	}
	return ok()
}

// ValidateNewAccount checks the fields an administrator supplies when
// creating a directory account.
func ValidateNewAccount(username, email, password string) Result {
	var msgs []string
	if u := strings.TrimSpace(username); len(u) < 3 || len(u) > 50 || strings.ContainsAny(u, " \t") {
		msgs = append(msgs, "username must be 3-50 characters without spaces")
	}
	if !IsEmail(email) {
		msgs = append(msgs, "email must be a valid email address")
	}
	if r := ValidatePasswordStrength(password); !r.Valid {
		msgs = append(msgs, r.Errors...)
	}
	if len(msgs) > 0 {
		return failed(msgs...)
	}
	return ok()
}
