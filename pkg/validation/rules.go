package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field rules shared by the chat registration flow and the HTTP reset endpoints.

const (
	MinFullNameLen = 6
	MinPasswordLen = 8
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var (
	iraqiMobileRe = regexp.MustCompile(`^07[3-9]\d{8}$`)
	emailRe       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRe      = regexp.MustCompile(`[a-zA-Z]`)
	digitRe       = regexp.MustCompile(`[0-9]`)
)

// IsIraqiMobile reports whether s (after trimming) is a local Iraqi mobile number, e.g. 07901234567.
func IsIraqiMobile(s string) bool {
	return iraqiMobileRe.MatchString(strings.TrimSpace(s))
}

func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// IsFullName requires at least MinFullNameLen characters after trimming.
func IsFullName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinFullNameLen
}

// PasswordProblem describes why a password was rejected.
type PasswordProblem int

const (
	PasswordOK PasswordProblem = iota
	PasswordTooShort
	PasswordTooLong
	PasswordNeedsLetterAndDigit
)

// CheckPassword applies the password policy: at least MinPasswordLen
// characters, at most MaxPasswordBytes bytes, with at least one latin letter
// and one digit. Length is checked first.
func CheckPassword(p string) PasswordProblem {
	if utf8.RuneCountInString(p) < MinPasswordLen {
		return PasswordTooShort
	}
	if len(p) > MaxPasswordBytes {
		return PasswordTooLong
	}
	if !letterRe.MatchString(p) || !digitRe.MatchString(p) {
		return PasswordNeedsLetterAndDigit
	}
	return PasswordOK
}

func IsStrongPassword(p string) bool {
	return CheckPassword(p) == PasswordOK
}

// IsBlank reports whether s has no visible characters.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsSpace(r) }) < 0
}
