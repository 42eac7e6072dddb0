package domain

import (
	"regexp"
	"unicode/utf8"
)

const minPasswordLength = 6

// The local part is left to the receiving mail server apart from line
// terminators; only the domain shape is checked. At least one dot-separated label must follow the host label.
var emailPattern = regexp.MustCompile(`^[^\n\r\x{85}\x{2028}\x{2029}]{1,256}@[a-zA-Z0-9][a-zA-Z0-9\-]{0,64}(\.[a-zA-Z0-9][a-zA-Z0-9\-]{0,25})+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= minPasswordLength
}
