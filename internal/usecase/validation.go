package usecase

import (
	"regexp"
	"time"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail reports whether the address has a plausible mailbox form.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) bool {
	return len(password) >= 8
}

// ValidateYear bounds a car's model year to something sane.
func ValidateYear(year int) bool {
	return year >= 1900 && year <= time.Now().Year()+1
}
