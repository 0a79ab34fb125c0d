package model

import "time"

// Customer is a buyer account. Customers must verify their email via OTP
// before they can authenticate.
type Customer struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
