package model

import "time"

// Role names an account role used for endpoint authorization.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleManager    Role = "manager"
	RoleCustomer   Role = "customer"
)

// Manager is a staff account (superadmin or manager).
type Manager struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ManagerFilter paginates manager listings.
type ManagerFilter struct {
	Page  int
	Limit int
}
