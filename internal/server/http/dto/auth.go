package dto

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse is the authenticated account shape shared by staff and
// customers.
type AccountResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// LoginResponse carries the bearer token and the account it belongs to.
type LoginResponse struct {
	Token string          `json:"token"`
	User  AccountResponse `json:"user"`
}
