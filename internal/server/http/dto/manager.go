package dto

import (
	"time"

	"github.com/ventry/ventry/internal/domain/model"
)

// CreateManagerRequest describes a new staff account payload.
type CreateManagerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ManagerResponse describes a staff account.
type ManagerResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ManagerListResponse pages staff accounts.
type ManagerListResponse struct {
	Managers []ManagerResponse `json:"managers"`
	Total    int               `json:"total"`
}

// NewManagerResponse maps a manager model to its response shape.
func NewManagerResponse(manager *model.Manager) ManagerResponse {
	return ManagerResponse{
		ID:        manager.ID,
		Email:     manager.Email,
		FirstName: manager.FirstName,
		LastName:  manager.LastName,
		Role:      string(manager.Role),
		CreatedAt: manager.CreatedAt,
	}
}
