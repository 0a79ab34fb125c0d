package model

import "time"

// PaymentStatus describes purchase payment lifecycle.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// IsTerminal reports whether no further status transitions are allowed.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// Purchase represents a single purchase attempt. Reference doubles as the
// record identity and the gateway transaction reference; Amount is captured
// in major currency units at initiation and never recomputed afterwards.
type Purchase struct {
	Reference  string
	CustomerID string
	CarID      string
	Amount     float64
	Status     PaymentStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
