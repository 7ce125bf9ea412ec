package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserState represents lifecycle states for a registry user.
type UserState string

const (
	UserStateRequested UserState = "REQUESTED"
	UserStateApproved  UserState = "APPROVED"
)

// User is the domain model for parties registered on the network. A user is
// addressed by the (Name, NationalID) pair; there is no surrogate key.
type User struct {
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	NationalID string          `json:"nationalId"`
	Balance    decimal.Decimal `json:"balance"`
	State      UserState       `json:"state"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedBy  string          `json:"updatedBy"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
