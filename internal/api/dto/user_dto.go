package dto

import (
	"time"

	"github.com/spec-kit/property-registry/internal/domain"
)

// UserRequest payload for self-registration requests.
type UserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
}

// UserApproveRequest payload for registrar approval.
type UserApproveRequest struct {
	Name       string `json:"name"`
	NationalID string `json:"national_id"`
}

// RechargeRequest payload for account recharges.
type RechargeRequest struct {
	Name            string `json:"name"`
	NationalID      string `json:"national_id"`
	TransactionCode string `json:"transaction_code"`
}

// UserResponse is the wire form of a user record.
type UserResponse struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	NationalID string    `json:"national_id"`
	Balance    string    `json:"balance"`
	State      string    `json:"state"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedBy  string    `json:"updated_by"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewUserResponse maps a domain user to its wire form.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		NationalID: user.NationalID,
		Balance:    user.Balance.String(),
		State:      string(user.State),
		CreatedBy:  user.CreatedBy,
		CreatedAt:  user.CreatedAt,
		UpdatedBy:  user.UpdatedBy,
		UpdatedAt:  user.UpdatedAt,
	}
}
