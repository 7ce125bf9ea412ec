package dto

import (
	"time"

	"github.com/spec-kit/property-registry/internal/domain"
)

// PropertyRegistrationRequest payload for pending registration requests.
// Price travels as a string and is parsed at the operation boundary.
type PropertyRegistrationRequest struct {
	PropertyID      string `json:"property_id"`
	Price           string `json:"price"`
	Status          string `json:"status"`
	OwnerName       string `json:"owner_name"`
	OwnerNationalID string `json:"owner_national_id"`
}

// PropertyUpdateRequest payload for status updates by the owner.
type PropertyUpdateRequest struct {
	Status          string `json:"status"`
	OwnerName       string `json:"owner_name"`
	OwnerNationalID string `json:"owner_national_id"`
}

// PurchaseRequest payload for property purchases.
type PurchaseRequest struct {
	BuyerName       string `json:"buyer_name"`
	BuyerNationalID string `json:"buyer_national_id"`
}

// PropertyResponse is the wire form of a property record.
type PropertyResponse struct {
	PropertyID string    `json:"property_id"`
	Owner      string    `json:"owner"`
	Price      string    `json:"price"`
	Status     string    `json:"status"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedBy  string    `json:"updated_by"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPropertyResponse maps a domain property to its wire form.
func NewPropertyResponse(property *domain.Property) PropertyResponse {
	return PropertyResponse{
		PropertyID: property.PropertyID,
		Owner:      property.Owner,
		Price:      property.Price.String(),
		Status:     string(property.Status),
		CreatedBy:  property.CreatedBy,
		CreatedAt:  property.CreatedAt,
		UpdatedBy:  property.UpdatedBy,
		UpdatedAt:  property.UpdatedAt,
	}
}
