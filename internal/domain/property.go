package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyStatus enumerates lifecycle states for properties.
type PropertyStatus string

const (
	PropertyStatusRequested  PropertyStatus = "REQUESTED"
	PropertyStatusRegistered PropertyStatus = "REGISTERED"
	PropertyStatusOnSale     PropertyStatus = "ON_SALE"
)

// propertyStatusTable maps caller-supplied status keys to canonical values.
// Lookup is case-sensitive.
var propertyStatusTable = map[string]PropertyStatus{
	"requested":  PropertyStatusRequested,
	"registered": PropertyStatusRegistered,
	"onSale":     PropertyStatusOnSale,
}

// ParsePropertyStatus resolves a caller-supplied status key to its canonical
// value. The second return is false for keys outside the table.
func ParsePropertyStatus(key string) (PropertyStatus, bool) {
	status, ok := propertyStatusTable[key]
	return status, ok
}

// Property is the domain model for registered real estate. The same type
// backs both the pending-request and confirmed representations; the variant
// is expressed by the ledger namespace the record is stored under.
type Property struct {
	PropertyID string          `json:"propertyId"`
	Owner      string          `json:"owner"`
	Price      decimal.Decimal `json:"price"`
	Status     PropertyStatus  `json:"status"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedBy  string          `json:"updatedBy"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
