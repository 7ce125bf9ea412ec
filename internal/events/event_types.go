package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/property-registry/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRequested     EventType = "user_requested"
	EventUserApproved      EventType = "user_approved"
	EventAccountRecharged  EventType = "account_recharged"
	EventPropertyRequested EventType = "property_requested"
	EventPropertyApproved  EventType = "property_approved"
	EventPropertyUpdated   EventType = "property_updated"
	EventPropertyPurchased EventType = "property_purchased"
)

// Actor encapsulates the caller that triggered an event.
type Actor struct {
	ID   string      `json:"id"`
	Role domain.Role `json:"role"`
}

// Event represents a domain event emitted after a successful mutation.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserLifecyclePayload accompanies user_requested and user_approved.
type UserLifecyclePayload struct {
	Name       string           `json:"name"`
	NationalID string           `json:"national_id"`
	State      domain.UserState `json:"state"`
}

// AccountRechargedPayload accompanies account_recharged.
type AccountRechargedPayload struct {
	Name            string          `json:"name"`
	NationalID      string          `json:"national_id"`
	TransactionCode string          `json:"transaction_code"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
}

// PropertyLifecyclePayload accompanies property lifecycle events.
type PropertyLifecyclePayload struct {
	PropertyID string                `json:"property_id"`
	Owner      string                `json:"owner"`
	Status     domain.PropertyStatus `json:"status"`
	Price      decimal.Decimal       `json:"price"`
}
