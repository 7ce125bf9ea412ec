package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/property-registry/internal/domain"
	"github.com/spec-kit/property-registry/internal/events"
	"github.com/spec-kit/property-registry/internal/ledger"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

// PropertyService coordinates property registration, listing, and purchase.
type PropertyService struct {
	store      ledger.Ledger
	dispatcher events.Dispatcher
	clock      Clock
}

// PropertyDependencies bundles collaborators for the property service.
type PropertyDependencies struct {
	Ledger     ledger.Ledger
	Dispatcher events.Dispatcher
	Clock      Clock
}

// NewPropertyService constructs the service.
func NewPropertyService(deps PropertyDependencies) *PropertyService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	return &PropertyService{
		store:      deps.Ledger,
		dispatcher: deps.Dispatcher,
		clock:      clock,
	}
}

// RequestPropertyRegistration records a pending registration request for a
// property owned by an existing user.
func (s *PropertyService) RequestPropertyRegistration(ctx context.Context, caller domain.Principal, propertyID, price, statusKey, ownerName, ownerNationalID string) (*domain.Property, error) {
	if caller.Role != domain.RoleUser {
		return nil, apperrors.NewUnauthorized("only the user organization can request property registration")
	}

	ownerKey := UserKey(ownerName, ownerNationalID)
	if _, err := s.getUser(ctx, ownerKey); err != nil {
		return nil, err
	}

	requestKey := PropertyRequestKey(propertyID)
	_, found, err := readRecord(ctx, s.store, requestKey)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, apperrors.NewAlreadyExists("a property with the given property id already exists", map[string]any{
			"property_id": propertyID,
		})
	}

	status, ok := domain.ParsePropertyStatus(statusKey)
	if !ok {
		return nil, apperrors.NewInvalidStatus("the given property status is not valid", map[string]any{
			"status": statusKey,
		})
	}

	parsedPrice, err := decimal.NewFromString(price)
	if err != nil {
		return nil, apperrors.NewValidationError("price must be a decimal number", map[string]any{
			"price": price,
		})
	}
	if parsedPrice.IsNegative() {
		return nil, apperrors.NewValidationError("price must not be negative", map[string]any{
			"price": price,
		})
	}

	now := s.clock.Now()
	property := &domain.Property{
		PropertyID: propertyID,
		Owner:      ownerKey.String(),
		Price:      parsedPrice,
		Status:     status,
		CreatedBy:  caller.ID,
		CreatedAt:  now,
		UpdatedBy:  caller.ID,
		UpdatedAt:  now,
	}

	if err := s.putProperty(ctx, requestKey, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyRequested, caller, property)
	return property, nil
}

// ApprovePropertyRegistration promotes a pending request to a confirmed
// property record. The status is forced to REGISTERED regardless of what
// the request asked for, and the pending record stays on the ledger.
func (s *PropertyService) ApprovePropertyRegistration(ctx context.Context, caller domain.Principal, propertyID string) (*domain.Property, error) {
	if caller.Role != domain.RoleRegistrar {
		return nil, apperrors.NewUnauthorized("only the registrar can approve property registrations")
	}

	property, err := s.getProperty(ctx, PropertyRequestKey(propertyID))
	if err != nil {
		return nil, err
	}

	property.Status = domain.PropertyStatusRegistered
	property.UpdatedBy = caller.ID
	property.UpdatedAt = s.clock.Now()

	if err := s.putProperty(ctx, PropertyKey(propertyID), property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyApproved, caller, property)
	return property, nil
}

// ViewProperty returns the confirmed property record.
func (s *PropertyService) ViewProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	return s.getProperty(ctx, PropertyKey(propertyID))
}

// UpdateProperty changes the status of a confirmed property. Only the
// stored owner may update it.
func (s *PropertyService) UpdateProperty(ctx context.Context, caller domain.Principal, propertyID, statusKey, ownerName, ownerNationalID string) (*domain.Property, error) {
	if caller.Role != domain.RoleUser {
		return nil, apperrors.NewUnauthorized("only the user organization can update properties")
	}

	propertyKey := PropertyKey(propertyID)
	property, err := s.getProperty(ctx, propertyKey)
	if err != nil {
		return nil, err
	}

	ownerKey := UserKey(ownerName, ownerNationalID)
	if _, err := s.getUser(ctx, ownerKey); err != nil {
		return nil, err
	}

	status, ok := domain.ParsePropertyStatus(statusKey)
	if !ok {
		return nil, apperrors.NewInvalidStatus("the given property status is not valid", map[string]any{
			"status": statusKey,
		})
	}

	if ownerKey.String() != property.Owner {
		return nil, apperrors.NewForbidden("only the owner can update this property")
	}

	property.Status = status
	property.UpdatedBy = caller.ID
	property.UpdatedAt = s.clock.Now()

	if err := s.putProperty(ctx, propertyKey, property); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventPropertyUpdated, caller, property)
	return property, nil
}

// PurchaseProperty transfers a listed property to the buyer and moves
// exactly the asking price from the buyer's balance to the seller's. The
// buyer, the seller, and the property commit as one atomic ledger write.
func (s *PropertyService) PurchaseProperty(ctx context.Context, caller domain.Principal, propertyID, buyerName, buyerNationalID string) (*domain.Property, error) {
	if caller.Role != domain.RoleUser {
		return nil, apperrors.NewUnauthorized("only the user organization can purchase properties")
	}

	propertyKey := PropertyKey(propertyID)
	property, err := s.getProperty(ctx, propertyKey)
	if err != nil {
		return nil, err
	}

	buyerKey := UserKey(buyerName, buyerNationalID)
	buyer, err := s.getUser(ctx, buyerKey)
	if err != nil {
		return nil, err
	}

	if property.Status != domain.PropertyStatusOnSale {
		return nil, apperrors.NewNotOnSale("this property is not listed for sale")
	}

	if buyerKey.String() == property.Owner {
		return nil, apperrors.NewSelfPurchase("owners cannot purchase their own property")
	}

	sellerKey := ledger.ParseKey(property.Owner)
	seller, err := s.getUser(ctx, sellerKey)
	if err != nil {
		return nil, err
	}

	if buyer.Balance.LessThan(property.Price) {
		return nil, apperrors.NewInsufficientFunds("not enough funds to purchase this property", map[string]any{
			"price":   property.Price.String(),
			"balance": buyer.Balance.String(),
		})
	}

	now := s.clock.Now()
	buyer.Balance = buyer.Balance.Sub(property.Price)
	buyer.UpdatedBy = caller.ID
	buyer.UpdatedAt = now
	seller.Balance = seller.Balance.Add(property.Price)
	seller.UpdatedBy = caller.ID
	seller.UpdatedAt = now

	property.Owner = buyerKey.String()
	property.Status = domain.PropertyStatusRegistered
	property.UpdatedBy = caller.ID
	property.UpdatedAt = now

	buyerData, err := domain.EncodeUser(buyer)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	sellerData, err := domain.EncodeUser(seller)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	propertyData, err := domain.EncodeProperty(property)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	writes := []ledger.Write{
		{Key: buyerKey, Value: buyerData},
		{Key: sellerKey, Value: sellerData},
		{Key: propertyKey, Value: propertyData},
	}
	if err := s.store.Apply(ctx, writes); err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	s.publish(ctx, events.EventPropertyPurchased, caller, property)
	return property, nil
}

func (s *PropertyService) getUser(ctx context.Context, key ledger.Key) (*domain.User, error) {
	data, found, err := readRecord(ctx, s.store, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFound("no user exists with the given name and national id", nil)
	}
	user, err := domain.DecodeUser(data)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

func (s *PropertyService) getProperty(ctx context.Context, key ledger.Key) (*domain.Property, error) {
	data, found, err := readRecord(ctx, s.store, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.NewNotFound("no property exists with the given property id", nil)
	}
	property, err := domain.DecodeProperty(data)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return property, nil
}

func (s *PropertyService) putProperty(ctx context.Context, key ledger.Key, property *domain.Property) error {
	data, err := domain.EncodeProperty(property)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

func (s *PropertyService) publish(ctx context.Context, eventType events.EventType, caller domain.Principal, property *domain.Property) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   PropertyKey(property.PropertyID).String(),
		Actor:     events.Actor{ID: caller.ID, Role: caller.Role},
		Timestamp: s.clock.Now(),
		Payload: events.PropertyLifecyclePayload{
			PropertyID: property.PropertyID,
			Owner:      property.Owner,
			Status:     property.Status,
			Price:      property.Price,
		},
	})
}
