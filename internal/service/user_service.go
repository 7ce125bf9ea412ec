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

// UserService coordinates the user onboarding and account lifecycle.
type UserService struct {
	store      ledger.Ledger
	dispatcher events.Dispatcher
	clock      Clock
	recharge   map[string]decimal.Decimal
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	Ledger        ledger.Ledger
	Dispatcher    events.Dispatcher
	Clock         Clock
	RechargeTable map[string]decimal.Decimal
}

// NewUserService constructs the service. The recharge table is copied once
// at construction and never mutated afterwards.
func NewUserService(deps UserDependencies) *UserService {
	clock := deps.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	table := deps.RechargeTable
	if table == nil {
		table = DefaultRechargeTable()
	}
	recharge := make(map[string]decimal.Decimal, len(table))
	for code, credit := range table {
		recharge[code] = credit
	}
	return &UserService{
		store:      deps.Ledger,
		dispatcher: deps.Dispatcher,
		clock:      clock,
		recharge:   recharge,
	}
}

// RequestUser records a self-registration request in REQUESTED state.
func (s *UserService) RequestUser(ctx context.Context, caller domain.Principal, name, email, phone, nationalID string) (*domain.User, error) {
	if caller.Role != domain.RoleUser {
		return nil, apperrors.NewUnauthorized("only the user organization can request registration")
	}

	key := UserKey(name, nationalID)
	_, found, err := readRecord(ctx, s.store, key)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, apperrors.NewAlreadyExists("a user with this name and national id already exists", map[string]any{
			"name": name,
		})
	}

	now := s.clock.Now()
	user := &domain.User{
		Name:       name,
		Email:      email,
		Phone:      phone,
		NationalID: nationalID,
		Balance:    decimal.Zero,
		State:      domain.UserStateRequested,
		CreatedBy:  caller.ID,
		CreatedAt:  now,
		UpdatedBy:  caller.ID,
		UpdatedAt:  now,
	}

	if err := s.putUser(ctx, key, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRequested, caller, user)
	return user, nil
}

// ApproveUser promotes a requested user to APPROVED and opens its account
// with a zero balance. Approving an already approved user repeats the
// balance reset; see DESIGN.md for the rationale.
func (s *UserService) ApproveUser(ctx context.Context, caller domain.Principal, name, nationalID string) (*domain.User, error) {
	if caller.Role != domain.RoleRegistrar {
		return nil, apperrors.NewUnauthorized("only the registrar can approve users")
	}

	key := UserKey(name, nationalID)
	user, err := s.getUser(ctx, key)
	if err != nil {
		return nil, err
	}

	user.Balance = decimal.Zero
	user.State = domain.UserStateApproved
	user.UpdatedBy = caller.ID
	user.UpdatedAt = s.clock.Now()

	if err := s.putUser(ctx, key, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserApproved, caller, user)
	return user, nil
}

// ViewUser returns the current state of a user. Any authenticated caller
// may view any user.
func (s *UserService) ViewUser(ctx context.Context, name, nationalID string) (*domain.User, error) {
	return s.getUser(ctx, UserKey(name, nationalID))
}

// RechargeAccount credits a user's balance by the amount the transaction
// code maps to. Codes carry no replay protection; the same code may be
// presented any number of times.
func (s *UserService) RechargeAccount(ctx context.Context, caller domain.Principal, name, nationalID, transactionCode string) (*domain.User, error) {
	if caller.Role != domain.RoleUser {
		return nil, apperrors.NewUnauthorized("only the user organization can recharge accounts")
	}

	key := UserKey(name, nationalID)
	user, err := s.getUser(ctx, key)
	if err != nil {
		return nil, err
	}

	credit, ok := s.recharge[transactionCode]
	if !ok {
		return nil, apperrors.NewInvalidTransaction("no bank transaction found with the given code", map[string]any{
			"transaction_code": transactionCode,
		})
	}

	user.Balance = user.Balance.Add(credit)
	user.UpdatedBy = caller.ID
	user.UpdatedAt = s.clock.Now()

	if err := s.putUser(ctx, key, user); err != nil {
		return nil, err
	}

	s.publishRecharge(ctx, caller, user, transactionCode, credit)
	return user, nil
}

func (s *UserService) getUser(ctx context.Context, key ledger.Key) (*domain.User, error) {
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

func (s *UserService) putUser(ctx context.Context, key ledger.Key, user *domain.User) error {
	data, err := domain.EncodeUser(user)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.store.Put(ctx, key, data); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, caller domain.Principal, user *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   UserKey(user.Name, user.NationalID).String(),
		Actor:     events.Actor{ID: caller.ID, Role: caller.Role},
		Timestamp: s.clock.Now(),
		Payload: events.UserLifecyclePayload{
			Name:       user.Name,
			NationalID: user.NationalID,
			State:      user.State,
		},
	})
}

func (s *UserService) publishRecharge(ctx context.Context, caller domain.Principal, user *domain.User, code string, credit decimal.Decimal) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAccountRecharged,
		Subject:   UserKey(user.Name, user.NationalID).String(),
		Actor:     events.Actor{ID: caller.ID, Role: caller.Role},
		Timestamp: s.clock.Now(),
		Payload: events.AccountRechargedPayload{
			Name:            user.Name,
			NationalID:      user.NationalID,
			TransactionCode: code,
			Credit:          credit,
			Balance:         user.Balance,
		},
	})
}
