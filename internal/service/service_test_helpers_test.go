package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/property-registry/internal/domain"
	"github.com/spec-kit/property-registry/internal/ledger"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

var (
	userCaller      = domain.Principal{ID: "user-caller-1", Role: domain.RoleUser}
	registrarCaller = domain.Principal{ID: "registrar-1", Role: domain.RoleRegistrar}
)

// fixedClock returns a constant time so audit stamps are deterministic.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

var testTime = time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

func newUserService(store ledger.Ledger) *UserService {
	return NewUserService(UserDependencies{
		Ledger: store,
		Clock:  fixedClock{t: testTime},
	})
}

func newPropertyService(store ledger.Ledger) *PropertyService {
	return NewPropertyService(PropertyDependencies{
		Ledger: store,
		Clock:  fixedClock{t: testTime},
	})
}

// seedApprovedUser registers and approves a user through the real
// operations, then recharges it to the requested balance using upg1000
// codes plus smaller denominations.
func seedApprovedUser(t *testing.T, users *UserService, name, nationalID string, recharges ...string) *domain.User {
	t.Helper()
	ctx := context.Background()

	_, err := users.RequestUser(ctx, userCaller, name, name+"@example.com", "555-0100", nationalID)
	require.NoError(t, err)

	user, err := users.ApproveUser(ctx, registrarCaller, name, nationalID)
	require.NoError(t, err)

	for _, code := range recharges {
		user, err = users.RechargeAccount(ctx, userCaller, name, nationalID, code)
		require.NoError(t, err)
	}
	return user
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}

// failingLedger simulates a store outage on every operation.
type failingLedger struct{}

var errStoreDown = errors.New("connection refused")

func (failingLedger) Get(context.Context, ledger.Key) ([]byte, error) {
	return nil, errStoreDown
}

func (failingLedger) Put(context.Context, ledger.Key, []byte) error {
	return errStoreDown
}

func (failingLedger) Apply(context.Context, []ledger.Write) error {
	return errStoreDown
}
