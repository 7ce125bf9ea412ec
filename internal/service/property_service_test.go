package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/property-registry/internal/domain"
	"github.com/spec-kit/property-registry/internal/ledger"
)

// registryFixture wires both services over one shared in-memory ledger.
type registryFixture struct {
	store      *ledger.Memory
	users      *UserService
	properties *PropertyService
}

func newRegistryFixture() *registryFixture {
	store := ledger.NewMemory()
	return &registryFixture{
		store:      store,
		users:      newUserService(store),
		properties: newPropertyService(store),
	}
}

func (f *registryFixture) rawRecord(t *testing.T, key ledger.Key) []byte {
	t.Helper()
	data, err := f.store.Get(context.Background(), key)
	require.NoError(t, err)
	return data
}

func TestRequestPropertyRegistrationOwnerMustExist(t *testing.T) {
	f := newRegistryFixture()

	_, err := f.properties.RequestPropertyRegistration(context.Background(), userCaller,
		"P1", "500", "registered", "Ghost", "NOPE")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestRequestPropertyRegistrationRequiresUserRole(t *testing.T) {
	f := newRegistryFixture()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(context.Background(), registrarCaller,
		"P1", "500", "registered", "Alice", "AADHAAR1")
	assertErrCode(t, err, "UNAUTHORIZED")
}

func TestRequestPropertyRegistrationDuplicate(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "registered", "Alice", "AADHAAR1")
	require.NoError(t, err)

	_, err = f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "900", "registered", "Alice", "AADHAAR1")
	assertErrCode(t, err, "ALREADY_EXISTS")
}

func TestRequestPropertyRegistrationInvalidStatus(t *testing.T) {
	f := newRegistryFixture()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	for _, status := range []string{"ON_SALE", "onsale", "sold", ""} {
		_, err := f.properties.RequestPropertyRegistration(context.Background(), userCaller,
			"P1", "500", status, "Alice", "AADHAAR1")
		assertErrCode(t, err, "INVALID_STATUS")
	}
}

func TestRequestPropertyRegistrationBadPrice(t *testing.T) {
	f := newRegistryFixture()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(context.Background(), userCaller,
		"P1", "not-a-number", "registered", "Alice", "AADHAAR1")
	assertErrCode(t, err, "VALIDATION_FAILED")

	_, err = f.properties.RequestPropertyRegistration(context.Background(), userCaller,
		"P1", "-10", "registered", "Alice", "AADHAAR1")
	assertErrCode(t, err, "VALIDATION_FAILED")
}

func TestRequestPropertyRegistrationStoresPendingRecord(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	property, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "onSale", "Alice", "AADHAAR1")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusOnSale, property.Status)
	assert.Equal(t, UserKey("Alice", "AADHAAR1").String(), property.Owner)
	assert.True(t, property.Price.Equal(decimal.NewFromInt(500)))

	// The pending request is not visible through the confirmed namespace.
	_, err = f.properties.ViewProperty(ctx, "P1")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestApprovePropertyRegistrationNotFound(t *testing.T) {
	f := newRegistryFixture()

	_, err := f.properties.ApprovePropertyRegistration(context.Background(), registrarCaller, "P404")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestApprovePropertyRegistrationRequiresRegistrarRole(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "requested", "Alice", "AADHAAR1")
	require.NoError(t, err)

	_, err = f.properties.ApprovePropertyRegistration(ctx, userCaller, "P1")
	assertErrCode(t, err, "UNAUTHORIZED")
}

func TestApprovePropertyRegistrationForcesRegistered(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "onSale", "Alice", "AADHAAR1")
	require.NoError(t, err)

	pendingBefore := f.rawRecord(t, PropertyRequestKey("P1"))

	confirmed, err := f.properties.ApprovePropertyRegistration(ctx, registrarCaller, "P1")
	require.NoError(t, err)
	// Status is forced to REGISTERED whatever the request asked for.
	assert.Equal(t, domain.PropertyStatusRegistered, confirmed.Status)
	assert.Equal(t, registrarCaller.ID, confirmed.UpdatedBy)

	// Promotion leaves the pending record byte-for-byte untouched.
	pendingAfter := f.rawRecord(t, PropertyRequestKey("P1"))
	assert.Equal(t, pendingBefore, pendingAfter)

	viewed, err := f.properties.ViewProperty(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusRegistered, viewed.Status)
}

func TestUpdatePropertyByNonOwnerForbidden(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")
	seedApprovedUser(t, f.users, "Bob", "AADHAAR2")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "registered", "Alice", "AADHAAR1")
	require.NoError(t, err)
	_, err = f.properties.ApprovePropertyRegistration(ctx, registrarCaller, "P1")
	require.NoError(t, err)

	before := f.rawRecord(t, PropertyKey("P1"))

	_, err = f.properties.UpdateProperty(ctx, userCaller, "P1", "onSale", "Bob", "AADHAAR2")
	assertErrCode(t, err, "FORBIDDEN")

	// A forbidden update leaves the record byte-for-byte unchanged.
	after := f.rawRecord(t, PropertyKey("P1"))
	assert.Equal(t, before, after)
}

func TestUpdatePropertyInvalidStatus(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "registered", "Alice", "AADHAAR1")
	require.NoError(t, err)
	_, err = f.properties.ApprovePropertyRegistration(ctx, registrarCaller, "P1")
	require.NoError(t, err)

	_, err = f.properties.UpdateProperty(ctx, userCaller, "P1", "sold", "Alice", "AADHAAR1")
	assertErrCode(t, err, "INVALID_STATUS")
}

func TestUpdatePropertyByOwner(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "registered", "Alice", "AADHAAR1")
	require.NoError(t, err)
	_, err = f.properties.ApprovePropertyRegistration(ctx, registrarCaller, "P1")
	require.NoError(t, err)

	updated, err := f.properties.UpdateProperty(ctx, userCaller, "P1", "onSale", "Alice", "AADHAAR1")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusOnSale, updated.Status)

	// The owner can take it back off sale.
	updated, err = f.properties.UpdateProperty(ctx, userCaller, "P1", "registered", "Alice", "AADHAAR1")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusRegistered, updated.Status)
}

// listProperty drives a property through request, approval, and listing.
func listProperty(t *testing.T, f *registryFixture, propertyID, price, ownerName, ownerNationalID string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		propertyID, price, "registered", ownerName, ownerNationalID)
	require.NoError(t, err)
	_, err = f.properties.ApprovePropertyRegistration(ctx, registrarCaller, propertyID)
	require.NoError(t, err)
	_, err = f.properties.UpdateProperty(ctx, userCaller, propertyID, "onSale", ownerName, ownerNationalID)
	require.NoError(t, err)
}

func TestPurchasePropertyNotOnSale(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")
	seedApprovedUser(t, f.users, "Bob", "AADHAAR2", "upg1000")

	_, err := f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "registered", "Alice", "AADHAAR1")
	require.NoError(t, err)
	_, err = f.properties.ApprovePropertyRegistration(ctx, registrarCaller, "P1")
	require.NoError(t, err)

	propertyBefore := f.rawRecord(t, PropertyKey("P1"))
	buyerBefore := f.rawRecord(t, UserKey("Bob", "AADHAAR2"))

	_, err = f.properties.PurchaseProperty(ctx, userCaller, "P1", "Bob", "AADHAAR2")
	assertErrCode(t, err, "NOT_ON_SALE")

	// No partial writes: both records are byte-for-byte unchanged.
	assert.Equal(t, propertyBefore, f.rawRecord(t, PropertyKey("P1")))
	assert.Equal(t, buyerBefore, f.rawRecord(t, UserKey("Bob", "AADHAAR2")))
}

func TestPurchasePropertySelfPurchase(t *testing.T) {
	f := newRegistryFixture()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1", "upg1000")
	listProperty(t, f, "P1", "500", "Alice", "AADHAAR1")

	_, err := f.properties.PurchaseProperty(context.Background(), userCaller, "P1", "Alice", "AADHAAR1")
	assertErrCode(t, err, "SELF_PURCHASE")
}

func TestPurchasePropertyInsufficientFunds(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")
	seedApprovedUser(t, f.users, "Bob", "AADHAAR2", "upg100")
	listProperty(t, f, "P1", "500", "Alice", "AADHAAR1")

	_, err := f.properties.PurchaseProperty(ctx, userCaller, "P1", "Bob", "AADHAAR2")
	assertErrCode(t, err, "INSUFFICIENT_FUNDS")

	// The failed purchase must not move any funds.
	bob, err := f.users.ViewUser(ctx, "Bob", "AADHAAR2")
	require.NoError(t, err)
	assert.True(t, bob.Balance.Equal(decimal.NewFromInt(100)))
}

func TestPurchasePropertyConservesCoins(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1", "upg500")
	seedApprovedUser(t, f.users, "Bob", "AADHAAR2", "upg1000")
	listProperty(t, f, "P1", "500", "Alice", "AADHAAR1")

	aliceBefore, err := f.users.ViewUser(ctx, "Alice", "AADHAAR1")
	require.NoError(t, err)
	bobBefore, err := f.users.ViewUser(ctx, "Bob", "AADHAAR2")
	require.NoError(t, err)
	totalBefore := aliceBefore.Balance.Add(bobBefore.Balance)

	property, err := f.properties.PurchaseProperty(ctx, userCaller, "P1", "Bob", "AADHAAR2")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusRegistered, property.Status)
	assert.Equal(t, UserKey("Bob", "AADHAAR2").String(), property.Owner)

	aliceAfter, err := f.users.ViewUser(ctx, "Alice", "AADHAAR1")
	require.NoError(t, err)
	bobAfter, err := f.users.ViewUser(ctx, "Bob", "AADHAAR2")
	require.NoError(t, err)

	assert.True(t, bobAfter.Balance.Equal(bobBefore.Balance.Sub(property.Price)),
		"buyer pays exactly the asking price")
	assert.True(t, aliceAfter.Balance.Equal(aliceBefore.Balance.Add(property.Price)),
		"seller receives exactly the asking price")
	assert.True(t, totalBefore.Equal(aliceAfter.Balance.Add(bobAfter.Balance)),
		"total coins are conserved")
}

func TestPurchasedPropertyCanBeRelisted(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()
	seedApprovedUser(t, f.users, "Alice", "AADHAAR1")
	seedApprovedUser(t, f.users, "Bob", "AADHAAR2", "upg1000")
	listProperty(t, f, "P1", "500", "Alice", "AADHAAR1")

	_, err := f.properties.PurchaseProperty(ctx, userCaller, "P1", "Bob", "AADHAAR2")
	require.NoError(t, err)

	// The previous owner no longer controls the property.
	_, err = f.properties.UpdateProperty(ctx, userCaller, "P1", "onSale", "Alice", "AADHAAR1")
	assertErrCode(t, err, "FORBIDDEN")

	// The new owner can put it back on sale.
	updated, err := f.properties.UpdateProperty(ctx, userCaller, "P1", "onSale", "Bob", "AADHAAR2")
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyStatusOnSale, updated.Status)
}

func TestEndToEndRegistrationAndSale(t *testing.T) {
	f := newRegistryFixture()
	ctx := context.Background()

	// Alice onboards and funds her account with 1000 coins.
	_, err := f.users.RequestUser(ctx, userCaller, "Alice", "alice@example.com", "555-0100", "AADHAAR1")
	require.NoError(t, err)
	_, err = f.users.ApproveUser(ctx, registrarCaller, "Alice", "AADHAAR1")
	require.NoError(t, err)
	alice, err := f.users.RechargeAccount(ctx, userCaller, "Alice", "AADHAAR1", "upg1000")
	require.NoError(t, err)
	require.True(t, alice.Balance.Equal(decimal.NewFromInt(1000)))

	// Bob onboards with 500 coins.
	_, err = f.users.RequestUser(ctx, userCaller, "Bob", "bob@example.com", "555-0200", "AADHAAR2")
	require.NoError(t, err)
	_, err = f.users.ApproveUser(ctx, registrarCaller, "Bob", "AADHAAR2")
	require.NoError(t, err)
	_, err = f.users.RechargeAccount(ctx, userCaller, "Bob", "AADHAAR2", "upg500")
	require.NoError(t, err)

	// Alice registers P1 at price 500, asking for onSale up front.
	_, err = f.properties.RequestPropertyRegistration(ctx, userCaller,
		"P1", "500", "onSale", "Alice", "AADHAAR1")
	require.NoError(t, err)

	// Approval forces REGISTERED and leaves the pending request behind.
	pendingBefore := f.rawRecord(t, PropertyRequestKey("P1"))
	confirmed, err := f.properties.ApprovePropertyRegistration(ctx, registrarCaller, "P1")
	require.NoError(t, err)
	require.Equal(t, domain.PropertyStatusRegistered, confirmed.Status)
	assert.Equal(t, pendingBefore, f.rawRecord(t, PropertyRequestKey("P1")))

	// Alice lists, Bob buys.
	_, err = f.properties.UpdateProperty(ctx, userCaller, "P1", "onSale", "Alice", "AADHAAR1")
	require.NoError(t, err)
	property, err := f.properties.PurchaseProperty(ctx, userCaller, "P1", "Bob", "AADHAAR2")
	require.NoError(t, err)

	assert.Equal(t, UserKey("Bob", "AADHAAR2").String(), property.Owner)
	assert.Equal(t, domain.PropertyStatusRegistered, property.Status)

	alice, err = f.users.ViewUser(ctx, "Alice", "AADHAAR1")
	require.NoError(t, err)
	bob, err := f.users.ViewUser(ctx, "Bob", "AADHAAR2")
	require.NoError(t, err)
	assert.True(t, alice.Balance.Equal(decimal.NewFromInt(1500)), "Alice receives the sale price")
	assert.True(t, bob.Balance.IsZero(), "Bob pays the full price")
}

func TestViewPropertyNotFound(t *testing.T) {
	f := newRegistryFixture()

	_, err := f.properties.ViewProperty(context.Background(), "P404")
	assertErrCode(t, err, "NOT_FOUND")
}

func TestPropertyStoreFailureSurfacesAsStoreUnavailable(t *testing.T) {
	properties := newPropertyService(failingLedger{})

	_, err := properties.ViewProperty(context.Background(), "P1")
	assertErrCode(t, err, "STORE_UNAVAILABLE")
}
