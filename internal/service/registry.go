package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/property-registry/internal/ledger"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

// Ledger namespaces. Users live under one namespace; properties occupy two:
// pending registration requests and confirmed records. Promotion writes the
// confirmed record and leaves the pending one in place for audit.
const (
	nsUser            = "registry.user"
	nsPropertyRequest = "registry.property.request"
	nsProperty        = "registry.property"
)

// UserKey derives the composite key addressing a user. The (name,
// nationalID) pair is the user's identity; there is no surrogate key.
func UserKey(name, nationalID string) ledger.Key {
	return ledger.NewKey(nsUser, name, nationalID)
}

// PropertyRequestKey derives the key of a pending registration request.
func PropertyRequestKey(propertyID string) ledger.Key {
	return ledger.NewKey(nsPropertyRequest, propertyID)
}

// PropertyKey derives the key of a confirmed property record.
func PropertyKey(propertyID string) ledger.Key {
	return ledger.NewKey(nsProperty, propertyID)
}

// Clock supplies timestamps for audit stamps. Injected so tests are
// deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// DefaultRechargeTable returns the fixed table mapping bank transaction
// codes to coin credits.
func DefaultRechargeTable() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"upg100":  decimal.NewFromInt(100),
		"upg500":  decimal.NewFromInt(500),
		"upg1000": decimal.NewFromInt(1000),
	}
}

// readRecord fetches raw bytes from the ledger, distinguishing absence
// from store failure. A store failure is already wrapped for the caller.
func readRecord(ctx context.Context, store ledger.Ledger, key ledger.Key) ([]byte, bool, error) {
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ledger.ErrKeyAbsent) {
			return nil, false, nil
		}
		return nil, false, apperrors.NewStoreUnavailable(err)
	}
	return data, true, nil
}
