package service

import (
	"time"

	"github.com/spec-kit/property-registry/internal/config"
	"github.com/spec-kit/property-registry/internal/domain"
	"github.com/spec-kit/property-registry/internal/identity"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

// EnrollmentService exchanges an organization's enrollment secret for a
// signed token carrying the caller's role and identifier. It is the local
// stand-in for the network's identity subsystem.
type EnrollmentService struct {
	tokenMgr            *identity.TokenManager
	userSecretHash      string
	registrarSecretHash string
}

// NewEnrollmentService builds the service from identity configuration.
func NewEnrollmentService(cfg config.IdentityConfig) *EnrollmentService {
	return &EnrollmentService{
		tokenMgr:            identity.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLMinutes),
		userSecretHash:      cfg.UserSecretHash,
		registrarSecretHash: cfg.RegistrarSecretHash,
	}
}

// TokenManager exposes the manager for transport middleware wiring.
func (s *EnrollmentService) TokenManager() *identity.TokenManager {
	return s.tokenMgr
}

// Enroll verifies the party secret and issues a token for the caller.
func (s *EnrollmentService) Enroll(role domain.Role, callerID, secret string) (string, time.Time, error) {
	if callerID == "" {
		return "", time.Time{}, apperrors.NewValidationError("caller id is required", nil)
	}

	var hash string
	switch role {
	case domain.RoleUser:
		hash = s.userSecretHash
	case domain.RoleRegistrar:
		hash = s.registrarSecretHash
	default:
		return "", time.Time{}, apperrors.NewValidationError("unknown organization role", map[string]any{
			"role": string(role),
		})
	}

	if hash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("enrollment is not configured for this organization")
	}
	if err := identity.CompareSecret(hash, secret); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid enrollment secret")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(callerID, role)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return token, expiresAt, nil
}
