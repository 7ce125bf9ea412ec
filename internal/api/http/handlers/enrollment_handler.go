package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/property-registry/internal/api/dto"
	"github.com/spec-kit/property-registry/internal/domain"
	"github.com/spec-kit/property-registry/internal/service"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

// EnrollmentHandler exposes token issuance.
type EnrollmentHandler struct {
	enrollment *service.EnrollmentService
}

// NewEnrollmentHandler constructs handler.
func NewEnrollmentHandler(enrollment *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollment: enrollment}
}

// Enroll handles POST /auth/enroll.
func (h *EnrollmentHandler) Enroll(c *fiber.Ctx) error {
	var req dto.EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Role == "" || req.CallerID == "" || req.Secret == "" {
		return apperrors.NewValidationError("role, caller_id and secret required", nil)
	}

	token, expiresAt, err := h.enrollment.Enroll(domain.Role(req.Role), req.CallerID, req.Secret)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt}})
}
