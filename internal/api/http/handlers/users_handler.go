package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/property-registry/internal/api/dto"
	"github.com/spec-kit/property-registry/internal/identity"
	"github.com/spec-kit/property-registry/internal/service"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

// UsersHandler exposes the user lifecycle operations.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Request handles POST /registry/users.
func (h *UsersHandler) Request(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.NationalID == "" {
		return apperrors.NewValidationError("name and national_id required", nil)
	}

	user, err := h.users.RequestUser(c.UserContext(), *principal, req.Name, req.Email, req.Phone, req.NationalID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Approve handles POST /registry/users/approve.
func (h *UsersHandler) Approve(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UserApproveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.NationalID == "" {
		return apperrors.NewValidationError("name and national_id required", nil)
	}

	user, err := h.users.ApproveUser(c.UserContext(), *principal, req.Name, req.NationalID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// View handles GET /registry/users/:name/:nationalId.
func (h *UsersHandler) View(c *fiber.Ctx) error {
	name := c.Params("name")
	nationalID := c.Params("nationalId")
	if name == "" || nationalID == "" {
		return apperrors.NewValidationError("name and national id required", nil)
	}

	user, err := h.users.ViewUser(c.UserContext(), name, nationalID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Recharge handles POST /registry/users/recharge.
func (h *UsersHandler) Recharge(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.RechargeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.NationalID == "" || req.TransactionCode == "" {
		return apperrors.NewValidationError("name, national_id and transaction_code required", nil)
	}

	user, err := h.users.RechargeAccount(c.UserContext(), *principal, req.Name, req.NationalID, req.TransactionCode)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
