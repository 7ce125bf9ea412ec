package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/property-registry/internal/api/dto"
	"github.com/spec-kit/property-registry/internal/identity"
	"github.com/spec-kit/property-registry/internal/service"
	apperrors "github.com/spec-kit/property-registry/pkg/util"
)

// PropertiesHandler exposes the property lifecycle operations.
type PropertiesHandler struct {
	properties *service.PropertyService
}

// NewPropertiesHandler constructs handler.
func NewPropertiesHandler(properties *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: properties}
}

// Request handles POST /registry/properties.
func (h *PropertiesHandler) Request(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PropertyRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.PropertyID == "" || req.OwnerName == "" || req.OwnerNationalID == "" {
		return apperrors.NewValidationError("property_id, owner_name and owner_national_id required", nil)
	}

	property, err := h.properties.RequestPropertyRegistration(c.UserContext(), *principal,
		req.PropertyID, req.Price, req.Status, req.OwnerName, req.OwnerNationalID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// Approve handles POST /registry/properties/:propertyId/approve.
func (h *PropertiesHandler) Approve(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	propertyID := c.Params("propertyId")
	if propertyID == "" {
		return apperrors.NewValidationError("property id required", nil)
	}

	property, err := h.properties.ApprovePropertyRegistration(c.UserContext(), *principal, propertyID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// View handles GET /registry/properties/:propertyId.
func (h *PropertiesHandler) View(c *fiber.Ctx) error {
	propertyID := c.Params("propertyId")
	if propertyID == "" {
		return apperrors.NewValidationError("property id required", nil)
	}

	property, err := h.properties.ViewProperty(c.UserContext(), propertyID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// Update handles PATCH /registry/properties/:propertyId.
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	propertyID := c.Params("propertyId")
	if propertyID == "" {
		return apperrors.NewValidationError("property id required", nil)
	}

	var req dto.PropertyUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.OwnerName == "" || req.OwnerNationalID == "" {
		return apperrors.NewValidationError("owner_name and owner_national_id required", nil)
	}

	property, err := h.properties.UpdateProperty(c.UserContext(), *principal,
		propertyID, req.Status, req.OwnerName, req.OwnerNationalID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}

// Purchase handles POST /registry/properties/:propertyId/purchase.
func (h *PropertiesHandler) Purchase(c *fiber.Ctx) error {
	principal, ok := identity.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	propertyID := c.Params("propertyId")
	if propertyID == "" {
		return apperrors.NewValidationError("property id required", nil)
	}

	var req dto.PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.BuyerName == "" || req.BuyerNationalID == "" {
		return apperrors.NewValidationError("buyer_name and buyer_national_id required", nil)
	}

	property, err := h.properties.PurchaseProperty(c.UserContext(), *principal,
		propertyID, req.BuyerName, req.BuyerNationalID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewPropertyResponse(property)})
}
