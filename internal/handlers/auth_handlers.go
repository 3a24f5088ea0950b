package handlers

import (
	"net/http"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/common"
	"github.com/Mrinankcoder/garment-vendor/internal/middleware"
	"github.com/Mrinankcoder/garment-vendor/internal/services"

	"github.com/labstack/echo/v4"
)

const vendorTokenTTL = 24 * time.Hour

// AuthHandlers issues vendor API tokens
type AuthHandlers struct {
	vendorService services.VendorService
	jwtSecret     string
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(vendorService services.VendorService, jwtSecret string) *AuthHandlers {
	return &AuthHandlers{
		vendorService: vendorService,
		jwtSecret:     jwtSecret,
	}
}

// IssueToken handles POST /auth/token
func (h *AuthHandlers) IssueToken(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		VendorID string `json:"vendor_id"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	vendorID, err := common.ValidateUUID(req.VendorID, "vendor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	// Only issue tokens for registered vendors
	if _, err := h.vendorService.GetByID(ctx, vendorID); err != nil {
		return common.SendNotFoundError(c, "Vendor")
	}

	token, err := middleware.IssueVendorToken(h.jwtSecret, vendorID, vendorTokenTTL)
	if err != nil {
		return common.SendServerError(c, "Failed to issue token")
	}

	return c.JSON(http.StatusOK, map[string]string{"token": token})
}
