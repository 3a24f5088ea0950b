package handlers

import (
	"net/http"
	"strconv"

	"github.com/Mrinankcoder/garment-vendor/internal/common"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// requireVendor enforces that the authenticated vendor from the JWT
// owns the resource being mutated. Routes outside the protected group
// carry no vendor in context and must not call this.
func requireVendor(c echo.Context, ownerID uuid.UUID) error {
	vendorID, ok := common.GetVendorIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if vendorID != ownerID {
		return c.JSON(http.StatusForbidden, common.CreateErrorResponse("FORBIDDEN", "Vendor does not own this resource", nil))
	}
	return nil
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
