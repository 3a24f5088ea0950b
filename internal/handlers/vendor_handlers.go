package handlers

import (
	"net/http"

	"github.com/Mrinankcoder/garment-vendor/internal/common"
	"github.com/Mrinankcoder/garment-vendor/internal/models"
	"github.com/Mrinankcoder/garment-vendor/internal/services"

	"github.com/labstack/echo/v4"
)

// VendorHandlers handles HTTP requests for vendors
type VendorHandlers struct {
	vendorService services.VendorService
	queryService  services.QueryService
}

// NewVendorHandlers creates a new vendor handlers instance
func NewVendorHandlers(vendorService services.VendorService, queryService services.QueryService) *VendorHandlers {
	return &VendorHandlers{
		vendorService: vendorService,
		queryService:  queryService,
	}
}

// CreateVendor handles POST /vendors
func (h *VendorHandlers) CreateVendor(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return common.SendValidationError(c, "name", err.Error())
	}

	vendor := &models.Vendor{Name: req.Name, Contact: req.Contact}
	if err := h.vendorService.Create(ctx, vendor); err != nil {
		return common.SendServerError(c, "Failed to create vendor")
	}

	return c.JSON(http.StatusCreated, vendor)
}

// GetVendor handles GET /vendors/:id
func (h *VendorHandlers) GetVendor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "vendor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	vendor, err := h.vendorService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Vendor")
	}

	return c.JSON(http.StatusOK, vendor)
}

// UpdateVendor handles PUT /vendors/:id
func (h *VendorHandlers) UpdateVendor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "vendor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if resp := requireVendor(c, id); resp != nil {
		return resp
	}

	var req struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	vendor := &models.Vendor{ID: id, Name: req.Name, Contact: req.Contact}
	if err := h.vendorService.Update(ctx, vendor); err != nil {
		return common.SendServerError(c, "Failed to update vendor")
	}

	return c.JSON(http.StatusOK, vendor)
}

// DeleteVendor handles DELETE /vendors/:id
func (h *VendorHandlers) DeleteVendor(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "vendor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if resp := requireVendor(c, id); resp != nil {
		return resp
	}

	if err := h.vendorService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete vendor")
	}

	return c.NoContent(http.StatusNoContent)
}

// ListVendors handles GET /vendors
func (h *VendorHandlers) ListVendors(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset, err := common.ValidatePaginationParams(
		intQueryParam(c, "limit", 50), intQueryParam(c, "offset", 0))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	vendors, err := h.vendorService.List(ctx, limit, offset)
	if err != nil {
		return common.SendServerError(c, "Failed to list vendors")
	}

	return c.JSON(http.StatusOK, vendors)
}

// GetVendorSummary handles GET /vendors/:id/summary
func (h *VendorHandlers) GetVendorSummary(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "vendor_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	summary, err := h.queryService.VendorStockSummary(ctx, id)
	if err != nil {
		return common.SendServerError(c, "Failed to compute vendor summary")
	}

	return c.JSON(http.StatusOK, summary)
}
