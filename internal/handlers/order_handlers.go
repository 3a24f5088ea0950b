package handlers

import (
	"errors"
	"net/http"

	"github.com/Mrinankcoder/garment-vendor/internal/common"
	"github.com/Mrinankcoder/garment-vendor/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandlers handles HTTP requests for order placement and history
type OrderHandlers struct {
	placementService services.PlacementServiceInterface
	queryService     services.QueryService
}

// NewOrderHandlers creates a new order handlers instance
func NewOrderHandlers(placementService services.PlacementServiceInterface, queryService services.QueryService) *OrderHandlers {
	return &OrderHandlers{
		placementService: placementService,
		queryService:     queryService,
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandlers) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		RetailerName string `json:"retailer_name"`
		Lines        []struct {
			ItemID   string `json:"item_id"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
	}

	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.RetailerName, "retailer_name"); err != nil {
		return common.SendValidationError(c, "retailer_name", err.Error())
	}
	if len(req.Lines) == 0 {
		return common.SendValidationError(c, "lines", "at least one order line is required")
	}

	lines := make([]services.OrderLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		itemID, err := common.ValidateUUID(line.ItemID, "item_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		lines = append(lines, services.OrderLine{ItemID: itemID, Quantity: line.Quantity})
	}

	orderID, err := h.placementService.PlaceOrder(ctx, req.RetailerName, lines)
	if err != nil {
		return h.sendPlacementError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"order_id": orderID.String()})
}

// sendPlacementError maps the placement failure taxonomy onto HTTP
// status codes. Conflicts are 409 so callers know a resubmit may
// succeed.
func (h *OrderHandlers) sendPlacementError(c echo.Context, err error) error {
	var placementErr *services.PlacementError
	if !errors.As(err, &placementErr) {
		return common.SendServerError(c, "Failed to place order")
	}

	details := map[string]string{}
	if placementErr.ItemID != uuid.Nil {
		details["item_id"] = placementErr.ItemID.String()
	}

	switch placementErr.Kind {
	case services.KindInvalidRequest:
		return c.JSON(http.StatusBadRequest, common.CreateErrorResponse("INVALID_REQUEST", placementErr.Reason, details))
	case services.KindNotFound:
		return c.JSON(http.StatusNotFound, common.CreateErrorResponse("NOT_FOUND", placementErr.Reason, details))
	case services.KindInsufficientStock:
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("INSUFFICIENT_STOCK", placementErr.Reason, details))
	case services.KindConflictAborted:
		return c.JSON(http.StatusConflict, common.CreateErrorResponse("CONFLICT_ABORTED", "Concurrent order conflict, please retry", nil))
	default:
		return common.SendServerError(c, "Failed to place order")
	}
}

// GetOrder handles GET /orders/:id
func (h *OrderHandlers) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	orderID, err := common.ValidateUUID(c.Param("id"), "order_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	order, err := h.queryService.GetOrder(ctx, orderID)
	if err != nil {
		return common.SendNotFoundError(c, "Order")
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders handles GET /orders
func (h *OrderHandlers) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset, err := common.ValidatePaginationParams(
		intQueryParam(c, "limit", 50), intQueryParam(c, "offset", 0))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	retailer := c.QueryParam("retailer")

	var orders interface{}
	if retailer != "" {
		orders, err = h.queryService.RetailerOrderHistory(ctx, retailer, limit, offset)
	} else {
		orders, err = h.queryService.OrderHistory(ctx, limit, offset)
	}
	if err != nil {
		return common.SendServerError(c, "Failed to list orders")
	}

	return c.JSON(http.StatusOK, orders)
}
