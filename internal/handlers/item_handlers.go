package handlers

import (
	"net/http"
	"time"

	"github.com/Mrinankcoder/garment-vendor/internal/common"
	"github.com/Mrinankcoder/garment-vendor/internal/models"
	"github.com/Mrinankcoder/garment-vendor/internal/repositories"
	"github.com/Mrinankcoder/garment-vendor/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

const presignedURLExpiry = 15 * time.Minute

// ItemHandlers handles HTTP requests for catalog items and their images
type ItemHandlers struct {
	itemService  services.ItemService
	imageStorage services.ImageStorageService
	imageRepo    repositories.ItemImageRepository
}

// NewItemHandlers creates a new item handlers instance
func NewItemHandlers(itemService services.ItemService, imageStorage services.ImageStorageService, imageRepo repositories.ItemImageRepository) *ItemHandlers {
	return &ItemHandlers{
		itemService:  itemService,
		imageStorage: imageStorage,
		imageRepo:    imageRepo,
	}
}

type itemRequest struct {
	VendorID  string `json:"vendor_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

func (h *ItemHandlers) bindItem(c echo.Context) (*models.Item, error) {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return nil, common.SendClientError(c, "Invalid request format")
	}

	vendorID, err := common.ValidateUUID(req.VendorID, "vendor_id")
	if err != nil {
		return nil, common.SendClientError(c, err.Error())
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, common.SendValidationError(c, "name", err.Error())
	}

	price, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		return nil, common.SendValidationError(c, "unit_price", "must be a decimal number")
	}
	if price.IsNegative() {
		return nil, common.SendValidationError(c, "unit_price", "cannot be negative")
	}
	if req.Quantity < 0 {
		return nil, common.SendValidationError(c, "quantity", "cannot be negative")
	}

	return &models.Item{
		VendorID:  vendorID,
		Name:      req.Name,
		Size:      req.Size,
		Color:     req.Color,
		UnitPrice: price,
		Quantity:  req.Quantity,
		Available: req.Available,
	}, nil
}

// CreateItem handles POST /items
func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	item, err := h.bindItem(c)
	if item == nil {
		return err
	}

	if resp := requireVendor(c, item.VendorID); resp != nil {
		return resp
	}

	if err := h.itemService.Create(ctx, item); err != nil {
		return common.SendServerError(c, "Failed to create item")
	}

	return c.JSON(http.StatusCreated, item)
}

// GetItem handles GET /items/:id
func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles PUT /items/:id
func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	existing, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}
	if resp := requireVendor(c, existing.VendorID); resp != nil {
		return resp
	}

	item, bindErr := h.bindItem(c)
	if item == nil {
		return bindErr
	}
	if item.VendorID != existing.VendorID {
		return common.SendValidationError(c, "vendor_id", "items cannot move between vendors")
	}
	item.ID = id

	if err := h.itemService.Update(ctx, item); err != nil {
		return common.SendServerError(c, "Failed to update item")
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /items/:id
func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	existing, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}
	if resp := requireVendor(c, existing.VendorID); resp != nil {
		return resp
	}

	if err := h.itemService.Delete(ctx, id); err != nil {
		return common.SendServerError(c, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}

// ListItems handles GET /items with optional vendor filter
func (h *ItemHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	limit, offset, err := common.ValidatePaginationParams(
		intQueryParam(c, "limit", 50), intQueryParam(c, "offset", 0))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var items []*models.Item
	if vendorParam := c.QueryParam("vendor_id"); vendorParam != "" {
		vendorID, err := common.ValidateUUID(vendorParam, "vendor_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		items, err = h.itemService.ListByVendor(ctx, vendorID, limit, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to list items")
		}
	} else {
		items, err = h.itemService.List(ctx, limit, offset)
		if err != nil {
			return common.SendServerError(c, "Failed to list items")
		}
	}

	return c.JSON(http.StatusOK, items)
}

// SearchItems handles GET /items/search
func (h *ItemHandlers) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()

	filter := &models.ItemSearchFilter{
		Query:     c.QueryParam("q"),
		SortBy:    c.QueryParam("sort_by"),
		SortOrder: c.QueryParam("sort_order"),
		Limit:     intQueryParam(c, "limit", 50),
		Offset:    intQueryParam(c, "offset", 0),
	}
	if vendorParam := c.QueryParam("vendor_id"); vendorParam != "" {
		vendorID, err := common.ValidateUUID(vendorParam, "vendor_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		filter.VendorID = &vendorID
	}

	items, err := h.itemService.Search(ctx, filter)
	if err != nil {
		return common.SendServerError(c, "Failed to search items")
	}

	return c.JSON(http.StatusOK, items)
}

// UploadItemImage handles POST /items/:id/images
func (h *ItemHandlers) UploadItemImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	// Item must exist before accepting an upload for it
	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}
	if resp := requireVendor(c, item.VendorID); resp != nil {
		return resp
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendClientError(c, "image file is required")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	objectKey, err := h.imageStorage.UploadItemImage(ctx, id, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return common.SendServerError(c, "Failed to store image")
	}

	image := &models.ItemImage{
		ID:        uuid.New(),
		ItemID:    id,
		ObjectKey: objectKey,
	}
	if err := h.imageRepo.Create(ctx, image); err != nil {
		return common.SendServerError(c, "Failed to record image")
	}

	return c.JSON(http.StatusCreated, image)
}

// DeleteItemImage handles DELETE /items/:id/images/:imageID
func (h *ItemHandlers) DeleteItemImage(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	imageID, err := common.ValidateUUID(c.Param("imageID"), "image_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	item, err := h.itemService.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Item")
	}
	if resp := requireVendor(c, item.VendorID); resp != nil {
		return resp
	}

	images, err := h.imageRepo.ListByItemID(ctx, id)
	if err != nil {
		return common.SendServerError(c, "Failed to look up image")
	}
	var target *models.ItemImage
	for _, image := range images {
		if image.ID == imageID {
			target = image
			break
		}
	}
	if target == nil {
		return common.SendNotFoundError(c, "Image")
	}

	if err := h.imageStorage.DeleteItemImage(ctx, target.ObjectKey); err != nil {
		return common.SendServerError(c, "Failed to delete stored image")
	}
	if err := h.imageRepo.Delete(ctx, imageID); err != nil {
		return common.SendServerError(c, "Failed to delete image record")
	}

	return c.NoContent(http.StatusNoContent)
}

// ListItemImages handles GET /items/:id/images, returning presigned URLs
func (h *ItemHandlers) ListItemImages(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "item_id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	images, err := h.imageRepo.ListByItemID(ctx, id)
	if err != nil {
		return common.SendServerError(c, "Failed to list images")
	}

	type imageResponse struct {
		ID  uuid.UUID `json:"id"`
		URL string    `json:"url"`
	}
	responses := make([]imageResponse, 0, len(images))
	for _, image := range images {
		url, err := h.imageStorage.PresignedImageURL(image.ObjectKey, presignedURLExpiry)
		if err != nil {
			return common.SendServerError(c, "Failed to sign image URL")
		}
		responses = append(responses, imageResponse{ID: image.ID, URL: url})
	}

	return c.JSON(http.StatusOK, responses)
}
