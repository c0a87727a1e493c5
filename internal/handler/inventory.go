package handler

import (
	"net/http"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/service"

	"github.com/gin-gonic/gin"
)

// InventoryHandler is the store-side inventory API plus the reconciled
// summary. Errors use the {"error"} body.
type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ── Items ─────────────────────────────────────────────────────────────────────

// ListItems godoc
// @Summary List inventory items
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.InventoryItemResponse
// @Router /inventory/items [get]
func (h *InventoryHandler) ListItems(c *gin.Context) {
	resp, err := h.svc.ListItems(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateItem godoc
// @Summary Create an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body dto.CreateInventoryItemRequest true "Item"
// @Success 201 {object} dto.InventoryItemResponse
// @Failure 422 {object} apierror.StoreError
// @Router /inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req dto.CreateInventoryItemRequest
	if !bindStore(c, &req) {
		return
	}
	resp, err := h.svc.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateItem godoc
// @Summary Update an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item id"
// @Param body body dto.UpdateInventoryItemRequest true "Fields to change"
// @Success 200 {object} dto.InventoryItemResponse
// @Failure 404 {object} apierror.StoreError
// @Router /inventory/items/{id} [patch]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateInventoryItemRequest
	if !bindStore(c, &req) {
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteItem godoc
// @Summary Delete an inventory item
// @Tags inventory
// @Param id path string true "Item id"
// @Success 204
// @Failure 404 {object} apierror.StoreError
// @Router /inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// ListStock godoc
// @Summary List stock entries
// @Tags inventory
// @Produce json
// @Success 200 {array} dto.StockEntryResponse
// @Router /inventory/stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	resp, err := h.svc.ListStock(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restock godoc
// @Summary Record a stock entry
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body dto.CreateStockEntryRequest true "Stock entry"
// @Success 201 {object} dto.StockEntryResponse
// @Failure 422 {object} apierror.StoreError
// @Router /inventory/stock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	var req dto.CreateStockEntryRequest
	if !bindStore(c, &req) {
		return
	}
	resp, err := h.svc.CreateStock(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateStock godoc
// @Summary Edit a stock entry
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Stock entry id"
// @Param body body dto.UpdateStockEntryRequest true "Fields to change"
// @Success 200 {object} dto.StockEntryResponse
// @Failure 404 {object} apierror.StoreError
// @Router /inventory/stock/{id} [patch]
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req dto.UpdateStockEntryRequest
	if !bindStore(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStock(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteStock godoc
// @Summary Delete a stock entry
// @Tags inventory
// @Param id path string true "Stock entry id"
// @Success 204
// @Failure 404 {object} apierror.StoreError
// @Router /inventory/stock/{id} [delete]
func (h *InventoryHandler) DeleteStock(c *gin.Context) {
	if err := h.svc.DeleteStock(c.Request.Context(), c.Param("id")); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Movements godoc
// @Summary Most recent stock entries
// @Tags inventory
// @Produce json
// @Param limit query int false "1-500, default 50"
// @Success 200 {array} dto.StockEntryResponse
// @Failure 422 {object} apierror.StoreError
// @Router /inventory/movements [get]
func (h *InventoryHandler) Movements(c *gin.Context) {
	var q dto.MovementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewStore("limit must be a number"))
		return
	}
	if !validateStruct(c, &q, storeEnvelope) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), q.Limit)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Summary godoc
// @Summary Remaining stock per item, recomputed from stock and order history
// @Tags inventory
// @Produce json
// @Success 200 {object} inventory.Summary
// @Router /inventory/summary [get]
func (h *InventoryHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
