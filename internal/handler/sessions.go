package handler

import (
	"net/http"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SessionsHandler serves the per-till ledger and checkout under
// /v1/sessions/:session.
type SessionsHandler struct {
	ledgers  service.LedgerService
	checkout service.CheckoutService
}

func NewSessionsHandler(ledgers service.LedgerService, checkout service.CheckoutService) *SessionsHandler {
	return &SessionsHandler{ledgers: ledgers, checkout: checkout}
}

// GetLedger godoc
// @Summary Current ledger with totals
// @Tags ledger
// @Produce json
// @Param session path string true "Session id"
// @Param deliveryFee query number false "Delivery fee to include in totals"
// @Success 200 {object} dto.LedgerResponse
// @Failure 422 {object} apierror.ValidationErrors
// @Router /v1/sessions/{session}/ledger [get]
func (h *SessionsHandler) GetLedger(c *gin.Context) {
	fee := decimal.Zero
	if raw := c.Query("deliveryFee"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, apierror.Invalid("deliveryFee", "deliveryFee must be a number"))
			return
		}
		fee = v
	}
	resp, err := h.ledgers.Get(c.Request.Context(), c.Param("session"), fee)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary Add an item to the ledger, or bump its count
// @Tags ledger
// @Accept json
// @Produce json
// @Param session path string true "Session id"
// @Param body body dto.AddLedgerItemRequest true "Item"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationErrors
// @Router /v1/sessions/{session}/ledger/items [post]
func (h *SessionsHandler) AddItem(c *gin.Context) {
	var req dto.AddLedgerItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.ledgers.AddItem(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Increment godoc
// @Summary Increase an entry's count by one
// @Tags ledger
// @Produce json
// @Param session path string true "Session id"
// @Param category path string true "food, protein or drink"
// @Param id path string true "Item id"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/sessions/{session}/ledger/items/{category}/{id}/increment [post]
func (h *SessionsHandler) Increment(c *gin.Context) {
	resp, err := h.ledgers.Increment(c.Request.Context(), c.Param("session"), c.Param("category"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Decrement godoc
// @Summary Decrease an entry's count by one, never below 1
// @Tags ledger
// @Produce json
// @Param session path string true "Session id"
// @Param category path string true "food, protein or drink"
// @Param id path string true "Item id"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/sessions/{session}/ledger/items/{category}/{id}/decrement [post]
func (h *SessionsHandler) Decrement(c *gin.Context) {
	resp, err := h.ledgers.Decrement(c.Request.Context(), c.Param("session"), c.Param("category"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem godoc
// @Summary Remove an entry whatever its count
// @Tags ledger
// @Produce json
// @Param session path string true "Session id"
// @Param category path string true "food, protein or drink"
// @Param id path string true "Item id"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/sessions/{session}/ledger/items/{category}/{id} [delete]
func (h *SessionsHandler) RemoveItem(c *gin.Context) {
	resp, err := h.ledgers.RemoveItem(c.Request.Context(), c.Param("session"), c.Param("category"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearLedger godoc
// @Summary Empty the ledger
// @Tags ledger
// @Param session path string true "Session id"
// @Success 204
// @Router /v1/sessions/{session}/ledger [delete]
func (h *SessionsHandler) ClearLedger(c *gin.Context) {
	if err := h.ledgers.Clear(c.Request.Context(), c.Param("session")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Submit the ledger as an order
// @Description Submits exactly once. On failure the ledger is kept and the store's message is returned.
// @Tags checkout
// @Accept json
// @Produce json
// @Param session path string true "Session id"
// @Param body body dto.CheckoutRequest true "Order details"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 422 {object} apierror.ValidationErrors
// @Failure 502 {object} apierror.APIError
// @Router /v1/sessions/{session}/checkout [post]
func (h *SessionsHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.checkout.Checkout(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// TodaysSales godoc
// @Summary Sales total submitted from this session today
// @Tags checkout
// @Produce json
// @Param session path string true "Session id"
// @Success 200 {object} dto.TodaysSalesResponse
// @Router /v1/sessions/{session}/sales/today [get]
func (h *SessionsHandler) TodaysSales(c *gin.Context) {
	resp, err := h.checkout.TodaysSales(c.Request.Context(), c.Param("session"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
