package handler

import (
	"fmt"
	"net/http"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"
	"chopengine/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OrdersHandler is the store-side order API. Errors use the {"error"} body.
type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

func orderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewStore("invalid order id"))
		return uuid.Nil, false
	}
	return id, true
}

// Create godoc
// @Summary Create an order
// @Tags orders
// @Accept json
// @Produce json
// @Param body body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} apierror.StoreError
// @Failure 422 {object} apierror.StoreError
// @Router /orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindStore(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List every order, oldest first
// @Tags orders
// @Produce json
// @Param state query string false "Delivery state"
// @Param lga query string false "Delivery LGA"
// @Param _ts query string false "Cache buster, ignored"
// @Success 200 {array} dto.OrderResponse
// @Router /orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.NewStore(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get one order
// @Tags orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.StoreError
// @Router /orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary Update delivery status or rider
// @Description Financial fields are immutable; only status and assignedRider are accepted.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order id"
// @Param body body dto.UpdateOrderRequest true "Delivery fields"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.StoreError
// @Failure 422 {object} apierror.StoreError
// @Router /orders/{id} [patch]
func (h *OrdersHandler) Update(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if !bindStore(c, &req) {
		return
	}
	resp, err := h.svc.UpdateDelivery(c.Request.Context(), id, req)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete an order
// @Tags orders
// @Param id path string true "Order id"
// @Success 204
// @Failure 404 {object} apierror.StoreError
// @Router /orders/{id} [delete]
func (h *OrdersHandler) Delete(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Receipt godoc
// @Summary Printable receipt
// @Tags orders
// @Produce application/pdf
// @Param id path string true "Order id"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.StoreError
// @Router /orders/{id}/receipt [get]
func (h *OrdersHandler) Receipt(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}
	pdf, err := h.svc.Receipt(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
