package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wizariya/store-api/internal/models"
	"github.com/wizariya/store-api/internal/service"
	appErrors "github.com/wizariya/store-api/pkg/errors"
	"github.com/wizariya/store-api/pkg/response"
)

type orderService interface {
	Create(ctx context.Context, req service.CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, rawStatus string, page, pageSize int) ([]models.Order, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, req service.UpdateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, format, rawStatus string) ([]byte, string, error)
}

// OrderHandler exposes the order intake and admin review endpoints.
type OrderHandler struct {
	service orderService
}

// NewOrderHandler constructs an order handler.
func NewOrderHandler(svc orderService) *OrderHandler {
	return &OrderHandler{service: svc}
}

// Create godoc
// @Summary Submit a new order
// @Tags Orders
// @Accept json
// @Produce json
// @Param payload body service.CreateOrderRequest true "Order submission"
// @Success 201 {object} response.Envelope
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// List godoc
// @Summary List orders newest-first
// @Tags Orders
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	orders, pagination, err := h.service.List(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders, pagination)
}

// Export godoc
// @Summary Export the order book (admin)
// @Tags Orders
// @Produce text/csv
// @Param format query string false "csv or pdf"
// @Param status query string false "Filter by status"
// @Success 200 {string} string "file"
// @Router /orders/export [get]
func (h *OrderHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.service.Export(c.Request.Context(), format, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="orders.`+format+`"`)
	c.Data(http.StatusOK, contentType, payload)
}

// Get godoc
// @Summary Get order by id
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Update godoc
// @Summary Update order status and notes (admin)
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param payload body service.UpdateOrderRequest true "Review decision"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	var req service.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order, nil)
}

// Delete godoc
// @Summary Delete order (admin)
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 204
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
