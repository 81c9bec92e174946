package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avelin/flightstore/internal/domain"
	"github.com/avelin/flightstore/internal/middleware"
	"github.com/avelin/flightstore/internal/service/orders"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service orders.OrderUseCase
}

type checkoutRequest struct {
	DeliveryAddress string                `json:"delivery_address"`
	DeliveryDate    string                `json:"delivery_date"`
	CartItems       []orders.CheckoutItem `json:"cart_items"`
	TotalAmount     int64                 `json:"total_amount"`
}

func NewOrderHandler(service orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.checkout)
	router.GET("/", h.list)
	router.GET("/:id", h.get)
}

func (h *OrderHandler) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deliveryDate, err := parseDeliveryDate(req.DeliveryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), orders.CheckoutInput{
		UserID:          middleware.UserID(c),
		Email:           middleware.Email(c),
		DeliveryAddress: req.DeliveryAddress,
		DeliveryDate:    deliveryDate,
		Items:           req.CartItems,
		TotalCents:      req.TotalAmount,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) list(c *gin.Context) {
	list, err := h.service.ListOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *OrderHandler) get(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), middleware.UserID(c), orderID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func parseDeliveryDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: delivery date is required", domain.ErrValidation)
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid delivery date %q", domain.ErrValidation, raw)
}
