package api

import (
	"net/http"
	"strconv"

	"github.com/avelin/flightstore/internal/middleware"
	"github.com/avelin/flightstore/internal/service/cart"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	service cart.CartUseCase
}

type addToCartRequest struct {
	FlightID   int64 `json:"flight_id"`
	Passengers int   `json:"passengers_count"`
}

func NewCartHandler(service cart.CartUseCase) *CartHandler {
	return &CartHandler{service: service}
}

func (h *CartHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.POST("/", h.add)
	router.DELETE("/:flight_id", h.remove)
	router.DELETE("/", h.clear)
}

func (h *CartHandler) list(c *gin.Context) {
	lines, err := h.service.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *CartHandler) add(c *gin.Context) {
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, created, err := h.service.Add(c.Request.Context(), middleware.UserID(c), req.FlightID, req.Passengers)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, line)
}

func (h *CartHandler) remove(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("flight_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}
	if err := h.service.Remove(c.Request.Context(), middleware.UserID(c), flightID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart"})
}

func (h *CartHandler) clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
