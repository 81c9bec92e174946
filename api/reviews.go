package api

import (
	"net/http"
	"strconv"

	"github.com/avelin/flightstore/internal/middleware"
	"github.com/avelin/flightstore/internal/service/reviews"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service reviews.ReviewUseCase
}

type createReviewRequest struct {
	FlightID int64  `json:"flight_id"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
}

func NewReviewHandler(service reviews.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) Register(public, protected *gin.RouterGroup) {
	public.GET("/:flight_id", h.list)
	protected.POST("/", h.create)
}

func (h *ReviewHandler) list(c *gin.Context) {
	flightID, err := strconv.ParseInt(c.Param("flight_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid flight id"})
		return
	}
	list, err := h.service.ListByFlight(c.Request.Context(), flightID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ReviewHandler) create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req.FlightID, req.Rating, req.Comment)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
