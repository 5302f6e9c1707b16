package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/Akmalwizdom/siprems-backend/internal/domain"
	"github.com/Akmalwizdom/siprems-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

type predictionRequest struct {
	Days int `json:"days"`
}

// GetPrediction runs the forecast pipeline for one store and returns the
// chart bundle plus the ranked restock recommendations.
func (h *ForecastHandler) GetPrediction(c *gin.Context) {
	storeID := c.Param("store_id")

	var req predictionRequest
	// An empty body is fine; it means "use the default horizon".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	response, err := h.service.GetPrediction(c.Request.Context(), storeID, req.Days)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientHistory):
			c.JSON(http.StatusOK, gin.H{
				"status":  "error",
				"message": "Need at least 30 days of sales history to forecast.",
			})
		case errors.Is(err, domain.ErrUpstreamFetch):
			log.Error().Err(err).Str("store_id", storeID).Msg("prediction failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate prediction"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, response)
}
