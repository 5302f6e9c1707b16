package handlers

import (
	"net/http"
	"strconv"

	"github.com/Akmalwizdom/siprems-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.service.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch dashboard metrics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h *DashboardHandler) GetSalesChart(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}

	points, err := h.service.GetSalesChart(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sales chart", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"points": points})
}

func (h *DashboardHandler) GetCategorySales(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 {
		days = 30
	}

	breakdown, err := h.service.GetCategorySales(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch category sales", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": breakdown})
}
