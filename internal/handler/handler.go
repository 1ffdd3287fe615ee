package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/iktorin-vi/customer-retention-analysis/docs"
	"github.com/iktorin-vi/customer-retention-analysis/internal/dto"
	"github.com/iktorin-vi/customer-retention-analysis/internal/service"
)

type Handler struct {
	analytics service.AnalyticsServicer
	router    *gin.Engine
	log       *zap.Logger
}

func NewHandler(analytics service.AnalyticsServicer, log *zap.Logger) *Handler {
	h := &Handler{
		analytics: analytics,
		router:    gin.Default(),
		log:       log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/cohorts/retention", h.getRetention)
	h.router.GET("/cohorts/one-time-buyers", h.getOneTimeBuyers)
	h.router.GET("/cohorts/revenue", h.getCohortRevenue)
	h.router.GET("/metrics/repeat-rate", h.getRepeatRate)
	h.router.GET("/metrics/purchase-timing", h.getPurchaseTiming)
	h.router.GET("/metrics/churn", h.getChurn)
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheck handles health check requests
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// getRetention handles GET /cohorts/retention
// @Summary Cohort retention matrix
// @Description Distinct active customers and retention percentage per (cohort month, months since first purchase)
// @Tags cohorts
// @Produce json
// @Param from query string false "First cohort month (YYYY-MM)" example:"2011-01"
// @Param to query string false "Last cohort month (YYYY-MM)" example:"2011-12"
// @Param max_index query int false "Maximum cohort index (months since first purchase)" example:"12"
// @Success 200 {object} dto.GetRetentionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cohorts/retention [get]
func (h *Handler) getRetention(c *gin.Context) {
	var req dto.GetRetentionRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid retention request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analytics.GetRetention(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to get retention matrix",
			zap.Error(err),
			zap.String("from", req.From),
			zap.String("to", req.To))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getOneTimeBuyers handles GET /cohorts/one-time-buyers
// @Summary One-time buyer share per cohort
// @Description Split of each cohort into one-time and repeat buyers
// @Tags cohorts
// @Produce json
// @Success 200 {object} dto.GetOneTimeBuyersResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cohorts/one-time-buyers [get]
func (h *Handler) getOneTimeBuyers(c *gin.Context) {
	response, err := h.analytics.GetOneTimeBuyers(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get one-time buyer share", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getCohortRevenue handles GET /cohorts/revenue
// @Summary Cohort acquisition and first-month revenue
// @Description New customers, revenue booked in the cohort month, and running customer total per cohort
// @Tags cohorts
// @Produce json
// @Success 200 {object} dto.GetCohortRevenueResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /cohorts/revenue [get]
func (h *Handler) getCohortRevenue(c *gin.Context) {
	response, err := h.analytics.GetCohortRevenue(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get cohort revenue", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getRepeatRate handles GET /metrics/repeat-rate
// @Summary Repeat purchase rate
// @Description Share of customers with two or more distinct invoices
// @Tags metrics
// @Produce json
// @Success 200 {object} dto.RepeatRateResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics/repeat-rate [get]
func (h *Handler) getRepeatRate(c *gin.Context) {
	response, err := h.analytics.GetRepeatRate(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get repeat rate", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getPurchaseTiming handles GET /metrics/purchase-timing
// @Summary Time to second purchase
// @Description Mean and median day gap between a customer's first and second order
// @Tags metrics
// @Produce json
// @Success 200 {object} dto.PurchaseTimingResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics/purchase-timing [get]
func (h *Handler) getPurchaseTiming(c *gin.Context) {
	response, err := h.analytics.GetPurchaseTiming(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to get purchase timing", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// getChurn handles GET /metrics/churn
// @Summary Churn rate
// @Description Share of customers inactive for more than threshold_days relative to the latest order date
// @Tags metrics
// @Produce json
// @Param threshold_days query int false "Inactivity threshold in days" example:"90"
// @Success 200 {object} dto.ChurnResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /metrics/churn [get]
func (h *Handler) getChurn(c *gin.Context) {
	var req dto.GetChurnRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid churn request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analytics.GetChurn(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to get churn rate",
			zap.Error(err),
			zap.Int("threshold_days", req.ThresholdDays))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, response)
}
