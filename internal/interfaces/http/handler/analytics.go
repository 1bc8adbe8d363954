package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	collectionsapp "github.com/safo-124/high-purchase-sub007/internal/application/collections"
)

// AnalyticsHandler handles the collections reporting endpoints
type AnalyticsHandler struct {
	BaseHandler
	analytics *collectionsapp.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analytics *collectionsapp.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// asOf parses the optional as_of query parameter, defaulting to now
func asOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse(time.RFC3339, raw)
}

// Aging buckets open outstanding balances by delinquency age
func (h *AnalyticsHandler) Aging(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	at, err := asOf(c)
	if err != nil {
		h.BadRequest(c, "Invalid as_of, expected RFC 3339")
		return
	}

	report, err := h.analytics.AgingReport(c.Request.Context(), auth, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// RiskScore scores one purchase's bad-debt risk
func (h *AnalyticsHandler) RiskScore(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	purchaseID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	at, err := asOf(c)
	if err != nil {
		h.BadRequest(c, "Invalid as_of, expected RFC 3339")
		return
	}

	score, err := h.analytics.RiskScore(c.Request.Context(), auth, purchaseID, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"purchase_id": purchaseID, "risk_score": score})
}

// collectorEfficiencyQuery carries the reporting period
type collectorEfficiencyQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// CollectorEfficiency reports collected versus assigned per collector
func (h *AnalyticsHandler) CollectorEfficiency(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}
	var q collectorEfficiencyQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rows, err := h.analytics.CollectionEfficiency(c.Request.Context(), auth, q.From, q.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Outstanding returns the tenant's total outstanding balance
func (h *AnalyticsHandler) Outstanding(c *gin.Context) {
	auth, ok := h.auth(c)
	if !ok {
		return
	}

	sum, err := h.analytics.TotalOutstanding(c.Request.Context(), auth)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"total_outstanding": sum})
}

// RegisterRoutes registers analytics routes
func (h *AnalyticsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")
	{
		analytics.GET("/aging", h.Aging)
		analytics.GET("/outstanding", h.Outstanding)
		analytics.GET("/collector-efficiency", h.CollectorEfficiency)
	}
	rg.GET("/purchases/:id/risk-score", h.RiskScore)
}
