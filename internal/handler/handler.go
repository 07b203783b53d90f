package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/postpulse/analytics-service/docs"
	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/dto"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/queue"
	"github.com/postpulse/analytics-service/internal/service"
)

const maxWebhookBodyBytes = 1 << 20

type Handler struct {
	eventService     service.EventServicer
	analyticsService service.AnalyticsServicer
	publisher        queue.QueuePublisher
	metrics          *metrics.Metrics
	router           *gin.Engine
	log              *zap.Logger
}

// NewHandler wires the HTTP surface. The publisher may be nil when no queue is
// configured; webhook intake then answers 503. m may be nil.
func NewHandler(eventService service.EventServicer, analyticsService service.AnalyticsServicer, publisher queue.QueuePublisher, m *metrics.Metrics, log *zap.Logger) *Handler {
	h := &Handler{
		eventService:     eventService,
		analyticsService: analyticsService,
		publisher:        publisher,
		metrics:          m,
		router:           gin.Default(),
		log:              log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := h.router.Group("/v1")
	v1.POST("/webhooks/:platform", h.acceptWebhook)

	scoped := v1.Group("", TenantRequired())
	scoped.POST("/events", h.recordEvent)
	scoped.POST("/events/bulk", h.recordEventsBulk)
	scoped.GET("/analytics/overview", h.getOverview)
	scoped.GET("/analytics/top-posts", h.getTopPosts)
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

// recordEvent handles POST /v1/events
// @Summary Record a single engagement event
// @Description Record one engagement event and fold it into the daily aggregate
// @Tags events
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant identifier"
// @Param event body dto.RecordEventRequest true "Event data"
// @Success 201 {object} dto.RecordEventResponse
// @Success 200 {object} dto.RecordEventResponse "Duplicate delivery"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/events [post]
func (h *Handler) recordEvent(c *gin.Context) {
	var req dto.RecordEventRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	outcome, err := h.eventService.RecordEvent(c.Request.Context(), tenantID(c), &req)
	if err != nil {
		h.respondError(c, err, "Failed to record event",
			zap.String("event_type", req.EventType),
			zap.String("platform", req.Platform))
		return
	}

	if outcome.Duplicate {
		c.JSON(http.StatusOK, dto.RecordEventResponse{
			EventID: outcome.Event.ID,
			Status:  "duplicate",
		})
		return
	}

	h.log.Info("Event recorded",
		zap.String("event_id", outcome.Event.ID),
		zap.String("tenant_id", outcome.Event.TenantID),
		zap.String("event_type", string(outcome.Event.EventType)))

	c.JSON(http.StatusCreated, dto.RecordEventResponse{
		EventID: outcome.Event.ID,
		Status:  "recorded",
	})
}

// recordEventsBulk handles POST /v1/events/bulk
// @Summary Record multiple engagement events
// @Description Record a batch of engagement events; failures are reported per event
// @Tags events
// @Accept json
// @Produce json
// @Param X-Tenant-ID header string true "Tenant identifier"
// @Param events body dto.RecordEventsBulkRequest true "Bulk events data"
// @Success 200 {object} dto.RecordEventsBulkResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/events/bulk [post]
func (h *Handler) recordEventsBulk(c *gin.Context) {
	var bulkRequest dto.RecordEventsBulkRequest

	if err := c.ShouldBindJSON(&bulkRequest); err != nil {
		h.log.Warn("Invalid bulk event request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	eventIDs, errs := h.eventService.RecordBulkEvents(c.Request.Context(), tenantID(c), bulkRequest.Events)

	h.log.Info("Bulk events processed",
		zap.Int("recorded", len(eventIDs)),
		zap.Int("rejected", len(errs)),
		zap.Int("total", len(bulkRequest.Events)))

	c.JSON(http.StatusOK, dto.RecordEventsBulkResponse{
		Recorded: len(eventIDs),
		Rejected: len(errs),
		EventIDs: eventIDs,
		Errors:   errs,
	})
}

// getOverview handles GET /v1/analytics/overview
// @Summary Analytics overview
// @Description Totals, average rates, and per-platform breakdown over the tenant's aggregates
// @Tags analytics
// @Produce json
// @Param X-Tenant-ID header string true "Tenant identifier"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param platform query string false "Platform filter" Enums(facebook, instagram, twitter, linkedin, tiktok, youtube)
// @Success 200 {object} dto.OverviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/analytics/overview [get]
func (h *Handler) getOverview(c *gin.Context) {
	var req dto.OverviewRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid overview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analyticsService.GetOverview(c.Request.Context(), tenantID(c), &req)
	if err != nil {
		h.respondError(c, err, "Failed to build overview")
		return
	}

	c.JSON(http.StatusOK, response)
}

// getTopPosts handles GET /v1/analytics/top-posts
// @Summary Top posts ranking
// @Description Rank the tenant's aggregate rows by a metric, enriched with content and schedule details
// @Tags analytics
// @Produce json
// @Param X-Tenant-ID header string true "Tenant identifier"
// @Param metric query string false "Ranking metric" Enums(views, likes, comments, shares, clicks, impressions, engagementRate, clickThroughRate)
// @Param limit query int false "Maximum rows to return (default 10, cap 100)"
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param platform query string false "Platform filter"
// @Success 200 {object} dto.TopPostsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/analytics/top-posts [get]
func (h *Handler) getTopPosts(c *gin.Context) {
	var req dto.TopPostsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid top posts request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	response, err := h.analyticsService.GetTopPosts(c.Request.Context(), tenantID(c), &req)
	if err != nil {
		h.respondError(c, err, "Failed to rank top posts")
		return
	}

	c.JSON(http.StatusOK, response)
}

// acceptWebhook handles POST /v1/webhooks/:platform
// @Summary Accept a platform webhook
// @Description Enqueue a raw platform webhook payload for asynchronous recording
// @Tags webhooks
// @Accept json
// @Produce json
// @Param platform path string true "Source platform"
// @Success 202 {object} dto.WebhookAcceptedResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /v1/webhooks/{platform} [post]
func (h *Handler) acceptWebhook(c *gin.Context) {
	platform, err := domain.ParsePlatform(c.Param("platform"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if h.publisher == nil {
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error:   "queue_unavailable",
			Message: "webhook intake is not configured",
		})
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if err != nil || len(payload) == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: "empty or unreadable payload",
		})
		return
	}

	if err := h.publisher.PublishWebhook(c.Request.Context(), string(platform), payload); err != nil {
		h.log.Error("Failed to enqueue webhook payload",
			zap.String("platform", string(platform)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	if h.metrics != nil {
		h.metrics.WebhooksEnqueued.WithLabelValues(string(platform)).Inc()
	}
	h.log.Info("Webhook payload enqueued", zap.String("platform", string(platform)))

	c.JSON(http.StatusAccepted, dto.WebhookAcceptedResponse{Status: "enqueued"})
}

// respondError maps domain errors onto HTTP statuses.
func (h *Handler) respondError(c *gin.Context, err error, msg string, fields ...zap.Field) {
	switch {
	case errors.Is(err, domain.ErrUnknownEventType),
		errors.Is(err, domain.ErrUnknownPlatform),
		errors.Is(err, domain.ErrUnknownMetric),
		errors.Is(err, domain.ErrInvalidValue),
		errors.Is(err, domain.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrMissingTenant):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "access_denied",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	default:
		h.log.Error(msg, append(fields, zap.Error(err))...)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
