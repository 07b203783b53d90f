package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/dto"
	"github.com/postpulse/analytics-service/internal/service"
)

// MockEventService is a mock implementation of service.EventServicer
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) RecordEvent(ctx context.Context, tenantID string, req *dto.RecordEventRequest) (*service.RecordOutcome, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordOutcome), args.Error(1)
}

func (m *MockEventService) RecordBulkEvents(ctx context.Context, tenantID string, reqs []dto.RecordEventRequest) ([]string, []string) {
	args := m.Called(ctx, tenantID, reqs)
	ids, _ := args.Get(0).([]string)
	errs, _ := args.Get(1).([]string)
	return ids, errs
}

// MockAnalyticsService is a mock implementation of service.AnalyticsServicer
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) GetOverview(ctx context.Context, tenantID string, req *dto.OverviewRequest) (*dto.OverviewResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OverviewResponse), args.Error(1)
}

func (m *MockAnalyticsService) GetTopPosts(ctx context.Context, tenantID string, req *dto.TopPostsRequest) (*dto.TopPostsResponse, error) {
	args := m.Called(ctx, tenantID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TopPostsResponse), args.Error(1)
}

// MockPublisher is a mock implementation of queue.QueuePublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWebhook(ctx context.Context, platform string, payload []byte) error {
	args := m.Called(ctx, platform, payload)
	return args.Error(0)
}

type handlerFixture struct {
	events    *MockEventService
	analytics *MockAnalyticsService
	publisher *MockPublisher
	handler   *Handler
}

func newHandlerFixture() *handlerFixture {
	events := new(MockEventService)
	analytics := new(MockAnalyticsService)
	publisher := new(MockPublisher)
	return &handlerFixture{
		events:    events,
		analytics: analytics,
		publisher: publisher,
		handler:   NewHandler(events, analytics, publisher, nil, zap.NewNop()),
	}
}

func tenantRequest(method, target string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Tenant-ID", "t1")
	return req
}

func TestHandler_HealthCheck(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "ok", response["status"])
}

func TestHandler_RecordEvent_Success(t *testing.T) {
	f := newHandlerFixture()

	eventReq := dto.RecordEventRequest{
		EventType:       "like",
		Platform:        "instagram",
		ScheduledPostID: "sp1",
	}
	f.events.On("RecordEvent", mock.Anything, "t1", &eventReq).Return(&service.RecordOutcome{
		Event: &domain.EngagementEvent{ID: "event-id-123", TenantID: "t1", EventType: domain.EventTypeLike},
	}, nil)

	body, _ := json.Marshal(eventReq)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events", body))

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.RecordEventResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "event-id-123", response.EventID)
	assert.Equal(t, "recorded", response.Status)
	f.events.AssertExpectations(t)
}

func TestHandler_RecordEvent_Duplicate(t *testing.T) {
	f := newHandlerFixture()

	f.events.On("RecordEvent", mock.Anything, "t1", mock.Anything).Return(&service.RecordOutcome{
		Event:     &domain.EngagementEvent{ID: "event-id-123", TenantID: "t1"},
		Duplicate: true,
	}, nil)

	body, _ := json.Marshal(dto.RecordEventRequest{
		EventType:       "like",
		Platform:        "instagram",
		ExternalEventID: "ig_evt_1",
	})
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events", body))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RecordEventResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "duplicate", response.Status)
}

func TestHandler_RecordEvent_MissingTenantHeader(t *testing.T) {
	f := newHandlerFixture()

	body, _ := json.Marshal(dto.RecordEventRequest{EventType: "like", Platform: "instagram"})
	req := httptest.NewRequest(http.MethodPost, "/v1/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "access_denied", response.Error)
	f.events.AssertNotCalled(t, "RecordEvent")
}

func TestHandler_RecordEvent_InvalidJSON(t *testing.T) {
	f := newHandlerFixture()

	invalidJSON := []byte(`{"event_type": "like", invalid}`)
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events", invalidJSON))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
	f.events.AssertNotCalled(t, "RecordEvent")
}

func TestHandler_RecordEvent_MissingRequiredFields(t *testing.T) {
	f := newHandlerFixture()

	body, _ := json.Marshal(map[string]string{"platform": "instagram"})
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.events.AssertNotCalled(t, "RecordEvent")
}

func TestHandler_RecordEvent_DomainErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{"unknown event type", domain.ErrUnknownEventType, http.StatusBadRequest, "validation_error"},
		{"unknown platform", domain.ErrUnknownPlatform, http.StatusBadRequest, "validation_error"},
		{"invalid value", domain.ErrInvalidValue, http.StatusBadRequest, "validation_error"},
		{"missing tenant", domain.ErrMissingTenant, http.StatusForbidden, "access_denied"},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture()
			f.events.On("RecordEvent", mock.Anything, "t1", mock.Anything).Return(nil, tt.err)

			body, _ := json.Marshal(dto.RecordEventRequest{EventType: "like", Platform: "instagram"})
			w := httptest.NewRecorder()
			f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events", body))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response dto.ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedError, response.Error)
		})
	}
}

func TestHandler_RecordEventsBulk(t *testing.T) {
	f := newHandlerFixture()

	f.events.On("RecordBulkEvents", mock.Anything, "t1", mock.Anything).
		Return([]string{"id1", "id2"}, []string{"event 2: unknown event type"})

	body, _ := json.Marshal(dto.RecordEventsBulkRequest{
		Events: []dto.RecordEventRequest{
			{EventType: "like", Platform: "instagram"},
			{EventType: "share", Platform: "instagram"},
			{EventType: "bogus", Platform: "instagram"},
		},
	})
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events/bulk", body))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RecordEventsBulkResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, 2, response.Recorded)
	assert.Equal(t, 1, response.Rejected)
	f.events.AssertExpectations(t)
}

func TestHandler_RecordEventsBulk_EmptyBatch(t *testing.T) {
	f := newHandlerFixture()

	body, _ := json.Marshal(dto.RecordEventsBulkRequest{Events: []dto.RecordEventRequest{}})
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodPost, "/v1/events/bulk", body))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.events.AssertNotCalled(t, "RecordBulkEvents")
}

func TestHandler_GetOverview(t *testing.T) {
	f := newHandlerFixture()

	expected := &dto.OverviewResponse{
		Totals:   dto.MetricTotals{Views: 100, Impressions: 1000},
		Averages: dto.MetricAverages{EngagementRate: 6.5},
	}
	f.analytics.On("GetOverview", mock.Anything, "t1", &dto.OverviewRequest{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-29",
		Platform:  "instagram",
	}).Return(expected, nil)

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodGet,
		"/v1/analytics/overview?start_date=2026-08-01&end_date=2026-08-29&platform=instagram", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.OverviewResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), response.Totals.Views)
	f.analytics.AssertExpectations(t)
}

func TestHandler_GetOverview_InvalidDateRange(t *testing.T) {
	f := newHandlerFixture()

	f.analytics.On("GetOverview", mock.Anything, "t1", mock.Anything).
		Return(nil, domain.ErrInvalidDateRange)

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/analytics/overview?start_date=garbage", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetTopPosts(t *testing.T) {
	f := newHandlerFixture()

	expected := &dto.TopPostsResponse{
		Metric: "views",
		Posts: []dto.TopPostEntry{
			{ScheduledPostID: "sp2", Metrics: dto.AggregateMetrics{Views: 200}},
			{ScheduledPostID: "sp1", Metrics: dto.AggregateMetrics{Views: 50}},
		},
	}
	f.analytics.On("GetTopPosts", mock.Anything, "t1", &dto.TopPostsRequest{
		Metric: "views",
		Limit:  2,
	}).Return(expected, nil)

	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, tenantRequest(http.MethodGet, "/v1/analytics/top-posts?metric=views&limit=2", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.TopPostsResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Posts, 2)
	assert.Equal(t, "sp2", response.Posts[0].ScheduledPostID)
	f.analytics.AssertExpectations(t)
}

func TestHandler_AcceptWebhook(t *testing.T) {
	f := newHandlerFixture()

	payload := []byte(`{"tenant_id":"t1","event_type":"like","platform":"instagram"}`)
	f.publisher.On("PublishWebhook", mock.Anything, "instagram", payload).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/instagram", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)

	var response dto.WebhookAcceptedResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "enqueued", response.Status)
	f.publisher.AssertExpectations(t)
}

func TestHandler_AcceptWebhook_UnknownPlatform(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/myspace", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.publisher.AssertNotCalled(t, "PublishWebhook")
}

func TestHandler_AcceptWebhook_NoPublisher(t *testing.T) {
	h := NewHandler(new(MockEventService), new(MockAnalyticsService), nil, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/instagram", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandler_AcceptWebhook_PublishFailure(t *testing.T) {
	f := newHandlerFixture()

	f.publisher.On("PublishWebhook", mock.Anything, "instagram", mock.Anything).
		Return(errors.New("queue unreachable"))

	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/instagram", bytes.NewReader([]byte(`{"a":1}`)))
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
