package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
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

type ackTracker struct {
	acked  bool
	nacked bool
}

func trackedEnvelope(tracker *ackTracker) *Envelope {
	return NewEnvelope(
		&IncomingEvent{
			TenantID: "t1",
			Event:    dto.RecordEventRequest{EventType: "like", Platform: "instagram"},
		},
		func(context.Context) error { tracker.acked = true; return nil },
		func(context.Context) error { tracker.nacked = true; return nil },
	)
}

func runRecorder(t *testing.T, events service.EventServicer, envelopes []*Envelope) []*domain.EngagementEvent {
	t.Helper()

	recorder := NewRecorder(events, zap.NewNop())

	in := make(chan *Envelope, len(envelopes))
	archive := make(chan *domain.EngagementEvent, len(envelopes))
	for _, env := range envelopes {
		in <- env
	}
	close(in)

	done := make(chan struct{})
	go func() {
		defer close(done)
		recorder.Start(context.Background(), in, archive)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder did not drain")
	}

	var forwarded []*domain.EngagementEvent
	for event := range archive {
		forwarded = append(forwarded, event)
	}
	return forwarded
}

func TestRecorder_SuccessAcksAndForwards(t *testing.T) {
	events := new(MockEventService)
	tracker := &ackTracker{}

	recorded := &domain.EngagementEvent{ID: "e1", TenantID: "t1"}
	events.On("RecordEvent", mock.Anything, "t1", mock.Anything).
		Return(&service.RecordOutcome{Event: recorded}, nil).Once()

	forwarded := runRecorder(t, events, []*Envelope{trackedEnvelope(tracker)})

	assert.True(t, tracker.acked)
	assert.False(t, tracker.nacked)
	require.Len(t, forwarded, 1)
	assert.Equal(t, "e1", forwarded[0].ID)
	events.AssertExpectations(t)
}

func TestRecorder_DuplicateAckedNotForwarded(t *testing.T) {
	events := new(MockEventService)
	tracker := &ackTracker{}

	events.On("RecordEvent", mock.Anything, "t1", mock.Anything).
		Return(&service.RecordOutcome{
			Event:     &domain.EngagementEvent{ID: "e1", TenantID: "t1"},
			Duplicate: true,
		}, nil).Once()

	forwarded := runRecorder(t, events, []*Envelope{trackedEnvelope(tracker)})

	assert.True(t, tracker.acked)
	assert.Empty(t, forwarded)
}

func TestRecorder_ValidationFailureDropped(t *testing.T) {
	events := new(MockEventService)
	tracker := &ackTracker{}

	events.On("RecordEvent", mock.Anything, "t1", mock.Anything).
		Return(nil, fmt.Errorf("%w: %q", domain.ErrUnknownEventType, "retweet")).Once()

	forwarded := runRecorder(t, events, []*Envelope{trackedEnvelope(tracker)})

	// A bad payload is deleted from the queue, not retried.
	assert.True(t, tracker.acked)
	assert.False(t, tracker.nacked)
	assert.Empty(t, forwarded)
}

func TestRecorder_StorageFailureNacked(t *testing.T) {
	events := new(MockEventService)
	tracker := &ackTracker{}

	events.On("RecordEvent", mock.Anything, "t1", mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	forwarded := runRecorder(t, events, []*Envelope{trackedEnvelope(tracker)})

	assert.False(t, tracker.acked)
	assert.True(t, tracker.nacked)
	assert.Empty(t, forwarded)
}

func TestRecorder_NilArchiveChannel(t *testing.T) {
	events := new(MockEventService)
	tracker := &ackTracker{}

	events.On("RecordEvent", mock.Anything, "t1", mock.Anything).
		Return(&service.RecordOutcome{Event: &domain.EngagementEvent{ID: "e1"}}, nil).Once()

	recorder := NewRecorder(events, zap.NewNop())

	in := make(chan *Envelope, 1)
	in <- trackedEnvelope(tracker)
	close(in)

	done := make(chan struct{})
	go func() {
		defer close(done)
		recorder.Start(context.Background(), in, nil)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("recorder did not drain")
	}

	assert.True(t, tracker.acked)
}
