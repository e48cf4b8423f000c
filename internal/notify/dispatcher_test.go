package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []repository.NotificationPayload
}

func (s *recordingSender) Send(_ context.Context, p repository.NotificationPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, p)
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *recordingSender) events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make([]string, len(s.sent))
	for i, p := range s.sent {
		events[i] = p.Event
	}
	return events
}

func payload(event string) repository.NotificationPayload {
	return repository.NotificationPayload{
		RecipientIDs: []string{"adopter-1"},
		Event:        event,
		Message:      "hello",
	}
}

func TestDispatchFlushesFullBatch(t *testing.T) {
	sender := &recordingSender{}
	// Timeout far away so only the batch size can trigger the flush.
	m := NewDispatchManager(sender, 1, 2, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	m.Enqueue(ctx, payload("request_approved"))
	m.Enqueue(ctx, payload("meeting_scheduled"))

	assert.Eventually(t, func() bool { return sender.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"request_approved", "meeting_scheduled"}, sender.events())
}

func TestDispatchFlushesOnTimeout(t *testing.T) {
	sender := &recordingSender{}
	m := NewDispatchManager(sender, 1, 10, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	m.Enqueue(ctx, payload("request_submitted"))

	assert.Eventually(t, func() bool { return sender.count() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestEnqueueAfterShutdownDeliversDirectly(t *testing.T) {
	sender := &recordingSender{}
	m := NewDispatchManager(sender, 1, 10, time.Hour)

	ctx := context.Background()
	m.Start(ctx)
	m.Shutdown(ctx)

	m.Enqueue(ctx, payload("adoption_finalized"))

	// Direct delivery is synchronous once the pool is gone.
	require.Equal(t, 1, sender.count())
	assert.Equal(t, "adoption_finalized", sender.sent[0].Event)
}
