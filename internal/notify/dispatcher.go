package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// Sender delivers a notification over the real-time channel (websocket push,
// email bridge, whatever main wires in). Implementations must be safe for
// concurrent use.
type Sender interface {
	Send(ctx context.Context, p repository.NotificationPayload) error
}

// ConsoleSender prints deliveries; the development default.
type ConsoleSender struct{}

func (ConsoleSender) Send(ctx context.Context, p repository.NotificationPayload) error {
	payload, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Printf("\n--- NOTIFICATION ---\n%s\n--- END NOTIFICATION ---\n", payload)
	return nil
}

// DispatchManager fans notifications out to the real-time sender through a
// batching worker pool. Delivery is best effort: a full pipeline falls back
// to direct delivery, and shutdown drains what is queued.
type DispatchManager struct {
	workerCount int
	batchSize   int
	timeout     time.Duration
	sender      Sender

	inputChan  chan repository.NotificationPayload
	batchChan  chan []repository.NotificationPayload
	shutdownCh chan struct{}
	once       sync.Once

	wg sync.WaitGroup
}

func NewDispatchManager(sender Sender, workerCount, batchSize int, timeout time.Duration) *DispatchManager {
	return &DispatchManager{
		workerCount: workerCount,
		batchSize:   batchSize,
		timeout:     timeout,
		sender:      sender,
		inputChan:   make(chan repository.NotificationPayload, workerCount*batchSize*2),
		batchChan:   make(chan []repository.NotificationPayload, workerCount*2),
		shutdownCh:  make(chan struct{}),
	}
}

func (m *DispatchManager) Start(ctx context.Context) {
	log.Println("Starting notification dispatch manager")
	m.wg.Add(1)
	go m.runAggregator(ctx)

	for i := 0; i < m.workerCount; i++ {
		m.wg.Add(1)
		go m.runWorker(ctx, i)
	}

	go m.monitorShutdown(ctx)
}

func (m *DispatchManager) monitorShutdown(ctx context.Context) {
	<-ctx.Done()
	m.Shutdown(context.Background())
}

func (m *DispatchManager) Shutdown(ctx context.Context) {
	m.once.Do(func() {
		log.Println("Initiating dispatch manager shutdown")
		close(m.shutdownCh)

		done := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			log.Println("Dispatch manager shutdown completed")
		case <-ctx.Done():
			log.Println("WARNING: dispatch manager shutdown interrupted")
		}
	})
}

// Enqueue hands a notification to the pool. Never blocks past ctx.
func (m *DispatchManager) Enqueue(ctx context.Context, p repository.NotificationPayload) {
	select {
	case m.inputChan <- p:
	case <-ctx.Done():
		m.deliverDirect(p)
	case <-m.shutdownCh:
		m.deliverDirect(p)
	}
}

func (m *DispatchManager) runAggregator(ctx context.Context) {
	defer m.wg.Done()

	var (
		batch    []repository.NotificationPayload
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		if len(batch) > 0 {
			m.dispatchBatch(batch)
		}
		close(m.batchChan)
	}()

	for {
		select {
		case p, ok := <-m.inputChan:
			if !ok {
				return
			}

			batch = append(batch, p)
			if len(batch) >= m.batchSize {
				m.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(m.timeout)
				timeoutC = timer.C
			}

		case <-timeoutC:
			m.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-ctx.Done():
			return

		case <-m.shutdownCh:
			return
		}
	}
}

func (m *DispatchManager) dispatchBatch(batch []repository.NotificationPayload) {
	batchCopy := make([]repository.NotificationPayload, len(batch))
	copy(batchCopy, batch)

	select {
	case m.batchChan <- batchCopy:
	default:
		m.sendBatch(batchCopy)
	}
}

func (m *DispatchManager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()

	for {
		select {
		case batch, ok := <-m.batchChan:
			if !ok {
				return
			}
			m.sendBatch(batch)
		case <-ctx.Done():
			// Drain what is left, then exit.
			for {
				select {
				case batch, ok := <-m.batchChan:
					if !ok {
						return
					}
					m.sendBatch(batch)
				default:
					return
				}
			}
		}
	}
}

func (m *DispatchManager) sendBatch(batch []repository.NotificationPayload) {
	for _, p := range batch {
		if err := m.sender.Send(context.Background(), p); err != nil {
			log.Printf("ERROR: real-time delivery failed for event %s: %v", p.Event, err)
		}
	}
}

func (m *DispatchManager) deliverDirect(p repository.NotificationPayload) {
	if err := m.sender.Send(context.Background(), p); err != nil {
		payload, merr := json.Marshal(p)
		if merr != nil {
			log.Printf("ERROR: failed to marshal dropped notification: %v", merr)
			return
		}
		fmt.Printf("\n=== UNDELIVERED NOTIFICATION ===\n%s\n=== END ===\n", payload)
	}
}
