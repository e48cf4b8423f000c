package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/metrics"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type OutboxTaskRepository interface {
	Create(ctx context.Context, database db.DB, task *repository.OutboxTask) error
	CreateTx(ctx context.Context, tx db.Tx, task *repository.OutboxTask) error
	GetProcessableTasks(ctx context.Context, database db.DB, limit int) ([]*repository.OutboxTask, error)
	UpdateTaskStatusTx(ctx context.Context, tx db.Tx, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
	UpdateTaskStatus(ctx context.Context, database db.DB, id uuid.UUID, status repository.TaskStatus, attempts int, lastError *string, completedAt *time.Time) error
}

// Notifier is the orchestrator's single notification hook: one call pushes
// the payload through the real-time dispatch pool and writes an outbox task
// for the durable inbox. Both halves are fire-and-forget; failures are
// logged and counted, never returned.
type Notifier struct {
	dispatch *DispatchManager
	outbox   OutboxTaskRepository
	db       db.DB
	topic    string
	logger   *zap.Logger
}

func NewNotifier(dispatch *DispatchManager, outbox OutboxTaskRepository, database db.DB, topic string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{dispatch: dispatch, outbox: outbox, db: database, topic: topic, logger: logger}
}

func (n *Notifier) Notify(ctx context.Context, p repository.NotificationPayload) {
	if len(p.RecipientIDs) == 0 {
		return
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now().UTC()
	}

	n.dispatch.Enqueue(ctx, p)

	payload, err := json.Marshal(p)
	if err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("notify").Inc()
		n.logger.Error("notification payload marshal failed", zap.String("event", p.Event), zap.Error(err))
		return
	}

	task := &repository.OutboxTask{
		ID:      uuid.New(),
		Topic:   n.topic,
		Payload: payload,
	}
	if err := n.outbox.Create(ctx, n.db, task); err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("notify").Inc()
		n.logger.Error("outbox enqueue failed", zap.String("event", p.Event), zap.Error(err))
	}
}
