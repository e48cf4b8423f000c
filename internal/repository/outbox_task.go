package repository

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}

// NotificationPayload is the durable-inbox message format written to the
// outbox and published to the notification topic.
type NotificationPayload struct {
	Timestamp    time.Time `json:"timestamp"`
	RecipientIDs []string  `json:"recipient_ids"`
	RequestID    string    `json:"request_id,omitempty"`
	AnimalID     string    `json:"animal_id,omitempty"`
	Event        string    `json:"event"`
	Message      string    `json:"message"`
	Email        bool      `json:"email,omitempty"`
	Extra        any       `json:"extra,omitempty"`
}
