package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/db"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type ConversationRepo struct {
	db db.DB
}

func NewConversationRepo(db db.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// Create inserts the conversation and its participant set in one tx. The
// participant set is frozen at creation.
func (r *ConversationRepo) Create(ctx context.Context, conv *repository.Conversation, participantIDs []string) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	_, err = tx.Exec(ctx, `
        INSERT INTO conversations (id, request_id, created_at)
        VALUES ($1, $2, $3)
    `, conv.ID, conv.RequestID, conv.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert conversation: %w", err)
	}

	for _, userID := range participantIDs {
		_, err = tx.Exec(ctx, `
            INSERT INTO conversation_participants (conversation_id, user_id)
            VALUES ($1, $2)
        `, conv.ID, userID)
		if err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", userID, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *ConversationRepo) GetByRequestID(ctx context.Context, requestID string) (*repository.Conversation, error) {
	var conv repository.Conversation
	err := r.db.Get(ctx, &conv, "SELECT * FROM conversations WHERE request_id = $1", requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepo) GetParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	var ids []string
	err := r.db.Select(ctx, &ids, `
        SELECT user_id FROM conversation_participants
        WHERE conversation_id = $1
        ORDER BY user_id ASC
    `, conversationID)
	return ids, err
}
