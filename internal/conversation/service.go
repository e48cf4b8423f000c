package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type Repository interface {
	Create(ctx context.Context, conv *repository.Conversation, participantIDs []string) error
	GetByRequestID(ctx context.Context, requestID string) (*repository.Conversation, error)
	GetParticipantIDs(ctx context.Context, conversationID string) ([]string, error)
}

type StaffDirectory interface {
	ListStaffIDs(ctx context.Context, orgID string) ([]string, error)
}

// Service creates the message thread bound 1:1 to an adoption request. The
// participant set is the adopter plus the organization's staff at creation
// time; later roster changes do not touch existing threads.
type Service struct {
	repo   Repository
	staff  StaffDirectory
	logger *zap.Logger
}

func NewService(repo Repository, staff StaffDirectory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, staff: staff, logger: logger}
}

// CreateForRequest returns the existing thread when one is already bound to
// the request.
func (s *Service) CreateForRequest(ctx context.Context, req *repository.AdoptionRequest) (*repository.Conversation, error) {
	existing, err := s.repo.GetByRequestID(ctx, req.ID)
	if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("failed to check existing conversation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	staffIDs, err := s.staff.ListStaffIDs(ctx, req.OrgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff for org %s: %w", req.OrgID, err)
	}

	participants := append([]string{req.AdopterID}, staffIDs...)
	conv := &repository.Conversation{
		ID:        uuid.NewString(),
		RequestID: req.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, conv, participants); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	s.logger.Info("conversation created",
		zap.String("conversation_id", conv.ID), zap.String("request_id", req.ID), zap.Int("participants", len(participants)))

	return conv, nil
}

func (s *Service) GetByRequestID(ctx context.Context, requestID string) (*repository.Conversation, error) {
	return s.repo.GetByRequestID(ctx, requestID)
}

func (s *Service) Participants(ctx context.Context, conversationID string) ([]string, error) {
	return s.repo.GetParticipantIDs(ctx, conversationID)
}
