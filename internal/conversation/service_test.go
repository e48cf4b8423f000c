package conversation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/conversation"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type stubConvRepo struct {
	byRequest    map[string]*repository.Conversation
	participants map[string][]string
}

func newStubConvRepo() *stubConvRepo {
	return &stubConvRepo{
		byRequest:    make(map[string]*repository.Conversation),
		participants: make(map[string][]string),
	}
}

func (s *stubConvRepo) Create(_ context.Context, conv *repository.Conversation, participantIDs []string) error {
	cp := *conv
	s.byRequest[conv.RequestID] = &cp
	s.participants[conv.ID] = append([]string(nil), participantIDs...)
	return nil
}

func (s *stubConvRepo) GetByRequestID(_ context.Context, requestID string) (*repository.Conversation, error) {
	conv, ok := s.byRequest[requestID]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	cp := *conv
	return &cp, nil
}

func (s *stubConvRepo) GetParticipantIDs(_ context.Context, conversationID string) ([]string, error) {
	return s.participants[conversationID], nil
}

type stubStaff struct {
	ids []string
}

func (s *stubStaff) ListStaffIDs(_ context.Context, _ string) ([]string, error) {
	return s.ids, nil
}

func TestCreateForRequest(t *testing.T) {
	ctx := context.Background()
	req := &repository.AdoptionRequest{ID: "req-1", AdopterID: "adopter-1", OrgID: "org-1"}

	t.Run("participants are the adopter plus current staff", func(t *testing.T) {
		repo := newStubConvRepo()
		svc := conversation.NewService(repo, &stubStaff{ids: []string{"staff-1", "staff-2"}}, nil)

		conv, err := svc.CreateForRequest(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "req-1", conv.RequestID)

		participants, err := svc.Participants(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"adopter-1", "staff-1", "staff-2"}, participants)
	})

	t.Run("second call returns the existing thread", func(t *testing.T) {
		repo := newStubConvRepo()
		svc := conversation.NewService(repo, &stubStaff{ids: []string{"staff-1"}}, nil)

		first, err := svc.CreateForRequest(ctx, req)
		require.NoError(t, err)
		second, err := svc.CreateForRequest(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
	})

	t.Run("roster changes do not touch existing threads", func(t *testing.T) {
		repo := newStubConvRepo()
		staff := &stubStaff{ids: []string{"staff-1"}}
		svc := conversation.NewService(repo, staff, nil)

		conv, err := svc.CreateForRequest(ctx, req)
		require.NoError(t, err)

		staff.ids = []string{"staff-1", "staff-9"}
		participants, err := svc.Participants(ctx, conv.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"adopter-1", "staff-1"}, participants)
	})
}
