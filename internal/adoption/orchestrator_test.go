package adoption_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/adoption"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

func TestSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending request and notifies staff", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		assert.Equal(t, repository.StatusPending, req.Status)
		assert.Equal(t, "adopter-1", req.AdopterID)
		assert.Equal(t, "org-1", req.OrgID)
		assert.Equal(t, 1, req.Version)

		assert.Equal(t, []repository.RequestStatus{repository.StatusPending}, e.history.statuses(req.ID))

		p, ok := e.notifier.last("request_submitted")
		require.True(t, ok)
		assert.Equal(t, []string{"staff-1", "staff-2"}, p.RecipientIDs)
	})

	t.Run("fostered animal is still adoptable", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalFostered, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		assert.Equal(t, repository.StatusPending, req.Status)
	})

	t.Run("staff cannot submit", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		_, err := e.orch.Submit(ctx, staffActor, "animal-1")
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))
	})

	t.Run("unknown animal", func(t *testing.T) {
		e := newEnv()

		_, err := e.orch.Submit(ctx, adopterActor, "nope")
		assert.True(t, adoption.IsKind(err, adoption.KindNotFound))
	})

	t.Run("adopted animal rejected", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAdopted, 24, false)

		_, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		assert.True(t, adoption.IsKind(err, adoption.KindInvalidTransition))
	})

	t.Run("duplicate open request rejected", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		_, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)

		_, err = e.orch.Submit(ctx, adopterActor, "animal-1")
		assert.True(t, adoption.IsKind(err, adoption.KindInvalidTransition))
	})

	t.Run("new request allowed after cancellation", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		first, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		_, err = e.orch.Cancel(ctx, adopterActor, first.ID)
		require.NoError(t, err)

		second, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("approval holds siblings and opens a conversation", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		winner, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		loser, err := e.orch.Submit(ctx, secondActor, "animal-1")
		require.NoError(t, err)

		approved, err := e.orch.Approve(ctx, staffActor, winner.ID)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusApproved, approved.Status)

		assert.Equal(t, repository.StatusOnHold, e.requestStatus(loser.ID))
		assert.Equal(t, []string{winner.ID}, e.convs.created)

		p, ok := e.notifier.last("request_on_hold")
		require.True(t, ok)
		assert.Equal(t, []string{"adopter-2"}, p.RecipientIDs)
	})

	t.Run("second approval for the same animal is refused", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		winner, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		loser, err := e.orch.Submit(ctx, secondActor, "animal-1")
		require.NoError(t, err)

		_, err = e.orch.Approve(ctx, staffActor, winner.ID)
		require.NoError(t, err)

		_, err = e.orch.Approve(ctx, staffActor, loser.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindInvalidTransition))
	})

	t.Run("on_hold request can be approved once the slot frees up", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		winner, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		held, err := e.orch.Submit(ctx, secondActor, "animal-1")
		require.NoError(t, err)

		_, err = e.orch.Approve(ctx, staffActor, winner.ID)
		require.NoError(t, err)
		_, err = e.orch.Reject(ctx, staffActor, winner.ID)
		require.NoError(t, err)

		approved, err := e.orch.Approve(ctx, staffActor, held.ID)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusApproved, approved.Status)
	})

	t.Run("adopter cannot approve", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)

		_, err = e.orch.Approve(ctx, adopterActor, req.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))
	})

	t.Run("staff from another org is refused", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)

		outsider := adoption.Actor{ID: "staff-9", Role: repository.RoleStaff, OrgID: "org-2"}
		_, err = e.orch.Approve(ctx, outsider, req.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("pending request can be cancelled", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)

		cancelled, err := e.orch.Cancel(ctx, adopterActor, req.ID)
		require.NoError(t, err)
		assert.Equal(t, repository.StatusCancelled, cancelled.Status)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)
		_, err = e.orch.Approve(ctx, staffActor, req.ID)
		require.NoError(t, err)

		_, err = e.orch.Cancel(ctx, adopterActor, req.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindInvalidTransition))
	})

	t.Run("only the owner can cancel", func(t *testing.T) {
		e := newEnv()
		e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

		req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
		require.NoError(t, err)

		_, err = e.orch.Cancel(ctx, secondActor, req.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))
	})
}

func TestTerminalStatusesRefuseTransitions(t *testing.T) {
	ctx := context.Background()

	e := newEnv()
	e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

	req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
	require.NoError(t, err)
	_, err = e.orch.Reject(ctx, staffActor, req.ID)
	require.NoError(t, err)

	_, err = e.orch.Approve(ctx, staffActor, req.ID)
	assert.True(t, adoption.IsKind(err, adoption.KindInvalidTransition))

	_, err = e.orch.Ignore(ctx, staffActor, req.ID)
	assert.True(t, adoption.IsKind(err, adoption.KindInvalidTransition))

	assert.Equal(t, repository.StatusRejected, e.requestStatus(req.ID))
}

func TestGetAndHistory(t *testing.T) {
	ctx := context.Background()

	e := newEnv()
	e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

	req, err := e.orch.Submit(ctx, adopterActor, "animal-1")
	require.NoError(t, err)
	_, err = e.orch.Approve(ctx, staffActor, req.ID)
	require.NoError(t, err)

	t.Run("owner and org staff can read", func(t *testing.T) {
		got, err := e.orch.Get(ctx, adopterActor, req.ID)
		require.NoError(t, err)
		assert.Equal(t, req.ID, got.ID)

		entries, err := e.orch.History(ctx, staffActor, req.ID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, repository.StatusPending, entries[0].Status)
		assert.Equal(t, repository.StatusApproved, entries[1].Status)
	})

	t.Run("other adopter is refused", func(t *testing.T) {
		_, err := e.orch.Get(ctx, secondActor, req.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))

		_, err = e.orch.History(ctx, secondActor, req.ID)
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := e.orch.Get(ctx, adopterActor, "missing")
		assert.True(t, adoption.IsKind(err, adoption.KindNotFound))
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()

	t.Run("adopter sees only their own requests", func(t *testing.T) {
		e := newEnv()
		e.seedRequest("req-1", "animal-1", "adopter-1", repository.StatusPending)
		e.seedRequest("req-2", "animal-2", "adopter-1", repository.StatusCancelled)
		e.seedRequest("req-3", "animal-3", "adopter-2", repository.StatusPending)

		reqs, err := e.orch.List(ctx, adopterActor)
		require.NoError(t, err)
		require.Len(t, reqs, 2)
		assert.ElementsMatch(t, []string{"req-1", "req-2"}, []string{reqs[0].ID, reqs[1].ID})
	})

	t.Run("staff role is refused", func(t *testing.T) {
		e := newEnv()

		_, err := e.orch.List(ctx, staffActor)
		assert.True(t, adoption.IsKind(err, adoption.KindForbidden))
	})

	t.Run("no requests yet yields an empty list", func(t *testing.T) {
		e := newEnv()

		reqs, err := e.orch.List(ctx, adopterActor)
		require.NoError(t, err)
		assert.Empty(t, reqs)
	})
}

// conflictingRequestRepo makes every Update lose the optimistic version race.
type conflictingRequestRepo struct {
	*fakeRequestRepo
}

func (c *conflictingRequestRepo) Update(_ context.Context, _ *repository.AdoptionRequest) error {
	return repository.ErrVersionConflict
}

func TestConcurrentModificationSurfacesAfterRetries(t *testing.T) {
	ctx := context.Background()

	e := newEnv()
	e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)
	req := e.seedRequest("req-1", "animal-1", "adopter-1", repository.StatusPending)

	orch := adoption.New(adoption.Deps{
		Requests:      &conflictingRequestRepo{e.requests},
		Animals:       e.animals,
		History:       e.history,
		Payments:      e.payments,
		Users:         e.users,
		Agreements:    e.agreements,
		Conversations: e.convs,
		Notifier:      e.notifier,
		Gateway:       e.gateway,
	})

	_, err := orch.Approve(ctx, staffActor, req.ID)
	assert.True(t, adoption.IsKind(err, adoption.KindConcurrentModification))
	assert.Equal(t, repository.StatusPending, e.requestStatus(req.ID))
}

// cancelOnConflictRepo loses the version race once for one request, and
// cancels the stored record while losing it, like a concurrent cancellation
// landing first would.
type cancelOnConflictRepo struct {
	*fakeRequestRepo
	targetID string
	fired    bool
}

func (c *cancelOnConflictRepo) Update(ctx context.Context, req *repository.AdoptionRequest) error {
	if req.ID == c.targetID && !c.fired {
		c.fired = true
		c.mu.Lock()
		stored := c.byID[req.ID]
		stored.Status = repository.StatusCancelled
		stored.Version++
		c.mu.Unlock()
		return repository.ErrVersionConflict
	}
	return c.fakeRequestRepo.Update(ctx, req)
}

func TestApproveLeavesCancelledSiblingAlone(t *testing.T) {
	ctx := context.Background()

	e := newEnv()
	e.addAnimal("animal-1", repository.AnimalAvailable, 24, false)

	winner, err := e.orch.Submit(ctx, adopterActor, "animal-1")
	require.NoError(t, err)
	loser, err := e.orch.Submit(ctx, secondActor, "animal-1")
	require.NoError(t, err)

	orch := adoption.New(adoption.Deps{
		Requests:      &cancelOnConflictRepo{fakeRequestRepo: e.requests, targetID: loser.ID},
		Animals:       e.animals,
		History:       e.history,
		Payments:      e.payments,
		Users:         e.users,
		Agreements:    e.agreements,
		Conversations: e.convs,
		Notifier:      e.notifier,
		Gateway:       e.gateway,
	})

	_, err = orch.Approve(ctx, staffActor, winner.ID)
	require.NoError(t, err)

	// The retry reload finds the sibling cancelled, so it gets neither a
	// history entry nor an on-hold notification.
	assert.Equal(t, repository.StatusCancelled, e.requestStatus(loser.ID))
	assert.NotContains(t, e.history.statuses(loser.ID), repository.StatusOnHold)
	assert.Zero(t, e.notifier.count("request_on_hold"))
}
