package adoption

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/metrics"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

const maxVersionRetries = 3

func newID() string {
	return uuid.NewString()
}

type RequestRepository interface {
	Create(ctx context.Context, req *repository.AdoptionRequest) error
	GetByID(ctx context.Context, id string) (*repository.AdoptionRequest, error)
	Update(ctx context.Context, req *repository.AdoptionRequest) error
	GetByAnimalID(ctx context.Context, animalID string) ([]*repository.AdoptionRequest, error)
	GetActiveByAdopterAndAnimal(ctx context.Context, adopterID, animalID string) (*repository.AdoptionRequest, error)
	GetByAdopterID(ctx context.Context, adopterID string) ([]*repository.AdoptionRequest, error)
	GetUpcomingMeetings(ctx context.Context, until time.Time) ([]*repository.AdoptionRequest, error)
}

type AnimalRepository interface {
	GetByID(ctx context.Context, id string) (*repository.Animal, error)
	Update(ctx context.Context, animal *repository.Animal) error
}

type HistoryRepository interface {
	Create(ctx context.Context, entry *repository.HistoryEntry) error
	GetByRequestID(ctx context.Context, requestID string) ([]*repository.HistoryEntry, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *repository.Payment) error
	GetByID(ctx context.Context, id string) (*repository.Payment, error)
	GetByRequestID(ctx context.Context, requestID string) (*repository.Payment, error)
	Update(ctx context.Context, payment *repository.Payment) error
}

type UserRepository interface {
	ListStaffIDs(ctx context.Context, orgID string) ([]string, error)
}

// Agreements is the slice of the agreement service the orchestrator drives.
type Agreements interface {
	Send(ctx context.Context, req *repository.AdoptionRequest, animal *repository.Animal, expiresAt time.Time, clauses []string) (*repository.Agreement, error)
	Sign(ctx context.Context, agreementID string, signature []byte, meta repository.SignerMeta) (*repository.Agreement, error)
	GetByID(ctx context.Context, id string) (*repository.Agreement, error)
	GetByRequestID(ctx context.Context, requestID string) (*repository.Agreement, error)
}

// Conversations creates the message thread bound to an approved request.
type Conversations interface {
	CreateForRequest(ctx context.Context, req *repository.AdoptionRequest) (*repository.Conversation, error)
}

// Notifier is fire-and-forget: delivery failures are the notifier's problem,
// never the caller's.
type Notifier interface {
	Notify(ctx context.Context, p repository.NotificationPayload)
}

// Gateway mirrors the payment provider: an intent is created up front and
// confirmed asynchronously.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int, currency string, metadata map[string]string) (intentID, clientSecret string, err error)
	Confirm(ctx context.Context, intentID string) (success bool, receiptRef string, err error)
}

// AuditTrail is the optional post-finalization record hook. Best effort.
type AuditTrail interface {
	RecordAdoption(ctx context.Context, requestID, animalID, adopterID string) error
}

// AnimalCache is the read-through availability cache. The orchestrator keeps
// it current when it changes an animal's status.
type AnimalCache interface {
	Get(animalID string) (*repository.Animal, bool)
	Set(animal *repository.Animal)
}

// Actor identifies the caller of an orchestrator operation.
type Actor struct {
	ID    string
	Role  repository.Role
	OrgID string
}

type Deps struct {
	Requests      RequestRepository
	Animals       AnimalRepository
	History       HistoryRepository
	Payments      PaymentRepository
	Users         UserRepository
	Agreements    Agreements
	Conversations Conversations
	Notifier      Notifier
	Gateway       Gateway
	Audit         AuditTrail
	Cache         AnimalCache
	Logger        *zap.Logger
}

// Orchestrator owns the adoption request state machine. It is the only
// component that writes a request's or an animal's status.
type Orchestrator struct {
	requests      RequestRepository
	animals       AnimalRepository
	history       HistoryRepository
	payments      PaymentRepository
	users         UserRepository
	agreements    Agreements
	conversations Conversations
	notifier      Notifier
	gateway       Gateway
	audit         AuditTrail
	cache         AnimalCache
	locks         *animalLocks
	logger        *zap.Logger
}

func New(d Deps) *Orchestrator {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		requests:      d.Requests,
		animals:       d.Animals,
		history:       d.History,
		payments:      d.Payments,
		users:         d.Users,
		agreements:    d.Agreements,
		conversations: d.Conversations,
		notifier:      d.Notifier,
		gateway:       d.Gateway,
		audit:         d.Audit,
		cache:         d.Cache,
		locks:         newAnimalLocks(),
		logger:        logger,
	}
}

// Submit creates a pending request for animalID on behalf of the adopter.
func (o *Orchestrator) Submit(ctx context.Context, actor Actor, animalID string) (*repository.AdoptionRequest, error) {
	if actor.Role != repository.RoleAdopter {
		return nil, newError(KindForbidden, "only adopters may submit adoption requests")
	}

	unlock := o.locks.lock(animalID)
	defer unlock()

	animal, err := o.loadAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	if animal.Status != repository.AnimalAvailable && animal.Status != repository.AnimalFostered {
		return nil, newError(KindInvalidTransition, "animal %s is not available for adoption (status %s)", animalID, animal.Status)
	}

	existing, err := o.requests.GetActiveByAdopterAndAnimal(ctx, actor.ID, animalID)
	if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, wrapError(KindDownstreamFailure, err, "checking existing requests")
	}
	if existing != nil {
		return nil, newError(KindInvalidTransition, "adopter already has an open request for animal %s (status %s)", animalID, existing.Status)
	}

	now := time.Now().UTC()
	req := &repository.AdoptionRequest{
		ID:        newID(),
		AnimalID:  animalID,
		AdopterID: actor.ID,
		OrgID:     animal.OrgID,
		Status:    repository.StatusPending,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := o.requests.Create(ctx, req); err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "creating request")
	}
	o.appendHistory(ctx, req)
	metrics.RequestsSubmittedTotal.Inc()

	o.notifyStaff(ctx, req, "request_submitted", "New adoption request for "+animal.Name)

	return req, nil
}

// Approve grants the animal's adoption slot to this request. At most one
// request per animal may hold the slot; every other open request for the
// animal is put on hold before the lock is released.
func (o *Orchestrator) Approve(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	req, err := o.loadForStaff(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if !canTransition(req.Status, repository.StatusApproved) {
			return newError(KindInvalidTransition, "cannot approve request in status %s", req.Status)
		}

		siblings, err := o.requests.GetByAnimalID(ctx, req.AnimalID)
		if err != nil {
			return wrapError(KindDownstreamFailure, err, "loading sibling requests")
		}
		for _, sib := range siblings {
			if sib.ID != req.ID && holdsAnimalSlot(sib.Status) {
				return newError(KindInvalidTransition, "animal %s already has a request in status %s", req.AnimalID, sib.Status)
			}
		}

		req.Status = repository.StatusApproved
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	o.appendHistory(ctx, req)
	metrics.RequestsApprovedTotal.Inc()

	o.holdSiblings(ctx, req)

	if _, err := o.conversations.CreateForRequest(ctx, req); err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("conversation").Inc()
		o.logger.Error("conversation creation failed", zap.String("request_id", req.ID), zap.Error(err))
	}

	o.notifyAdopter(ctx, req, "request_approved", "Your adoption request was approved", false, nil)

	return req, nil
}

// Reject is terminal. Sibling requests are untouched.
func (o *Orchestrator) Reject(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	return o.closeAsStaff(ctx, actor, requestID, repository.StatusRejected, "request_rejected", "Your adoption request was rejected")
}

// Ignore is terminal, legal only before the request is approved.
func (o *Orchestrator) Ignore(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	return o.closeAsStaff(ctx, actor, requestID, repository.StatusIgnored, "request_ignored", "Your adoption request was closed without review")
}

func (o *Orchestrator) closeAsStaff(ctx context.Context, actor Actor, requestID string, target repository.RequestStatus, event, message string) (*repository.AdoptionRequest, error) {
	req, err := o.loadForStaff(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if !canTransition(req.Status, target) {
			return newError(KindInvalidTransition, "cannot move request from %s to %s", req.Status, target)
		}
		req.Status = target
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	o.appendHistory(ctx, req)

	o.notifyAdopter(ctx, req, event, message, false, nil)

	return req, nil
}

// Cancel lets the adopter withdraw a request that has not yet been approved.
func (o *Orchestrator) Cancel(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	req, err := o.loadForAdopter(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if req.Status != repository.StatusPending && req.Status != repository.StatusOnHold {
			return newError(KindInvalidTransition, "cannot cancel request in status %s", req.Status)
		}
		req.Status = repository.StatusCancelled
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	o.appendHistory(ctx, req)

	o.notifyStaff(ctx, req, "request_cancelled", "Adoption request cancelled by the adopter")

	return req, nil
}

// Get returns the request if the caller owns it (adopter) or works for its
// organization (staff).
func (o *Orchestrator) Get(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	req, err := o.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := o.authorize(actor, req); err != nil {
		return nil, err
	}
	return req, nil
}

// List returns the calling adopter's own requests, newest first.
func (o *Orchestrator) List(ctx context.Context, actor Actor) ([]*repository.AdoptionRequest, error) {
	if actor.Role != repository.RoleAdopter {
		return nil, newError(KindForbidden, "adopter role required")
	}
	reqs, err := o.requests.GetByAdopterID(ctx, actor.ID)
	if err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "listing requests for adopter %s", actor.ID)
	}
	return reqs, nil
}

// History returns the request's status trail.
func (o *Orchestrator) History(ctx context.Context, actor Actor, requestID string) ([]*repository.HistoryEntry, error) {
	req, err := o.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := o.authorize(actor, req); err != nil {
		return nil, err
	}
	entries, err := o.history.GetByRequestID(ctx, requestID)
	if err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "loading history")
	}
	return entries, nil
}

// holdSiblings moves every other open request for the animal to on_hold.
// Runs under the animal lock, so the slot invariant is restored before any
// later transition on this animal can start. Failures are logged; the
// committed approval is never rolled back.
func (o *Orchestrator) holdSiblings(ctx context.Context, approved *repository.AdoptionRequest) {
	o.forEachSibling(ctx, approved, repository.StatusOnHold, "request_on_hold", "Another request for this animal was approved; yours is on hold")
}

func (o *Orchestrator) forEachSibling(ctx context.Context, winner *repository.AdoptionRequest, target repository.RequestStatus, event, message string) {
	siblings, err := o.requests.GetByAnimalID(ctx, winner.AnimalID)
	if err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("siblings").Inc()
		o.logger.Error("loading siblings failed", zap.String("animal_id", winner.AnimalID), zap.Error(err))
		return
	}
	for _, sib := range siblings {
		if sib.ID == winner.ID || sib.Status.Terminal() || sib.Status == target {
			continue
		}
		sib := sib
		changed := false
		err := o.withVersionRetry(ctx, &sib, func() error {
			changed = false
			if sib.Status.Terminal() || sib.Status == target {
				return nil
			}
			sib.Status = target
			if err := o.requests.Update(ctx, sib); err != nil {
				return err
			}
			changed = true
			return nil
		})
		if err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("siblings").Inc()
			o.logger.Error("sibling transition failed",
				zap.String("request_id", sib.ID), zap.String("target", string(target)), zap.Error(err))
			continue
		}
		if !changed {
			continue
		}
		o.appendHistory(ctx, sib)
		o.notifyAdopter(ctx, sib, event, message, false, nil)
	}
}

// loadAnimal serves reads through the availability cache and falls back to
// the repository on a miss. Writes to animals always go through the
// repository directly.
func (o *Orchestrator) loadAnimal(ctx context.Context, animalID string) (*repository.Animal, error) {
	if o.cache != nil {
		if animal, ok := o.cache.Get(animalID); ok {
			return animal, nil
		}
	}
	animal, err := o.animals.GetByID(ctx, animalID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, newError(KindNotFound, "animal %s not found", animalID)
		}
		return nil, wrapError(KindDownstreamFailure, err, "loading animal %s", animalID)
	}
	if o.cache != nil {
		o.cache.Set(animal)
	}
	return animal, nil
}

func (o *Orchestrator) load(ctx context.Context, requestID string) (*repository.AdoptionRequest, error) {
	req, err := o.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, newError(KindNotFound, "request %s not found", requestID)
		}
		return nil, wrapError(KindDownstreamFailure, err, "loading request %s", requestID)
	}
	return req, nil
}

func (o *Orchestrator) authorize(actor Actor, req *repository.AdoptionRequest) error {
	switch actor.Role {
	case repository.RoleStaff:
		if actor.OrgID != req.OrgID {
			return newError(KindForbidden, "staff member belongs to a different organization")
		}
	case repository.RoleAdopter:
		if actor.ID != req.AdopterID {
			return newError(KindForbidden, "request belongs to a different adopter")
		}
	default:
		return newError(KindForbidden, "unknown role %q", actor.Role)
	}
	return nil
}

func (o *Orchestrator) loadForStaff(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	if actor.Role != repository.RoleStaff {
		return nil, newError(KindForbidden, "staff role required")
	}
	req, err := o.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := o.authorize(actor, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (o *Orchestrator) loadForAdopter(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	if actor.Role != repository.RoleAdopter {
		return nil, newError(KindForbidden, "adopter role required")
	}
	req, err := o.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := o.authorize(actor, req); err != nil {
		return nil, err
	}
	return req, nil
}

// withVersionRetry runs fn, and on an optimistic-lock conflict reloads the
// request and tries again, a bounded number of times. fn mutates *reqPtr and
// must re-check its preconditions on every attempt.
func (o *Orchestrator) withVersionRetry(ctx context.Context, reqPtr **repository.AdoptionRequest, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		if attempt > 0 {
			fresh, loadErr := o.requests.GetByID(ctx, (*reqPtr).ID)
			if loadErr != nil {
				return wrapError(KindDownstreamFailure, loadErr, "reloading request %s", (*reqPtr).ID)
			}
			*reqPtr = fresh
		}
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			var tagged *Error
			if errors.As(err, &tagged) {
				return err
			}
			return wrapError(KindDownstreamFailure, err, "updating request %s", (*reqPtr).ID)
		}
		metrics.VersionConflictsTotal.Inc()
	}
	return wrapError(KindConcurrentModification, err, "request %s was modified concurrently", (*reqPtr).ID)
}

func (o *Orchestrator) appendHistory(ctx context.Context, req *repository.AdoptionRequest) {
	entry := &repository.HistoryEntry{
		RequestID: req.ID,
		Status:    req.Status,
		ChangedAt: time.Now().UTC(),
	}
	if err := o.history.Create(ctx, entry); err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("history").Inc()
		o.logger.Error("history append failed", zap.String("request_id", req.ID), zap.Error(err))
	}
}

func (o *Orchestrator) notifyAdopter(ctx context.Context, req *repository.AdoptionRequest, event, message string, email bool, extra any) {
	o.notifier.Notify(ctx, repository.NotificationPayload{
		Timestamp:    time.Now().UTC(),
		RecipientIDs: []string{req.AdopterID},
		RequestID:    req.ID,
		AnimalID:     req.AnimalID,
		Event:        event,
		Message:      message,
		Email:        email,
		Extra:        extra,
	})
}

func (o *Orchestrator) notifyStaff(ctx context.Context, req *repository.AdoptionRequest, event, message string) {
	staffIDs, err := o.users.ListStaffIDs(ctx, req.OrgID)
	if err != nil {
		metrics.SideEffectErrorsTotal.WithLabelValues("notify").Inc()
		o.logger.Error("staff lookup failed", zap.String("org_id", req.OrgID), zap.Error(err))
		return
	}
	o.notifier.Notify(ctx, repository.NotificationPayload{
		Timestamp:    time.Now().UTC(),
		RecipientIDs: staffIDs,
		RequestID:    req.ID,
		AnimalID:     req.AnimalID,
		Event:        event,
		Message:      message,
	})
}
