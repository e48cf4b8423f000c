package adoption_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/adoption"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/agreement"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// In-memory fakes mirroring the postgres repositories, including their
// optimistic version check.

type fakeRequestRepo struct {
	mu   sync.Mutex
	byID map[string]*repository.AdoptionRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: make(map[string]*repository.AdoptionRequest)}
}

func (f *fakeRequestRepo) Create(_ context.Context, req *repository.AdoptionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *req
	f.byID[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (*repository.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	cp := *req
	return &cp, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, req *repository.AdoptionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[req.ID]
	if !ok {
		return repository.ErrObjectNotFound
	}
	if stored.Version != req.Version {
		return repository.ErrVersionConflict
	}
	req.Version++
	req.UpdatedAt = time.Now().UTC()
	cp := *req
	f.byID[req.ID] = &cp
	return nil
}

func (f *fakeRequestRepo) GetByAnimalID(_ context.Context, animalID string) ([]*repository.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.AdoptionRequest
	for _, req := range f.byID {
		if req.AnimalID == animalID {
			cp := *req
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) GetByAdopterID(_ context.Context, adopterID string) ([]*repository.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.AdoptionRequest
	for _, req := range f.byID {
		if req.AdopterID == adopterID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRequestRepo) GetActiveByAdopterAndAnimal(_ context.Context, adopterID, animalID string) (*repository.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, req := range f.byID {
		if req.AdopterID == adopterID && req.AnimalID == animalID && !req.Status.Terminal() {
			cp := *req
			return &cp, nil
		}
	}
	return nil, repository.ErrObjectNotFound
}

func (f *fakeRequestRepo) GetUpcomingMeetings(_ context.Context, until time.Time) ([]*repository.AdoptionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.AdoptionRequest
	for _, req := range f.byID {
		if req.Status != repository.StatusMeeting || req.MeetingState == nil || req.MeetingAt == nil {
			continue
		}
		if *req.MeetingState != repository.MeetingScheduled && *req.MeetingState != repository.MeetingConfirmed {
			continue
		}
		if req.MeetingAt.After(until) {
			continue
		}
		cp := *req
		out = append(out, &cp)
	}
	return out, nil
}

type fakeAnimalRepo struct {
	mu   sync.Mutex
	byID map[string]*repository.Animal
}

func newFakeAnimalRepo() *fakeAnimalRepo {
	return &fakeAnimalRepo{byID: make(map[string]*repository.Animal)}
}

func (f *fakeAnimalRepo) put(animal *repository.Animal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *animal
	f.byID[animal.ID] = &cp
}

func (f *fakeAnimalRepo) GetByID(_ context.Context, id string) (*repository.Animal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	animal, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	cp := *animal
	return &cp, nil
}

func (f *fakeAnimalRepo) Update(_ context.Context, animal *repository.Animal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.byID[animal.ID]
	if !ok {
		return repository.ErrObjectNotFound
	}
	if stored.Version != animal.Version {
		return repository.ErrVersionConflict
	}
	animal.Version++
	cp := *animal
	f.byID[animal.ID] = &cp
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*repository.HistoryEntry
}

func (f *fakeHistoryRepo) Create(_ context.Context, entry *repository.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *entry
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeHistoryRepo) GetByRequestID(_ context.Context, requestID string) ([]*repository.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*repository.HistoryEntry
	for _, entry := range f.entries {
		if entry.RequestID == requestID {
			cp := *entry
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) statuses(requestID string) []repository.RequestStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.RequestStatus
	for _, entry := range f.entries {
		if entry.RequestID == requestID {
			out = append(out, entry.Status)
		}
	}
	return out
}

type fakePaymentRepo struct {
	mu   sync.Mutex
	byID map[string]*repository.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{byID: make(map[string]*repository.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *repository.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *payment
	f.byID[payment.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id string) (*repository.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	cp := *payment
	return &cp, nil
}

func (f *fakePaymentRepo) GetByRequestID(_ context.Context, requestID string) (*repository.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, payment := range f.byID {
		if payment.RequestID == requestID {
			cp := *payment
			return &cp, nil
		}
	}
	return nil, repository.ErrObjectNotFound
}

func (f *fakePaymentRepo) Update(_ context.Context, payment *repository.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[payment.ID]; !ok {
		return repository.ErrObjectNotFound
	}
	cp := *payment
	f.byID[payment.ID] = &cp
	return nil
}

type fakeUserRepo struct {
	staffIDs []string
}

func (f *fakeUserRepo) ListStaffIDs(_ context.Context, _ string) ([]string, error) {
	return f.staffIDs, nil
}

type fakeAgreementRepo struct {
	mu   sync.Mutex
	byID map[string]*repository.Agreement
}

func newFakeAgreementRepo() *fakeAgreementRepo {
	return &fakeAgreementRepo{byID: make(map[string]*repository.Agreement)}
}

func (f *fakeAgreementRepo) Create(_ context.Context, agr *repository.Agreement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *agr
	f.byID[agr.ID] = &cp
	return nil
}

func (f *fakeAgreementRepo) GetByID(_ context.Context, id string) (*repository.Agreement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	agr, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	cp := *agr
	return &cp, nil
}

func (f *fakeAgreementRepo) GetByRequestID(_ context.Context, requestID string) (*repository.Agreement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, agr := range f.byID {
		if agr.RequestID == requestID {
			cp := *agr
			return &cp, nil
		}
	}
	return nil, repository.ErrObjectNotFound
}

func (f *fakeAgreementRepo) Update(_ context.Context, agr *repository.Agreement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[agr.ID]; !ok {
		return repository.ErrObjectNotFound
	}
	cp := *agr
	f.byID[agr.ID] = &cp
	return nil
}

type memDocStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

func newMemDocStore() *memDocStore {
	return &memDocStore{docs: make(map[string][]byte)}
}

func (m *memDocStore) Save(_ context.Context, ref string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.docs[ref] = cp
	return nil
}

func (m *memDocStore) Load(_ context.Context, ref string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.docs[ref]
	if !ok {
		return nil, fmt.Errorf("document %s not found", ref)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

type fakeConversations struct {
	mu      sync.Mutex
	created []string
}

func (f *fakeConversations) CreateForRequest(_ context.Context, req *repository.AdoptionRequest) (*repository.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req.ID)
	return &repository.Conversation{ID: "conv-" + req.ID, RequestID: req.ID, CreatedAt: time.Now().UTC()}, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	payloads []repository.NotificationPayload
}

func (f *fakeNotifier) Notify(_ context.Context, p repository.NotificationPayload) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, p)
}

func (f *fakeNotifier) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.payloads))
	for _, p := range f.payloads {
		out = append(out, p.Event)
	}
	return out
}

func (f *fakeNotifier) last(event string) (repository.NotificationPayload, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.payloads) - 1; i >= 0; i-- {
		if f.payloads[i].Event == event {
			return f.payloads[i], true
		}
	}
	return repository.NotificationPayload{}, false
}

func (f *fakeNotifier) count(event string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.payloads {
		if p.Event == event {
			n++
		}
	}
	return n
}

type fakeGateway struct {
	mu          sync.Mutex
	failConfirm bool
	intentErr   error
	intents     int
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int, currency string, metadata map[string]string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.intentErr != nil {
		return "", "", f.intentErr
	}
	f.intents++
	id := fmt.Sprintf("intent-%d", f.intents)
	return id, id + "-secret", nil
}

func (f *fakeGateway) Confirm(_ context.Context, intentID string) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failConfirm {
		return false, "", nil
	}
	return true, "receipt-" + intentID, nil
}

type env struct {
	requests   *fakeRequestRepo
	animals    *fakeAnimalRepo
	history    *fakeHistoryRepo
	payments   *fakePaymentRepo
	users      *fakeUserRepo
	agrRepo    *fakeAgreementRepo
	docs       *memDocStore
	agreements *agreement.Service
	convs      *fakeConversations
	notifier   *fakeNotifier
	gateway    *fakeGateway
	orch       *adoption.Orchestrator
}

func newEnv() *env {
	e := &env{
		requests: newFakeRequestRepo(),
		animals:  newFakeAnimalRepo(),
		history:  &fakeHistoryRepo{},
		payments: newFakePaymentRepo(),
		users:    &fakeUserRepo{staffIDs: []string{"staff-1", "staff-2"}},
		agrRepo:  newFakeAgreementRepo(),
		docs:     newMemDocStore(),
		convs:    &fakeConversations{},
		notifier: &fakeNotifier{},
		gateway:  &fakeGateway{},
	}
	e.agreements = agreement.NewService(e.agrRepo, e.docs, nil)
	e.orch = adoption.New(adoption.Deps{
		Requests:      e.requests,
		Animals:       e.animals,
		History:       e.history,
		Payments:      e.payments,
		Users:         e.users,
		Agreements:    e.agreements,
		Conversations: e.convs,
		Notifier:      e.notifier,
		Gateway:       e.gateway,
	})
	return e
}

var (
	staffActor   = adoption.Actor{ID: "staff-1", Role: repository.RoleStaff, OrgID: "org-1"}
	adopterActor = adoption.Actor{ID: "adopter-1", Role: repository.RoleAdopter}
	secondActor  = adoption.Actor{ID: "adopter-2", Role: repository.RoleAdopter}
)

func (e *env) addAnimal(id string, status repository.AnimalStatus, ageMonths int, specialNeeds bool) *repository.Animal {
	animal := &repository.Animal{
		ID:           id,
		OrgID:        "org-1",
		Name:         "Buddy",
		Species:      "dog",
		AgeMonths:    ageMonths,
		SpecialNeeds: specialNeeds,
		Status:       status,
		Version:      1,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	e.animals.put(animal)
	return animal
}

// seedRequest plants a request directly in the store, bypassing the
// orchestrator, for tests that start mid-lifecycle.
func (e *env) seedRequest(id, animalID, adopterID string, status repository.RequestStatus) *repository.AdoptionRequest {
	req := &repository.AdoptionRequest{
		ID:        id,
		AnimalID:  animalID,
		AdopterID: adopterID,
		OrgID:     "org-1",
		Status:    status,
		Version:   1,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	_ = e.requests.Create(context.Background(), req)
	return req
}

func (e *env) requestStatus(id string) repository.RequestStatus {
	req, err := e.requests.GetByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return "missing"
		}
		return repository.RequestStatus(err.Error())
	}
	return req.Status
}
