//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/adoption"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// Lifecycle is the orchestrator surface the HTTP layer drives.
type Lifecycle interface {
	Submit(ctx context.Context, actor adoption.Actor, animalID string) (*repository.AdoptionRequest, error)
	Get(ctx context.Context, actor adoption.Actor, requestID string) (*repository.AdoptionRequest, error)
	List(ctx context.Context, actor adoption.Actor) ([]*repository.AdoptionRequest, error)
	History(ctx context.Context, actor adoption.Actor, requestID string) ([]*repository.HistoryEntry, error)
	Approve(ctx context.Context, actor adoption.Actor, requestID string) (*repository.AdoptionRequest, error)
	Reject(ctx context.Context, actor adoption.Actor, requestID string) (*repository.AdoptionRequest, error)
	Ignore(ctx context.Context, actor adoption.Actor, requestID string) (*repository.AdoptionRequest, error)
	Cancel(ctx context.Context, actor adoption.Actor, requestID string) (*repository.AdoptionRequest, error)
	ScheduleMeeting(ctx context.Context, actor adoption.Actor, requestID string, at time.Time, meetingType repository.MeetingType) (*repository.AdoptionRequest, error)
	ConfirmMeeting(ctx context.Context, actor adoption.Actor, requestID string) (*repository.AdoptionRequest, error)
	CompleteMeeting(ctx context.Context, actor adoption.Actor, requestID string, notes string) (*repository.AdoptionRequest, error)
	RescheduleMeeting(ctx context.Context, actor adoption.Actor, requestID string, at time.Time) (*repository.AdoptionRequest, error)
	SendAgreement(ctx context.Context, actor adoption.Actor, requestID string, clauses []string) (*repository.Agreement, error)
	SignAgreement(ctx context.Context, actor adoption.Actor, agreementID string, signature []byte, meta repository.SignerMeta) (*repository.Agreement, error)
	InitiatePayment(ctx context.Context, actor adoption.Actor, requestID string) (*repository.Payment, string, error)
	ConfirmPayment(ctx context.Context, paymentID string) (*repository.Payment, error)
}

type UserRepo interface {
	Authenticate(ctx context.Context, username, password string) (*repository.User, error)
}

type Server struct {
	lifecycle Lifecycle
	userRepo  UserRepo
	logger    *zap.Logger
	server    *http.Server
}

func New(lifecycle Lifecycle, userRepo UserRepo, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		lifecycle: lifecycle,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/requests", s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/requests", s.handleListRequests).Methods(http.MethodGet)
	r.HandleFunc("/requests/{id}", s.handleGetRequest).Methods(http.MethodGet)
	r.HandleFunc("/requests/{id}/history", s.handleRequestHistory).Methods(http.MethodGet)
	r.HandleFunc("/requests/{id}/approve", s.handleApprove).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/reject", s.handleReject).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/ignore", s.handleIgnore).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/cancel", s.handleCancel).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/meeting", s.handleScheduleMeeting).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/meeting", s.handleRescheduleMeeting).Methods(http.MethodPut)
	r.HandleFunc("/requests/{id}/meeting/confirm", s.handleConfirmMeeting).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/meeting/complete", s.handleCompleteMeeting).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/agreement", s.handleSendAgreement).Methods(http.MethodPost)
	r.HandleFunc("/agreements/{id}/sign", s.handleSignAgreement).Methods(http.MethodPost)
	r.HandleFunc("/requests/{id}/payment", s.handleInitiatePayment).Methods(http.MethodPost)
	r.HandleFunc("/payments/{id}/confirm", s.handleConfirmPayment).Methods(http.MethodPost)

	return s.basicAuthMiddleware(r)
}

type actorKey struct{}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		user, err := s.userRepo.Authenticate(r.Context(), username, password)
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		actor := adoption.Actor{ID: user.ID, Role: user.Role, OrgID: user.OrgID}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey{}, actor)))
	})
}

func actorFrom(r *http.Request) adoption.Actor {
	actor, _ := r.Context().Value(actorKey{}).(adoption.Actor)
	return actor
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the lifecycle error taxonomy onto HTTP codes.
func (s *Server) respondDomainError(w http.ResponseWriter, err error) {
	var tagged *adoption.Error
	if !errors.As(err, &tagged) {
		s.logger.Error("unclassified error", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch tagged.Kind {
	case adoption.KindNotFound:
		status = http.StatusNotFound
	case adoption.KindForbidden:
		status = http.StatusForbidden
	case adoption.KindInvalidTransition, adoption.KindConcurrentModification:
		status = http.StatusConflict
	case adoption.KindExpiredResource:
		status = http.StatusGone
	case adoption.KindDownstreamFailure:
		status = http.StatusBadGateway
	}
	respondError(w, status, tagged.Error())
}
