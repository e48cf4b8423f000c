package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type meetingResponse struct {
	Type        repository.MeetingType `json:"type"`
	ScheduledAt time.Time              `json:"scheduled_at"`
	Confirmed   bool                   `json:"confirmed"`
	Completed   bool                   `json:"completed"`
	ConfirmedAt *time.Time             `json:"confirmed_at,omitempty"`
	Notes       string                 `json:"notes,omitempty"`
}

type requestResponse struct {
	ID        string                   `json:"id"`
	AnimalID  string                   `json:"animal_id"`
	AdopterID string                   `json:"adopter_id"`
	OrgID     string                   `json:"org_id"`
	Status    repository.RequestStatus `json:"status"`
	Meeting   *meetingResponse         `json:"meeting,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// toRequestResponse keeps the wire contract's confirmed/completed booleans
// while the meeting lifecycle is stored as a single state internally.
func toRequestResponse(req *repository.AdoptionRequest) requestResponse {
	resp := requestResponse{
		ID:        req.ID,
		AnimalID:  req.AnimalID,
		AdopterID: req.AdopterID,
		OrgID:     req.OrgID,
		Status:    req.Status,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
	if req.MeetingState != nil && req.MeetingAt != nil && req.MeetingType != nil {
		m := &meetingResponse{
			Type:        *req.MeetingType,
			ScheduledAt: *req.MeetingAt,
			Confirmed:   *req.MeetingState == repository.MeetingConfirmed || *req.MeetingState == repository.MeetingCompleted,
			Completed:   *req.MeetingState == repository.MeetingCompleted,
			ConfirmedAt: req.MeetingConfirmedAt,
		}
		if req.MeetingNotes != nil {
			m.Notes = *req.MeetingNotes
		}
		resp.Meeting = m
	}
	return resp
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var submitRequest struct {
		AnimalID string `json:"animal_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&submitRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if submitRequest.AnimalID == "" {
		respondError(w, http.StatusBadRequest, "Missing animal_id")
		return
	}

	req, err := s.lifecycle.Submit(r.Context(), actorFrom(r), submitRequest.AnimalID)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toRequestResponse(req))
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := s.lifecycle.List(r.Context(), actorFrom(r))
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	resp := make([]requestResponse, len(reqs))
	for i, req := range reqs {
		resp[i] = toRequestResponse(req)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.lifecycle.Get(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleRequestHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.lifecycle.History(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}

	type historyResponse struct {
		Status    repository.RequestStatus `json:"status"`
		ChangedAt time.Time                `json:"changed_at"`
	}
	resp := make([]historyResponse, len(entries))
	for i, entry := range entries {
		resp[i] = historyResponse{Status: entry.Status, ChangedAt: entry.ChangedAt}
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	req, err := s.lifecycle.Approve(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	req, err := s.lifecycle.Reject(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleIgnore(w http.ResponseWriter, r *http.Request) {
	req, err := s.lifecycle.Ignore(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	req, err := s.lifecycle.Cancel(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleScheduleMeeting(w http.ResponseWriter, r *http.Request) {
	var meetingRequest struct {
		At   string `json:"at"`
		Type string `json:"type"`
	}

	if err := json.NewDecoder(r.Body).Decode(&meetingRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	at, err := time.Parse(time.RFC3339, meetingRequest.At)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meeting time. Use RFC3339")
		return
	}
	if at.Before(time.Now()) {
		respondError(w, http.StatusBadRequest, "Meeting time is in the past")
		return
	}

	req, err := s.lifecycle.ScheduleMeeting(r.Context(), actorFrom(r), mux.Vars(r)["id"], at, repository.MeetingType(meetingRequest.Type))
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleRescheduleMeeting(w http.ResponseWriter, r *http.Request) {
	var meetingRequest struct {
		At string `json:"at"`
	}

	if err := json.NewDecoder(r.Body).Decode(&meetingRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	at, err := time.Parse(time.RFC3339, meetingRequest.At)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid meeting time. Use RFC3339")
		return
	}

	req, err := s.lifecycle.RescheduleMeeting(r.Context(), actorFrom(r), mux.Vars(r)["id"], at)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleConfirmMeeting(w http.ResponseWriter, r *http.Request) {
	req, err := s.lifecycle.ConfirmMeeting(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

func (s *Server) handleCompleteMeeting(w http.ResponseWriter, r *http.Request) {
	var completeRequest struct {
		Notes string `json:"notes"`
	}
	// Body is optional for completion.
	_ = json.NewDecoder(r.Body).Decode(&completeRequest)

	req, err := s.lifecycle.CompleteMeeting(r.Context(), actorFrom(r), mux.Vars(r)["id"], completeRequest.Notes)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRequestResponse(req))
}

type agreementResponse struct {
	ID          string                     `json:"id"`
	RequestID   string                     `json:"request_id"`
	Status      repository.AgreementStatus `json:"status"`
	DocumentRef string                     `json:"document_ref"`
	ContentHash string                     `json:"content_hash"`
	ExpiresAt   *time.Time                 `json:"expires_at,omitempty"`
	SignedAt    *time.Time                 `json:"signed_at,omitempty"`
}

func toAgreementResponse(agr *repository.Agreement) agreementResponse {
	return agreementResponse{
		ID:          agr.ID,
		RequestID:   agr.RequestID,
		Status:      agr.Status,
		DocumentRef: agr.DocumentRef,
		ContentHash: agr.ContentHash,
		ExpiresAt:   agr.ExpiresAt,
		SignedAt:    agr.SignedAt,
	}
}

func (s *Server) handleSendAgreement(w http.ResponseWriter, r *http.Request) {
	var sendRequest struct {
		Clauses []string `json:"clauses"`
	}
	_ = json.NewDecoder(r.Body).Decode(&sendRequest)

	agr, err := s.lifecycle.SendAgreement(r.Context(), actorFrom(r), mux.Vars(r)["id"], sendRequest.Clauses)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAgreementResponse(agr))
}

func (s *Server) handleSignAgreement(w http.ResponseWriter, r *http.Request) {
	var signRequest struct {
		Signature string `json:"signature"`
	}

	if err := json.NewDecoder(r.Body).Decode(&signRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if signRequest.Signature == "" {
		respondError(w, http.StatusBadRequest, "Missing signature")
		return
	}

	meta := repository.SignerMeta{SignedAt: time.Now().UTC(), Addr: r.RemoteAddr}
	agr, err := s.lifecycle.SignAgreement(r.Context(), actorFrom(r), mux.Vars(r)["id"], []byte(signRequest.Signature), meta)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAgreementResponse(agr))
}

type paymentResponse struct {
	ID           string                   `json:"id"`
	RequestID    string                   `json:"request_id"`
	Status       repository.PaymentStatus `json:"status"`
	Amount       int                      `json:"amount"`
	Currency     string                   `json:"currency"`
	ReceiptRef   *string                  `json:"receipt_ref,omitempty"`
	ClientSecret string                   `json:"client_secret,omitempty"`
}

func (s *Server) handleInitiatePayment(w http.ResponseWriter, r *http.Request) {
	payment, clientSecret, err := s.lifecycle.InitiatePayment(r.Context(), actorFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, paymentResponse{
		ID:           payment.ID,
		RequestID:    payment.RequestID,
		Status:       payment.Status,
		Amount:       payment.Amount,
		Currency:     payment.Currency,
		ClientSecret: clientSecret,
	})
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	payment, err := s.lifecycle.ConfirmPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, paymentResponse{
		ID:         payment.ID,
		RequestID:  payment.RequestID,
		Status:     payment.Status,
		Amount:     payment.Amount,
		Currency:   payment.Currency,
		ReceiptRef: payment.ReceiptRef,
	})
}
