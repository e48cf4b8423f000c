package repository

import (
	"errors"
	"time"
)

var (
	ErrObjectNotFound  = errors.New("not found")
	ErrVersionConflict = errors.New("version conflict")
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusOnHold    RequestStatus = "on_hold"
	StatusApproved  RequestStatus = "approved"
	StatusMeeting   RequestStatus = "meeting"
	StatusRejected  RequestStatus = "rejected"
	StatusIgnored   RequestStatus = "ignored"
	StatusFinalized RequestStatus = "finalized"
	StatusCancelled RequestStatus = "cancelled"
)

func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusRejected, StatusIgnored, StatusFinalized, StatusCancelled:
		return true
	}
	return false
}

type MeetingType string

const (
	MeetingVirtual  MeetingType = "virtual"
	MeetingInPerson MeetingType = "in_person"
)

type MeetingState string

const (
	MeetingScheduled MeetingState = "scheduled"
	MeetingConfirmed MeetingState = "confirmed"
	MeetingCompleted MeetingState = "completed"
	MeetingCancelled MeetingState = "cancelled"
)

type AnimalStatus string

const (
	AnimalAvailable   AnimalStatus = "available"
	AnimalFostered    AnimalStatus = "fostered"
	AnimalAdopted     AnimalStatus = "adopted"
	AnimalUnavailable AnimalStatus = "unavailable"
)

type AgreementStatus string

const (
	AgreementDraft     AgreementStatus = "draft"
	AgreementSent      AgreementStatus = "sent"
	AgreementSigned    AgreementStatus = "signed"
	AgreementExpired   AgreementStatus = "expired"
	AgreementCancelled AgreementStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "pending"
	PaymentProcessing PaymentStatus = "processing"
	PaymentCompleted  PaymentStatus = "completed"
	PaymentFailed     PaymentStatus = "failed"
)

type Role string

const (
	RoleAdopter Role = "adopter"
	RoleStaff   Role = "staff"
)

type AdoptionRequest struct {
	ID                   string        `db:"id"`
	AnimalID             string        `db:"animal_id"`
	AdopterID            string        `db:"adopter_id"`
	OrgID                string        `db:"org_id"`
	Status               RequestStatus `db:"status"`
	MeetingType          *MeetingType  `db:"meeting_type"`
	MeetingAt            *time.Time    `db:"meeting_at"`
	MeetingState         *MeetingState `db:"meeting_state"`
	MeetingConfirmedAt   *time.Time    `db:"meeting_confirmed_at"`
	MeetingNotes         *string       `db:"meeting_notes"`
	MeetingRescheduledBy *string       `db:"meeting_rescheduled_by"`
	Version              int           `db:"version"`
	CreatedAt            time.Time     `db:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at"`
}

type Animal struct {
	ID           string       `db:"id"`
	OrgID        string       `db:"org_id"`
	Name         string       `db:"name"`
	Species      string       `db:"species"`
	AgeMonths    int          `db:"age_months"`
	SpecialNeeds bool         `db:"special_needs"`
	Status       AnimalStatus `db:"status"`
	Version      int          `db:"version"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

type Agreement struct {
	ID                string          `db:"id"`
	RequestID         string          `db:"request_id"`
	Status            AgreementStatus `db:"status"`
	DocumentRef       string          `db:"document_ref"`
	ContentHash       string          `db:"content_hash"`
	ExpiresAt         *time.Time      `db:"expires_at"`
	SignedDocumentRef *string         `db:"signed_document_ref"`
	SignedAt          *time.Time      `db:"signed_at"`
	SignerAddr        *string         `db:"signer_addr"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// SignerMeta captures who signed an agreement, when, and from where.
type SignerMeta struct {
	SignedAt time.Time
	Addr     string
}

type Payment struct {
	ID         string        `db:"id"`
	RequestID  string        `db:"request_id"`
	Status     PaymentStatus `db:"status"`
	Amount     int           `db:"amount"`
	Currency   string        `db:"currency"`
	IntentID   string        `db:"intent_id"`
	ReceiptRef *string       `db:"receipt_ref"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type Conversation struct {
	ID        string    `db:"id"`
	RequestID string    `db:"request_id"`
	CreatedAt time.Time `db:"created_at"`
}

type HistoryEntry struct {
	ID        int64         `db:"id"`
	RequestID string        `db:"request_id"`
	Status    RequestStatus `db:"status"`
	ChangedAt time.Time     `db:"changed_at"`
}

type User struct {
	ID       string `db:"id"`
	Username string `db:"username"`
	Password string `db:"password"`
	Role     Role   `db:"role"`
	OrgID    string `db:"org_id"`
}
