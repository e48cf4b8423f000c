package agreement

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/adoption"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

type Repository interface {
	Create(ctx context.Context, agr *repository.Agreement) error
	GetByID(ctx context.Context, id string) (*repository.Agreement, error)
	GetByRequestID(ctx context.Context, requestID string) (*repository.Agreement, error)
	Update(ctx context.Context, agr *repository.Agreement) error
}

// DocumentStore persists rendered and signed agreement documents.
type DocumentStore interface {
	Save(ctx context.Context, ref string, data []byte) error
	Load(ctx context.Context, ref string) ([]byte, error)
}

type Service struct {
	repo   Repository
	docs   DocumentStore
	logger *zap.Logger
}

func NewService(repo Repository, docs DocumentStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, docs: docs, logger: logger}
}

// Render produces the contract document for a request snapshot.
// Deterministic: the same snapshot and clauses always yield identical bytes,
// so the content hash is stable across renders.
func Render(req *repository.AdoptionRequest, animal *repository.Animal, fee int, clauses []string) []byte {
	var b strings.Builder
	b.WriteString("ADOPTION AGREEMENT\n")
	b.WriteString("==================\n\n")
	fmt.Fprintf(&b, "Request:      %s\n", req.ID)
	fmt.Fprintf(&b, "Adopter:      %s\n", req.AdopterID)
	fmt.Fprintf(&b, "Organization: %s\n", req.OrgID)
	fmt.Fprintf(&b, "Animal:       %s (%s, %s, %d months)\n", animal.ID, animal.Name, animal.Species, animal.AgeMonths)
	fmt.Fprintf(&b, "Adoption fee: %d %s\n\n", fee, adoption.FeeCurrency)
	b.WriteString("TERMS\n")
	b.WriteString("1. The adopter agrees to provide humane care, food, water and shelter.\n")
	b.WriteString("2. The adopter agrees to provide veterinary care as needed.\n")
	b.WriteString("3. The animal may not be sold or transferred without the organization's consent.\n")
	b.WriteString("4. The organization may follow up on the animal's welfare after adoption.\n")
	if animal.SpecialNeeds {
		b.WriteString("5. The adopter acknowledges the animal's documented special needs and agrees to the related care plan.\n")
	}
	for i, clause := range clauses {
		fmt.Fprintf(&b, "%d. %s\n", i+100, clause)
	}
	return []byte(b.String())
}

// ContentHash is the integrity hash over the pre-signature document bytes.
func ContentHash(doc []byte) string {
	sum := sha256.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

// Send renders the contract, persists it and marks the agreement sent with
// the given expiry. A request may only have one live agreement; an expired
// or cancelled one can be replaced.
func (s *Service) Send(ctx context.Context, req *repository.AdoptionRequest, animal *repository.Animal, expiresAt time.Time, clauses []string) (*repository.Agreement, error) {
	existing, err := s.repo.GetByRequestID(ctx, req.ID)
	if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, fmt.Errorf("failed to check existing agreement: %w", err)
	}
	if existing != nil {
		switch existing.Status {
		case repository.AgreementSent, repository.AgreementSigned:
			return nil, &adoption.Error{
				Kind: adoption.KindInvalidTransition,
				Msg:  fmt.Sprintf("request %s already has a %s agreement", req.ID, existing.Status),
			}
		}
	}

	doc := Render(req, animal, adoption.AdoptionFee(animal), clauses)

	agr := &repository.Agreement{
		ID:        uuid.NewString(),
		RequestID: req.ID,
		Status:    repository.AgreementSent,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	agr.DocumentRef = fmt.Sprintf("agreements/%s.txt", agr.ID)
	agr.ContentHash = ContentHash(doc)
	expiry := expiresAt.UTC()
	agr.ExpiresAt = &expiry

	if err := s.docs.Save(ctx, agr.DocumentRef, doc); err != nil {
		return nil, fmt.Errorf("failed to store agreement document: %w", err)
	}
	if err := s.repo.Create(ctx, agr); err != nil {
		return nil, fmt.Errorf("failed to create agreement: %w", err)
	}

	s.logger.Info("agreement sent",
		zap.String("agreement_id", agr.ID), zap.String("request_id", req.ID), zap.Time("expires_at", expiry))

	return agr, nil
}

// Sign accepts the adopter's signature. A late signature flips the agreement
// to expired regardless of whether the orchestrator is reachable; a repeat
// signature fails.
func (s *Service) Sign(ctx context.Context, agreementID string, signature []byte, meta repository.SignerMeta) (*repository.Agreement, error) {
	agr, err := s.repo.GetByID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, &adoption.Error{Kind: adoption.KindNotFound, Msg: fmt.Sprintf("agreement %s not found", agreementID)}
		}
		return nil, fmt.Errorf("failed to load agreement: %w", err)
	}

	if agr.Status != repository.AgreementSent {
		return nil, &adoption.Error{
			Kind: adoption.KindInvalidTransition,
			Msg:  fmt.Sprintf("agreement is %s, only a sent agreement can be signed", agr.Status),
		}
	}

	if agr.ExpiresAt != nil && time.Now().UTC().After(*agr.ExpiresAt) {
		agr.Status = repository.AgreementExpired
		if uerr := s.repo.Update(ctx, agr); uerr != nil {
			s.logger.Error("failed to mark agreement expired", zap.String("agreement_id", agr.ID), zap.Error(uerr))
		}
		return nil, &adoption.Error{
			Kind: adoption.KindExpiredResource,
			Msg:  fmt.Sprintf("agreement %s expired at %s", agr.ID, agr.ExpiresAt.Format(time.RFC3339)),
		}
	}

	doc, err := s.docs.Load(ctx, agr.DocumentRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load agreement document: %w", err)
	}
	if ContentHash(doc) != agr.ContentHash {
		return nil, fmt.Errorf("agreement %s document no longer matches its content hash", agr.ID)
	}

	signedAt := meta.SignedAt.UTC()
	if signedAt.IsZero() {
		signedAt = time.Now().UTC()
	}

	signed := make([]byte, 0, len(doc)+len(signature)+128)
	signed = append(signed, doc...)
	signed = append(signed, []byte("\n--- SIGNATURE ---\n")...)
	signed = append(signed, signature...)
	signed = append(signed, []byte(fmt.Sprintf("\nSigned at %s from %s\n", signedAt.Format(time.RFC3339), meta.Addr))...)

	signedRef := fmt.Sprintf("agreements/%s.signed.txt", agr.ID)
	if err := s.docs.Save(ctx, signedRef, signed); err != nil {
		return nil, fmt.Errorf("failed to store signed document: %w", err)
	}

	agr.Status = repository.AgreementSigned
	agr.SignedDocumentRef = &signedRef
	agr.SignedAt = &signedAt
	agr.SignerAddr = &meta.Addr
	if err := s.repo.Update(ctx, agr); err != nil {
		return nil, fmt.Errorf("failed to update agreement: %w", err)
	}

	s.logger.Info("agreement signed",
		zap.String("agreement_id", agr.ID), zap.String("request_id", agr.RequestID), zap.String("signer_addr", meta.Addr))

	return agr, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*repository.Agreement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByRequestID(ctx context.Context, requestID string) (*repository.Agreement, error) {
	return s.repo.GetByRequestID(ctx, requestID)
}
