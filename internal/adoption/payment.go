package adoption

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/metrics"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// InitiatePayment creates the gateway intent for the adoption fee. Requires
// a signed agreement. A failed payment may be re-initiated; anything else
// already in flight may not.
func (o *Orchestrator) InitiatePayment(ctx context.Context, actor Actor, requestID string) (*repository.Payment, string, error) {
	req, err := o.loadForAdopter(ctx, actor, requestID)
	if err != nil {
		return nil, "", err
	}

	// The payment row is 1:1 with the request; the check-then-create below
	// must not interleave with another initiation for the same animal.
	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	if req.Status.Terminal() {
		return nil, "", newError(KindInvalidTransition, "request is already %s", req.Status)
	}

	agr, err := o.agreements.GetByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, "", newError(KindInvalidTransition, "no agreement exists for request %s", requestID)
		}
		return nil, "", wrapError(KindDownstreamFailure, err, "loading agreement")
	}
	if agr.Status != repository.AgreementSigned {
		return nil, "", newError(KindInvalidTransition, "agreement is %s, payment requires a signed agreement", agr.Status)
	}

	existing, err := o.payments.GetByRequestID(ctx, requestID)
	if err != nil && !errors.Is(err, repository.ErrObjectNotFound) {
		return nil, "", wrapError(KindDownstreamFailure, err, "loading payment")
	}
	if existing != nil && existing.Status != repository.PaymentFailed {
		return nil, "", newError(KindInvalidTransition, "payment for request %s is already %s", requestID, existing.Status)
	}

	animal, err := o.loadAnimal(ctx, req.AnimalID)
	if err != nil {
		return nil, "", err
	}
	amount := AdoptionFee(animal)

	intentID, clientSecret, err := o.gateway.CreateIntent(ctx, amount, FeeCurrency, map[string]string{
		"request_id": req.ID,
		"animal_id":  req.AnimalID,
	})
	if err != nil {
		return nil, "", wrapError(KindDownstreamFailure, err, "creating payment intent")
	}

	now := time.Now().UTC()
	if existing != nil {
		existing.Status = repository.PaymentPending
		existing.Amount = amount
		existing.Currency = FeeCurrency
		existing.IntentID = intentID
		existing.ReceiptRef = nil
		existing.UpdatedAt = now
		if err := o.payments.Update(ctx, existing); err != nil {
			return nil, "", wrapError(KindDownstreamFailure, err, "updating payment")
		}
		return existing, clientSecret, nil
	}

	payment := &repository.Payment{
		ID:        newID(),
		RequestID: req.ID,
		Status:    repository.PaymentPending,
		Amount:    amount,
		Currency:  FeeCurrency,
		IntentID:  intentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.payments.Create(ctx, payment); err != nil {
		return nil, "", wrapError(KindDownstreamFailure, err, "creating payment")
	}
	return payment, clientSecret, nil
}

// ConfirmPayment asks the gateway whether the intent settled and, on
// success, finalizes the adoption. Idempotent: confirming an already
// completed payment returns it unchanged and triggers no side effects.
func (o *Orchestrator) ConfirmPayment(ctx context.Context, paymentID string) (*repository.Payment, error) {
	payment, err := o.payments.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, newError(KindNotFound, "payment %s not found", paymentID)
		}
		return nil, wrapError(KindDownstreamFailure, err, "loading payment %s", paymentID)
	}

	req, err := o.load(ctx, payment.RequestID)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	// Re-read under the lock: a concurrent confirmation may have won.
	payment, err = o.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "reloading payment %s", paymentID)
	}
	if payment.Status == repository.PaymentCompleted {
		return payment, nil
	}
	if payment.Status != repository.PaymentPending && payment.Status != repository.PaymentProcessing {
		return nil, newError(KindInvalidTransition, "payment is %s, cannot confirm", payment.Status)
	}

	payment.Status = repository.PaymentProcessing
	payment.UpdatedAt = time.Now().UTC()
	if err := o.payments.Update(ctx, payment); err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "updating payment %s", paymentID)
	}

	success, receiptRef, err := o.gateway.Confirm(ctx, payment.IntentID)
	if err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "confirming payment intent %s", payment.IntentID)
	}

	if !success {
		// The request keeps its pre-payment status so the adopter can retry.
		payment.Status = repository.PaymentFailed
		payment.UpdatedAt = time.Now().UTC()
		if err := o.payments.Update(ctx, payment); err != nil {
			return nil, wrapError(KindDownstreamFailure, err, "recording payment failure")
		}
		metrics.PaymentsFailedTotal.Inc()
		o.notifyAdopter(ctx, req, "payment_failed", "Your adoption payment failed, please try again", true, nil)
		return payment, nil
	}

	payment.Status = repository.PaymentCompleted
	payment.ReceiptRef = &receiptRef
	payment.UpdatedAt = time.Now().UTC()
	if err := o.payments.Update(ctx, payment); err != nil {
		return nil, wrapError(KindDownstreamFailure, err, "recording payment completion")
	}

	if err := o.finalize(ctx, req); err != nil {
		return nil, err
	}

	return payment, nil
}

// finalize is the terminal, payment-gated transition. Caller holds the
// animal lock.
func (o *Orchestrator) finalize(ctx context.Context, req *repository.AdoptionRequest) error {
	err := o.withVersionRetry(ctx, &req, func() error {
		if req.Status == repository.StatusFinalized {
			return nil
		}
		if !canTransition(req.Status, repository.StatusFinalized) {
			return newError(KindInvalidTransition, "cannot finalize request in status %s", req.Status)
		}
		req.Status = repository.StatusFinalized
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return err
	}
	o.appendHistory(ctx, req)
	metrics.AdoptionsFinalizedTotal.Inc()

	o.markAnimalAdopted(ctx, req)
	o.forEachSibling(ctx, req, repository.StatusRejected, "request_rejected", "The animal was adopted by another applicant")

	o.notifyAdopter(ctx, req, "adoption_finalized", "Congratulations, the adoption is complete!", true, nil)
	o.notifyStaff(ctx, req, "adoption_finalized", "Adoption finalized")

	if o.audit != nil {
		go func() {
			auditCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := o.audit.RecordAdoption(auditCtx, req.ID, req.AnimalID, req.AdopterID); err != nil {
				o.logger.Warn("audit trail record failed", zap.String("request_id", req.ID), zap.Error(err))
			}
		}()
	}

	return nil
}

func (o *Orchestrator) markAnimalAdopted(ctx context.Context, req *repository.AdoptionRequest) {
	for attempt := 0; attempt < maxVersionRetries; attempt++ {
		animal, err := o.animals.GetByID(ctx, req.AnimalID)
		if err != nil {
			metrics.SideEffectErrorsTotal.WithLabelValues("animal").Inc()
			o.logger.Error("animal reload failed", zap.String("animal_id", req.AnimalID), zap.Error(err))
			return
		}
		animal.Status = repository.AnimalAdopted
		err = o.animals.Update(ctx, animal)
		if err == nil {
			if o.cache != nil {
				o.cache.Set(animal)
			}
			return
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			metrics.SideEffectErrorsTotal.WithLabelValues("animal").Inc()
			o.logger.Error("animal status update failed", zap.String("animal_id", req.AnimalID), zap.Error(err))
			return
		}
	}
	metrics.SideEffectErrorsTotal.WithLabelValues("animal").Inc()
	o.logger.Error("animal status update kept conflicting", zap.String("animal_id", req.AnimalID))
}
