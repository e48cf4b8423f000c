package adoption

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/metrics"
	"github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"
)

// ScheduleMeeting moves an approved request into the meeting stage.
func (o *Orchestrator) ScheduleMeeting(ctx context.Context, actor Actor, requestID string, at time.Time, meetingType repository.MeetingType) (*repository.AdoptionRequest, error) {
	req, err := o.loadForStaff(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if meetingType != repository.MeetingVirtual && meetingType != repository.MeetingInPerson {
		meetingType = repository.MeetingInPerson
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if !canTransition(req.Status, repository.StatusMeeting) {
			return newError(KindInvalidTransition, "cannot schedule a meeting for request in status %s", req.Status)
		}
		state := repository.MeetingScheduled
		atUTC := at.UTC()
		req.Status = repository.StatusMeeting
		req.MeetingType = &meetingType
		req.MeetingAt = &atUTC
		req.MeetingState = &state
		req.MeetingConfirmedAt = nil
		req.MeetingRescheduledBy = nil
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	o.appendHistory(ctx, req)
	metrics.MeetingsScheduledTotal.Inc()

	o.notifyAdopter(ctx, req, "meeting_scheduled", "A meeting was scheduled for your adoption request", false, nil)

	return req, nil
}

// ConfirmMeeting records the adopter's confirmation and attaches the
// preparation checklist to the notification payload. The checklist is
// derived, never stored.
func (o *Orchestrator) ConfirmMeeting(ctx context.Context, actor Actor, requestID string) (*repository.AdoptionRequest, error) {
	req, err := o.loadForAdopter(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if req.Status != repository.StatusMeeting || req.MeetingState == nil {
			return newError(KindInvalidTransition, "request %s has no meeting to confirm", req.ID)
		}
		if *req.MeetingState != repository.MeetingScheduled {
			return newError(KindInvalidTransition, "meeting is %s, only a scheduled meeting can be confirmed", *req.MeetingState)
		}
		state := repository.MeetingConfirmed
		now := time.Now().UTC()
		req.MeetingState = &state
		req.MeetingConfirmedAt = &now
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	var prep *Preparation
	if animal, aerr := o.loadAnimal(ctx, req.AnimalID); aerr == nil {
		p := PrepareMeeting(*req.MeetingType, animal)
		prep = &p
	} else {
		o.logger.Warn("animal lookup for preparation failed", zap.String("animal_id", req.AnimalID), zap.Error(aerr))
	}

	o.notifyAdopter(ctx, req, "meeting_confirmed", "Meeting confirmed", false, prep)
	o.notifyStaff(ctx, req, "meeting_confirmed", "The adopter confirmed the meeting")

	return req, nil
}

// CompleteMeeting marks the meeting as held. Required before an agreement
// may be sent.
func (o *Orchestrator) CompleteMeeting(ctx context.Context, actor Actor, requestID string, notes string) (*repository.AdoptionRequest, error) {
	req, err := o.loadForStaff(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if req.Status != repository.StatusMeeting || req.MeetingState == nil {
			return newError(KindInvalidTransition, "request %s has no meeting to complete", req.ID)
		}
		switch *req.MeetingState {
		case repository.MeetingScheduled, repository.MeetingConfirmed:
		default:
			return newError(KindInvalidTransition, "meeting is already %s", *req.MeetingState)
		}
		state := repository.MeetingCompleted
		req.MeetingState = &state
		if notes != "" {
			req.MeetingNotes = &notes
		}
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return req, nil
}

// RescheduleMeeting moves the meeting and resets the adopter's confirmation.
// Either side may reschedule; who did is recorded.
func (o *Orchestrator) RescheduleMeeting(ctx context.Context, actor Actor, requestID string, at time.Time) (*repository.AdoptionRequest, error) {
	req, err := o.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := o.authorize(actor, req); err != nil {
		return nil, err
	}

	unlock := o.locks.lock(req.AnimalID)
	defer unlock()

	err = o.withVersionRetry(ctx, &req, func() error {
		if req.Status != repository.StatusMeeting || req.MeetingState == nil {
			return newError(KindInvalidTransition, "request %s has no meeting to reschedule", req.ID)
		}
		switch *req.MeetingState {
		case repository.MeetingScheduled, repository.MeetingConfirmed:
		default:
			return newError(KindInvalidTransition, "cannot reschedule a meeting that is %s", *req.MeetingState)
		}
		state := repository.MeetingScheduled
		atUTC := at.UTC()
		rescheduledBy := actor.ID
		req.MeetingAt = &atUTC
		req.MeetingState = &state
		req.MeetingConfirmedAt = nil
		req.MeetingRescheduledBy = &rescheduledBy
		return o.requests.Update(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	o.logger.Info("meeting rescheduled",
		zap.String("request_id", req.ID), zap.String("by", actor.ID), zap.Time("at", at))

	o.notifyAdopter(ctx, req, "meeting_rescheduled", "The meeting was rescheduled", false, nil)
	o.notifyStaff(ctx, req, "meeting_rescheduled", "The meeting was rescheduled")

	return req, nil
}

// SendAgreement renders the contract and sends it to the adopter with a
// seven-day signing window. The request status is unchanged; the agreement's
// own lifecycle gates what follows.
func (o *Orchestrator) SendAgreement(ctx context.Context, actor Actor, requestID string, clauses []string) (*repository.Agreement, error) {
	req, err := o.loadForStaff(ctx, actor, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != repository.StatusMeeting || req.MeetingState == nil || *req.MeetingState != repository.MeetingCompleted {
		return nil, newError(KindInvalidTransition, "agreement requires a completed meeting")
	}

	animal, err := o.loadAnimal(ctx, req.AnimalID)
	if err != nil {
		return nil, err
	}

	agr, err := o.agreements.Send(ctx, req, animal, time.Now().UTC().Add(7*24*time.Hour), clauses)
	if err != nil {
		var tagged *Error
		if errors.As(err, &tagged) {
			return nil, err
		}
		return nil, wrapError(KindDownstreamFailure, err, "sending agreement")
	}

	o.notifyAdopter(ctx, req, "agreement_sent", "Your adoption agreement is ready to sign", true, nil)

	return agr, nil
}

// SignAgreement records the adopter's signature. Only the request's own
// adopter may sign; expiry and repeat-signature rules are the agreement
// service's.
func (o *Orchestrator) SignAgreement(ctx context.Context, actor Actor, agreementID string, signature []byte, meta repository.SignerMeta) (*repository.Agreement, error) {
	agr, err := o.agreements.GetByID(ctx, agreementID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, newError(KindNotFound, "agreement %s not found", agreementID)
		}
		return nil, wrapError(KindDownstreamFailure, err, "loading agreement %s", agreementID)
	}

	if _, err := o.loadForAdopter(ctx, actor, agr.RequestID); err != nil {
		return nil, err
	}

	return o.agreements.Sign(ctx, agreementID, signature, meta)
}
