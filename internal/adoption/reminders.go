package adoption

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunMeetingReminders periodically nudges adopters about meetings starting
// within the next 24 hours. Best effort and off the critical path: errors
// are logged and the next tick tries again.
func (o *Orchestrator) RunMeetingReminders(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			o.sendMeetingReminders(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (o *Orchestrator) sendMeetingReminders(ctx context.Context) {
	until := time.Now().UTC().Add(24 * time.Hour)
	reqs, err := o.requests.GetUpcomingMeetings(ctx, until)
	if err != nil {
		o.logger.Warn("meeting reminder scan failed", zap.Error(err))
		return
	}

	for _, req := range reqs {
		if req.MeetingAt == nil || req.MeetingAt.Before(time.Now().UTC()) {
			continue
		}
		o.notifyAdopter(ctx, req, "meeting_reminder",
			"Reminder: your adoption meeting is at "+req.MeetingAt.Format(time.RFC3339), false, nil)
	}
}
