package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wedding-rsvp/core/config"
	"wedding-rsvp/core/constants"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/modules/notification/mailer"
	"wedding-rsvp/modules/rsvp/entity"

	"github.com/hibiken/asynq"
)

// TaskEnqueuer is the slice of the queue the service needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) error
}

// ConfirmationServiceInterface lets the submission pipeline enqueue a
// confirmation without knowing about asynq.
type ConfirmationServiceInterface interface {
	EnqueueConfirmation(ctx context.Context, rsvp *entity.RSVP, reference string) error
}

type NotificationService struct {
	queue  TaskEnqueuer
	mailer mailer.Mailer
}

func NewNotificationService(queue TaskEnqueuer, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		queue:  queue,
		mailer: m,
	}
}

// EnqueueConfirmation hands the stored record to the background worker. The
// RSVP is already durable at this point; the caller treats any error here as
// log-only.
func (s *NotificationService) EnqueueConfirmation(ctx context.Context, rsvp *entity.RSVP, reference string) error {
	task, err := NewEmailConfirmationTask(EmailConfirmationPayload{
		RSVPID:         rsvp.ID,
		Reference:      reference,
		Name:           rsvp.Name,
		Email:          rsvp.Email,
		IsAttending:    rsvp.IsAttending,
		NumberOfGuests: rsvp.NumberOfGuests,
		GuestNames:     rsvp.GuestNames,
		Dietary:        rsvp.DietaryRestrictions,
		SongRequests:   rsvp.SongRequests,
		Notes:          rsvp.Notes,
	})
	if err != nil {
		return err
	}
	return s.queue.Enqueue(task)
}

// HandleEmailConfirmationTask is the asynq handler for queued confirmations.
// A failure here never reaches the guest; the RSVP is already stored and
// delivery is best-effort.
func (s *NotificationService) HandleEmailConfirmationTask(ctx context.Context, t *asynq.Task) error {
	var payload EmailConfirmationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("NotificationService:HandleEmailConfirmationTask:Unmarshal:Error", "error", err)
		return fmt.Errorf("unmarshal confirmation payload: %v: %w", err, asynq.SkipRetry)
	}

	subject, body := ComposeConfirmation(payload)

	sendCtx, cancel := context.WithTimeout(ctx, constants.EmailSendTimeout)
	defer cancel()

	if err := s.mailer.Send(sendCtx, payload.Email, subject, body); err != nil {
		logger.Error("NotificationService:HandleEmailConfirmationTask:Send:Error",
			"rsvp_id", payload.RSVPID, "error", err)
		return err
	}

	logger.Info("NotificationService:HandleEmailConfirmationTask:Sent",
		"rsvp_id", payload.RSVPID, "reference", payload.Reference)
	return nil
}

// ComposeConfirmation renders the confirmation email from the stored record
// and the wedding details in config.
func ComposeConfirmation(p EmailConfirmationPayload) (subject, body string) {
	couple := "the happy couple"
	date := ""
	location := ""
	if cfg, ok := config.GetSafe(); ok {
		couple = cfg.CoupleNames
		date = cfg.WeddingDate
		location = cfg.WeddingLocation
	}

	subject = fmt.Sprintf("RSVP received — %s", couple)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", p.Name)
	if p.IsAttending {
		b.WriteString("Thank you for your RSVP — we are delighted you can make it!\n\n")
		if date != "" {
			fmt.Fprintf(&b, "When: %s\n", date)
		}
		if location != "" {
			fmt.Fprintf(&b, "Where: %s\n", location)
		}
		fmt.Fprintf(&b, "Additional guests: %d\n", p.NumberOfGuests)
		if len(p.GuestNames) > 0 {
			fmt.Fprintf(&b, "Guest names: %s\n", strings.Join(p.GuestNames, ", "))
		}
		if p.Dietary != nil {
			fmt.Fprintf(&b, "Dietary restrictions: %s\n", *p.Dietary)
		}
		if p.SongRequests != nil {
			fmt.Fprintf(&b, "Song requests: %s\n", *p.SongRequests)
		}
	} else {
		b.WriteString("Thank you for letting us know. We are sorry you cannot make it — you will be missed!\n")
	}
	if p.Notes != nil {
		fmt.Fprintf(&b, "Your note: %s\n", *p.Notes)
	}
	if p.Reference != "" {
		fmt.Fprintf(&b, "\nConfirmation reference: %s\n", p.Reference)
	}
	fmt.Fprintf(&b, "\nWith love,\n%s\n", couple)

	return subject, b.String()
}
