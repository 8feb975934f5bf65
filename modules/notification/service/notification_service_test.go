package service

import (
	"context"
	"errors"
	"testing"

	"wedding-rsvp/core/constants"
	"wedding-rsvp/modules/rsvp/entity"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeQueue) Enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if f.err != nil {
		return f.err
	}
	f.tasks = append(f.tasks, task)
	return nil
}

type fakeMailer struct {
	to      []string
	subject string
	body    string
	err     error
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.subject = subject
	f.body = body
	return nil
}

func sampleRSVP() *entity.RSVP {
	dietary := "vegetarian"
	return &entity.RSVP{
		ID:                  42,
		Name:                "Jane Smith",
		Email:               "jane@example.com",
		IsAttending:         true,
		NumberOfGuests:      2,
		GuestNames:          entity.GuestNames{"Anna Lee", "Ben Cole"},
		DietaryRestrictions: &dietary,
	}
}

func TestEnqueueConfirmation_BuildsTask(t *testing.T) {
	q := &fakeQueue{}
	svc := NewNotificationService(q, &fakeMailer{})

	err := svc.EnqueueConfirmation(context.Background(), sampleRSVP(), "ABC123XY")

	require.NoError(t, err)
	require.Len(t, q.tasks, 1)
	assert.Equal(t, constants.TaskEmailConfirmation, q.tasks[0].Type())
}

func TestEnqueueConfirmation_QueueErrorPropagates(t *testing.T) {
	q := &fakeQueue{err: errors.New("redis down")}
	svc := NewNotificationService(q, &fakeMailer{})

	err := svc.EnqueueConfirmation(context.Background(), sampleRSVP(), "ABC123XY")
	assert.Error(t, err)
}

func TestHandleEmailConfirmationTask_SendsComposedMail(t *testing.T) {
	m := &fakeMailer{}
	svc := NewNotificationService(&fakeQueue{}, m)

	task, err := NewEmailConfirmationTask(EmailConfirmationPayload{
		RSVPID:         42,
		Reference:      "ABC123XY",
		Name:           "Jane Smith",
		Email:          "jane@example.com",
		IsAttending:    true,
		NumberOfGuests: 2,
		GuestNames:     []string{"Anna Lee", "Ben Cole"},
	})
	require.NoError(t, err)

	err = svc.HandleEmailConfirmationTask(context.Background(), task)

	require.NoError(t, err)
	require.Equal(t, []string{"jane@example.com"}, m.to)
	assert.Contains(t, m.body, "Jane Smith")
	assert.Contains(t, m.body, "Anna Lee, Ben Cole")
	assert.Contains(t, m.body, "ABC123XY")
}

func TestHandleEmailConfirmationTask_MalformedPayloadSkipsRetry(t *testing.T) {
	svc := NewNotificationService(&fakeQueue{}, &fakeMailer{})

	task := asynq.NewTask(constants.TaskEmailConfirmation, []byte("{broken"))
	err := svc.HandleEmailConfirmationTask(context.Background(), task)

	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestComposeConfirmation_Attending(t *testing.T) {
	subject, body := ComposeConfirmation(EmailConfirmationPayload{
		Name:           "Jane Smith",
		IsAttending:    true,
		NumberOfGuests: 1,
		GuestNames:     []string{"Tom Smith"},
		Reference:      "ABC123XY",
	})

	assert.Contains(t, subject, "RSVP received")
	assert.Contains(t, body, "Dear Jane Smith")
	assert.Contains(t, body, "delighted you can make it")
	assert.Contains(t, body, "Additional guests: 1")
	assert.Contains(t, body, "Tom Smith")
	assert.Contains(t, body, "ABC123XY")
}

func TestComposeConfirmation_Declining(t *testing.T) {
	note := "congratulations anyway"
	_, body := ComposeConfirmation(EmailConfirmationPayload{
		Name:        "Bob Jones",
		IsAttending: false,
		Notes:       &note,
	})

	assert.Contains(t, body, "sorry you cannot make it")
	assert.Contains(t, body, note)
	assert.NotContains(t, body, "Additional guests")
}
