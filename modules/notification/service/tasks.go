package service

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"wedding-rsvp/core/constants"
)

// EmailConfirmationPayload carries the stored record's fields into the
// background worker so the handler never touches the database.
type EmailConfirmationPayload struct {
	RSVPID         int64    `json:"rsvp_id"`
	Reference      string   `json:"reference"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	IsAttending    bool     `json:"is_attending"`
	NumberOfGuests int      `json:"number_of_guests"`
	GuestNames     []string `json:"guest_names,omitempty"`
	Dietary        *string  `json:"dietary,omitempty"`
	SongRequests   *string  `json:"song_requests,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

func NewEmailConfirmationTask(payload EmailConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(constants.TaskEmailConfirmation, data, asynq.MaxRetry(3)), nil
}
