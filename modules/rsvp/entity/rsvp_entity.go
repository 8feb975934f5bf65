package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// GuestNames is stored as a JSONB array, or NULL when the party brings nobody.
type GuestNames []string

func (g GuestNames) Value() (driver.Value, error) {
	if len(g) == 0 {
		return nil, nil
	}
	return json.Marshal(g)
}

func (g *GuestNames) Scan(value interface{}) error {
	if value == nil {
		*g = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, g)
}

type RSVP struct {
	ID                  int64      `db:"id" json:"id"`
	Name                string     `db:"name" json:"name"`
	Email               string     `db:"email" json:"email"`
	IsAttending         bool       `db:"is_attending" json:"is_attending"`
	NumberOfGuests      int        `db:"number_of_guests" json:"number_of_guests"`
	GuestNames          GuestNames `db:"guest_names" json:"guest_names,omitempty"`
	DietaryRestrictions *string    `db:"dietary_restrictions" json:"dietary_restrictions,omitempty"`
	SongRequests        *string    `db:"song_requests" json:"song_requests,omitempty"`
	Notes               *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// Stats are recomputed from the full record set on demand, never cached.
type Stats struct {
	Total             int `db:"total" json:"total"`
	AttendingCount    int `db:"attending_count" json:"attending_count"`
	NotAttendingCount int `db:"not_attending_count" json:"not_attending_count"`
	TotalGuests       int `db:"total_guests" json:"total_guests"`
}
