package dto

import (
	"time"

	coreentity "wedding-rsvp/core/entity"
	"wedding-rsvp/modules/rsvp/entity"
)

type SubmitRSVPResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference,omitempty"`
}

type CheckEmailRequest struct {
	Email string `json:"email"`
}

type CheckEmailResponse struct {
	Available bool `json:"available"`
}

type RSVPResponse struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	IsAttending         bool       `json:"is_attending"`
	NumberOfGuests      int        `json:"number_of_guests"`
	GuestNames          []string   `json:"guest_names,omitempty"`
	DietaryRestrictions *string    `json:"dietary_restrictions,omitempty"`
	SongRequests        *string    `json:"song_requests,omitempty"`
	Notes               *string    `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// UpdateRSVPRequest carries the admin's partial update; nil means untouched.
type UpdateRSVPRequest struct {
	Name                *string   `json:"name,omitempty"`
	Email               *string   `json:"email,omitempty"`
	IsAttending         *bool     `json:"is_attending,omitempty"`
	NumberOfGuests      *int      `json:"number_of_guests,omitempty"`
	GuestNames          *[]string `json:"guest_names,omitempty"`
	DietaryRestrictions *string   `json:"dietary_restrictions,omitempty"`
	SongRequests        *string   `json:"song_requests,omitempty"`
	Notes               *string   `json:"notes,omitempty"`
}

func (r *UpdateRSVPRequest) Empty() bool {
	return r.Name == nil && r.Email == nil && r.IsAttending == nil &&
		r.NumberOfGuests == nil && r.GuestNames == nil &&
		r.DietaryRestrictions == nil && r.SongRequests == nil && r.Notes == nil
}

type StatsResponse struct {
	Total             int `json:"total"`
	AttendingCount    int `json:"attending_count"`
	NotAttendingCount int `json:"not_attending_count"`
	TotalGuests       int `json:"total_guests"`
}

type DashboardResponse struct {
	RSVPs coreentity.Pagination[RSVPResponse] `json:"rsvps"`
	Stats StatsResponse                       `json:"stats"`
}

func FromEntity(e *entity.RSVP) RSVPResponse {
	return RSVPResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Email:               e.Email,
		IsAttending:         e.IsAttending,
		NumberOfGuests:      e.NumberOfGuests,
		GuestNames:          e.GuestNames,
		DietaryRestrictions: e.DietaryRestrictions,
		SongRequests:        e.SongRequests,
		Notes:               e.Notes,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}
