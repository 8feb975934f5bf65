package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wedding-rsvp/core/constants"
	"wedding-rsvp/core/database"
	apperrors "wedding-rsvp/core/errors"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/modules/rsvp/dto"
	"wedding-rsvp/modules/rsvp/entity"
	"wedding-rsvp/modules/rsvp/validator"

	"github.com/lib/pq"
)

type RSVPRepositoryInterface interface {
	Create(ctx context.Context, rsvp *entity.RSVP) error
	GetByEmail(ctx context.Context, email string) (*entity.RSVP, error)
	GetByID(ctx context.Context, id int64) (*entity.RSVP, error)
	GetAll(ctx context.Context) ([]entity.RSVP, error)
	Update(ctx context.Context, id int64, req *dto.UpdateRSVPRequest) (*entity.RSVP, error)
	Delete(ctx context.Context, id int64) (*entity.RSVP, error)
	GetStats(ctx context.Context) (*entity.Stats, error)
}

type RSVPRepository struct {
	db database.IDatabase
}

func NewRSVPRepository(db database.IDatabase) *RSVPRepository {
	return &RSVPRepository{db: db}
}

const pqUniqueViolation = "23505"

// Create inserts a validated RSVP. Guest-name consistency is re-checked here
// as defense in depth; the validator should already have guaranteed it.
func (r *RSVPRepository) Create(ctx context.Context, rsvp *entity.RSVP) error {
	if err := checkGuestConsistency(rsvp.IsAttending, rsvp.NumberOfGuests, rsvp.GuestNames); err != nil {
		logger.Error("RSVPRepository:Create:Consistency:Error:", "error", err)
		return err
	}

	query := `
		INSERT INTO rsvps (name, email, is_attending, number_of_guests, guest_names,
			dietary_restrictions, song_requests, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	now := time.Now()
	rsvp.CreatedAt = now
	rsvp.UpdatedAt = now

	guestNamesValue, err := rsvp.GuestNames.Value()
	if err != nil {
		logger.Error("RSVPRepository:Create:GuestNamesValue:Error:", "error", err)
		return err
	}

	row := r.db.QueryRowContext(ctx, query,
		rsvp.Name,
		rsvp.Email,
		rsvp.IsAttending,
		rsvp.NumberOfGuests,
		guestNamesValue,
		rsvp.DietaryRestrictions,
		rsvp.SongRequests,
		rsvp.Notes,
		rsvp.CreatedAt,
		rsvp.UpdatedAt,
	)
	if err := row.Scan(&rsvp.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return apperrors.NewAppError(apperrors.ErrAlreadyExists, "email already registered", err)
		}
		logger.Error("RSVPRepository:Create:Error:", "error", err)
		return err
	}
	return nil
}

// GetByEmail returns the matching record, or (nil, nil) when no RSVP exists
// for the address. Matching is case-insensitive, like the unique index.
func (r *RSVPRepository) GetByEmail(ctx context.Context, email string) (*entity.RSVP, error) {
	query := `
		SELECT id, name, email, is_attending, number_of_guests, guest_names,
			dietary_restrictions, song_requests, notes, created_at, updated_at
		FROM rsvps
		WHERE lower(email) = lower($1)
	`
	var rsvp entity.RSVP
	err := r.db.GetContext(ctx, &rsvp, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("RSVPRepository:GetByEmail:Error:", "error", err)
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepository) GetByID(ctx context.Context, id int64) (*entity.RSVP, error) {
	query := `
		SELECT id, name, email, is_attending, number_of_guests, guest_names,
			dietary_restrictions, song_requests, notes, created_at, updated_at
		FROM rsvps
		WHERE id = $1
	`
	var rsvp entity.RSVP
	err := r.db.GetContext(ctx, &rsvp, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "rsvp not found", err)
		}
		logger.Error("RSVPRepository:GetByID:Error:", "error", err)
		return nil, err
	}
	return &rsvp, nil
}

func (r *RSVPRepository) GetAll(ctx context.Context) ([]entity.RSVP, error) {
	query := `
		SELECT id, name, email, is_attending, number_of_guests, guest_names,
			dietary_restrictions, song_requests, notes, created_at, updated_at
		FROM rsvps
		ORDER BY created_at DESC
	`
	var rsvps []entity.RSVP
	err := r.db.SelectContext(ctx, &rsvps, query)
	if err != nil {
		logger.Error("RSVPRepository:GetAll:Error:", "error", err)
		return nil, err
	}
	return rsvps, nil
}

// Update applies a partial update. Guest-count/guest-name consistency is
// re-validated against the merged record when either field is included.
func (r *RSVPRepository) Update(ctx context.Context, id int64, req *dto.UpdateRSVPRequest) (*entity.RSVP, error) {
	if req.Empty() {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "no fields to update", nil)
	}

	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Email != nil {
		current.Email = *req.Email
	}
	if req.IsAttending != nil {
		current.IsAttending = *req.IsAttending
	}
	if req.NumberOfGuests != nil {
		current.NumberOfGuests = *req.NumberOfGuests
	}
	if req.GuestNames != nil {
		current.GuestNames = entity.GuestNames(*req.GuestNames)
	}
	if req.DietaryRestrictions != nil {
		current.DietaryRestrictions = req.DietaryRestrictions
	}
	if req.SongRequests != nil {
		current.SongRequests = req.SongRequests
	}
	if req.Notes != nil {
		current.Notes = req.Notes
	}

	if req.IsAttending != nil || req.NumberOfGuests != nil || req.GuestNames != nil {
		if err := checkGuestConsistency(current.IsAttending, current.NumberOfGuests, current.GuestNames); err != nil {
			return nil, err
		}
	}

	guestNamesValue, err := current.GuestNames.Value()
	if err != nil {
		return nil, err
	}

	current.UpdatedAt = time.Now()
	query := `
		UPDATE rsvps
		SET name = $1, email = $2, is_attending = $3, number_of_guests = $4,
			guest_names = $5, dietary_restrictions = $6, song_requests = $7,
			notes = $8, updated_at = $9
		WHERE id = $10
	`
	err = r.db.ExecContext(ctx, query,
		current.Name,
		current.Email,
		current.IsAttending,
		current.NumberOfGuests,
		guestNamesValue,
		current.DietaryRestrictions,
		current.SongRequests,
		current.Notes,
		current.UpdatedAt,
		id,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return nil, apperrors.NewAppError(apperrors.ErrAlreadyExists, "email already registered", err)
		}
		logger.Error("RSVPRepository:Update:Error:", "error", err)
		return nil, err
	}
	return current, nil
}

// Delete removes the record permanently and returns what was deleted.
func (r *RSVPRepository) Delete(ctx context.Context, id int64) (*entity.RSVP, error) {
	query := `
		DELETE FROM rsvps
		WHERE id = $1
		RETURNING id, name, email, is_attending, number_of_guests, guest_names,
			dietary_restrictions, song_requests, notes, created_at, updated_at
	`
	var rsvp entity.RSVP
	err := r.db.GetContext(ctx, &rsvp, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewAppError(apperrors.ErrNotFound, "rsvp not found", err)
		}
		logger.Error("RSVPRepository:Delete:Error:", "error", err)
		return nil, err
	}
	return &rsvp, nil
}

// GetStats aggregates over the full record set at call time.
func (r *RSVPRepository) GetStats(ctx context.Context) (*entity.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_attending) AS attending_count,
			COUNT(*) FILTER (WHERE NOT is_attending) AS not_attending_count,
			COALESCE(SUM(number_of_guests) FILTER (WHERE is_attending), 0) AS total_guests
		FROM rsvps
	`
	var stats entity.Stats
	err := r.db.GetContext(ctx, &stats, query)
	if err != nil {
		logger.Error("RSVPRepository:GetStats:Error:", "error", err)
		return nil, err
	}
	return &stats, nil
}

// checkGuestConsistency re-validates the guest invariants. The messages are
// the validator's raw rule descriptions so callers can translate the exact
// failure back to a field error.
func checkGuestConsistency(attending bool, count int, names entity.GuestNames) error {
	if !attending && (count != 0 || len(names) != 0) {
		return apperrors.NewAppError(apperrors.ErrInvalidInput, validator.RawGuestNamesMustBeEmpty, nil)
	}
	if attending && count > 0 && len(names) != count {
		return apperrors.NewAppError(apperrors.ErrInvalidInput, validator.RawGuestNamesCountMismatch, nil)
	}
	if len(names) > constants.MaxGuests {
		return apperrors.NewAppError(apperrors.ErrInvalidInput, validator.RawGuestNamesTooMany, nil)
	}
	return nil
}
