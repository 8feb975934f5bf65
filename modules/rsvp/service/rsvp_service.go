package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"wedding-rsvp/core/cache"
	"wedding-rsvp/core/constants"
	coreentity "wedding-rsvp/core/entity"
	apperrors "wedding-rsvp/core/errors"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/core/metrics"
	"wedding-rsvp/core/params"
	"wedding-rsvp/core/utils"
	notifService "wedding-rsvp/modules/notification/service"
	"wedding-rsvp/modules/rsvp/dto"
	"wedding-rsvp/modules/rsvp/entity"
	"wedding-rsvp/modules/rsvp/guestlist"
	"wedding-rsvp/modules/rsvp/repository"
	"wedding-rsvp/modules/rsvp/validator"
)

type RSVPService struct {
	repo          repository.RSVPRepositoryInterface
	confirmations notifService.ConfirmationServiceInterface
	cache         cache.ICache
	observer      metrics.Observer
}

func NewRSVPService(
	repo repository.RSVPRepositoryInterface,
	confirmations notifService.ConfirmationServiceInterface,
	cache cache.ICache,
	observer metrics.Observer,
) *RSVPService {
	return &RSVPService{
		repo:          repo,
		confirmations: confirmations,
		cache:         cache,
		observer:      observer,
	}
}

// Submit runs one submission through the pipeline: validate, uniqueness
// pre-check, persist, queue the confirmation email, invalidate cached pages.
// Field errors are returned separately from infrastructure errors so both
// entry points (JSON and form post) can render them their own way.
func (s *RSVPService) Submit(ctx context.Context, payload validator.Payload) (*dto.SubmitRSVPResponse, []validator.FieldError, error) {
	s.observer.SubmissionReceived()

	result := validator.Validate(payload)
	if !result.Success {
		s.observer.SubmissionRejected("validation")
		return nil, result.Errors, nil
	}
	data := result.Data

	// Pre-check for a friendlier duplicate error. A read failure here is
	// deliberately treated as "not found": the unique index on the table
	// catches the race, and a flaky read must not block a legitimate guest.
	existing, err := s.repo.GetByEmail(ctx, data.Email)
	if err != nil {
		logger.Warn("RSVPService:Submit:PreCheck:FailOpen", "email", data.Email, "error", err)
	}
	if existing != nil {
		s.observer.SubmissionRejected("uniqueness")
		return nil, []validator.FieldError{{
			Field:   "email",
			Message: validator.Translate(validator.RawEmailAlreadyRegistered),
		}}, nil
	}

	record := &entity.RSVP{
		Name:                data.Name,
		Email:               data.Email,
		IsAttending:         data.IsAttending,
		NumberOfGuests:      data.NumberOfGuests,
		GuestNames:          entity.GuestNames(data.GuestNames),
		DietaryRestrictions: data.DietaryRestrictions,
		SongRequests:        data.SongRequests,
		Notes:               data.Notes,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		s.observer.SubmissionRejected("storage")
		switch {
		case apperrors.Is(err, apperrors.ErrAlreadyExists):
			// Lost the check-then-act race; the unique index caught it.
			return nil, []validator.FieldError{{
				Field:   "email",
				Message: validator.Translate(validator.RawEmailAlreadyRegistered),
			}}, nil
		case apperrors.Is(err, apperrors.ErrInvalidInput):
			// The message is the raw rule description of whichever guest
			// invariant the storage layer re-check tripped.
			msg := validator.Translate(validator.RawGuestNamesCountMismatch)
			if ae, ok := err.(*apperrors.AppError); ok && ae.Message != "" {
				msg = validator.Translate(ae.Message)
			}
			return nil, []validator.FieldError{{
				Field:   "guestNames",
				Message: msg,
			}}, nil
		default:
			logger.Error("RSVPService:Submit:Create:Error", "error", err)
			return nil, nil, apperrors.NewAppError(apperrors.ErrInternalServer,
				"something went wrong saving your RSVP, please try again", err)
		}
	}
	s.observer.SubmissionStored()

	reference := utils.GenerateReference()

	// The RSVP is durable. Email delivery is best-effort from here on and
	// never surfaces to the guest.
	if err := s.confirmations.EnqueueConfirmation(ctx, record, reference); err != nil {
		s.observer.EmailFailed()
		logger.Error("RSVPService:Submit:EnqueueConfirmation:Error", "rsvp_id", record.ID, "error", err)
	} else {
		s.observer.EmailQueued()
	}

	s.invalidatePages(ctx)

	logger.Info("RSVPService:Submit:Stored",
		"rsvp_id", record.ID,
		"attending", record.IsAttending,
		"guests", record.NumberOfGuests,
	)
	return &dto.SubmitRSVPResponse{ID: record.ID, Reference: reference}, nil, nil
}

// CheckEmailAvailability backs the live email check on the public form.
func (s *RSVPService) CheckEmailAvailability(ctx context.Context, email string) ([]validator.FieldError, error) {
	email = strings.TrimSpace(email)
	if errs := validator.ValidateEmail(email); len(errs) > 0 {
		return errs, nil
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrInternalServer, "could not check email availability", err)
	}
	if existing != nil {
		return []validator.FieldError{{
			Field:   "email",
			Message: validator.Translate(validator.RawEmailAlreadyRegistered),
		}}, nil
	}
	return nil, nil
}

// Dashboard fetches the full record set and the aggregate statistics. The
// two reads are independent, so they run concurrently and join here.
func (s *RSVPService) Dashboard(ctx context.Context, queryParams params.QueryParams) (*dto.DashboardResponse, error) {
	var (
		wg       sync.WaitGroup
		rsvps    []entity.RSVP
		stats    *entity.Stats
		rsvpsErr error
		statsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		rsvps, rsvpsErr = s.repo.GetAll(ctx)
	}()
	go func() {
		defer wg.Done()
		stats, statsErr = s.repo.GetStats(ctx)
	}()
	wg.Wait()

	if rsvpsErr != nil {
		return nil, rsvpsErr
	}
	if statsErr != nil {
		return nil, statsErr
	}

	total := len(rsvps)
	start := (queryParams.PageNumber - 1) * queryParams.PageSize
	if start > total {
		start = total
	}
	end := start + queryParams.PageSize
	if end > total {
		end = total
	}

	responses := make([]dto.RSVPResponse, 0, end-start)
	for i := start; i < end; i++ {
		responses = append(responses, dto.FromEntity(&rsvps[i]))
	}

	return &dto.DashboardResponse{
		RSVPs: coreentity.Pagination[dto.RSVPResponse]{
			Items:      responses,
			TotalItems: total,
			PageNumber: queryParams.PageNumber,
			PageSize:   queryParams.PageSize,
		},
		Stats: statsResponse(stats),
	}, nil
}

func (s *RSVPService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := s.repo.GetStats(ctx)
	if err != nil {
		return nil, err
	}
	resp := statsResponse(stats)
	return &resp, nil
}

// Update applies an admin edit. When the guest count or attendance changes
// without an explicit guest-name list, the existing list is resized by the
// same reducer the public form uses.
func (s *RSVPService) Update(ctx context.Context, id int64, req *dto.UpdateRSVPRequest) (*dto.RSVPResponse, error) {
	if req.Empty() {
		return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, "no fields to update", nil)
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if errs := validator.ValidateEmail(email); len(errs) > 0 {
			return nil, apperrors.NewAppError(apperrors.ErrInvalidInput, errs[0].Message, nil)
		}
		req.Email = &email
	}

	if req.GuestNames == nil && (req.NumberOfGuests != nil || req.IsAttending != nil) {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		attending := current.IsAttending
		if req.IsAttending != nil {
			attending = *req.IsAttending
		}
		count := current.NumberOfGuests
		if req.NumberOfGuests != nil {
			count = *req.NumberOfGuests
		}
		synced := guestlist.Sync(current.GuestNames, count, attending)
		req.GuestNames = &synced
		if !attending {
			zero := 0
			req.NumberOfGuests = &zero
		}
	}

	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.invalidatePages(ctx)

	resp := dto.FromEntity(updated)
	return &resp, nil
}

// Delete removes a record permanently. There is no soft delete.
func (s *RSVPService) Delete(ctx context.Context, id int64) (*dto.RSVPResponse, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidatePages(ctx)

	logger.Info("RSVPService:Delete:Removed", "rsvp_id", id, "email", deleted.Email)
	resp := dto.FromEntity(deleted)
	return &resp, nil
}

// CategoryPage renders the dietary or song-request listing, served from the
// page cache when warm.
func (s *RSVPService) CategoryPage(ctx context.Context, key string) ([]byte, error) {
	if cached, ok := s.cache.GetPage(ctx, key); ok {
		return []byte(cached), nil
	}

	rsvps, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	type categoryEntry struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	var entries []categoryEntry
	for i := range rsvps {
		var value *string
		switch key {
		case constants.RedisKeyPageDietary:
			value = rsvps[i].DietaryRestrictions
		case constants.RedisKeyPageSongs:
			value = rsvps[i].SongRequests
		}
		if value != nil {
			entries = append(entries, categoryEntry{Name: rsvps[i].Name, Value: *value})
		}
	}

	rendered, err := json.Marshal(map[string]any{"entries": entries})
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetPage(ctx, key, string(rendered)); err != nil {
		logger.Warn("RSVPService:CategoryPage:SetPage:Error", "key", key, "error", err)
	}
	return rendered, nil
}

// GetAllRecords exposes the full record set for the CSV export.
func (s *RSVPService) GetAllRecords(ctx context.Context) ([]entity.RSVP, error) {
	return s.repo.GetAll(ctx)
}

func (s *RSVPService) invalidatePages(ctx context.Context) {
	if err := s.cache.InvalidatePages(ctx); err != nil {
		logger.Warn("RSVPService:InvalidatePages:Error", "error", err)
	}
}

func statsResponse(stats *entity.Stats) dto.StatsResponse {
	return dto.StatsResponse{
		Total:             stats.Total,
		AttendingCount:    stats.AttendingCount,
		NotAttendingCount: stats.NotAttendingCount,
		TotalGuests:       stats.TotalGuests,
	}
}
