package service

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "wedding-rsvp/core/errors"
	"wedding-rsvp/core/metrics"
	"wedding-rsvp/core/params"
	"wedding-rsvp/modules/rsvp/dto"
	"wedding-rsvp/modules/rsvp/entity"
	"wedding-rsvp/modules/rsvp/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byEmail       map[string]*entity.RSVP
	byID          map[int64]*entity.RSVP
	created       []*entity.RSVP
	nextID        int64
	getByEmailErr error
	createErr     error
	all           []entity.RSVP
	stats         *entity.Stats
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail: map[string]*entity.RSVP{},
		byID:    map[int64]*entity.RSVP{},
		nextID:  1,
	}
}

func (f *fakeRepo) Create(ctx context.Context, rsvp *entity.RSVP) error {
	if f.createErr != nil {
		return f.createErr
	}
	rsvp.ID = f.nextID
	f.nextID++
	rsvp.CreatedAt = time.Now()
	rsvp.UpdatedAt = rsvp.CreatedAt
	f.created = append(f.created, rsvp)
	f.byEmail[rsvp.Email] = rsvp
	f.byID[rsvp.ID] = rsvp
	return nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*entity.RSVP, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.byEmail[email], nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*entity.RSVP, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "rsvp not found", nil)
	}
	return r, nil
}

func (f *fakeRepo) GetAll(ctx context.Context) ([]entity.RSVP, error) {
	return f.all, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, req *dto.UpdateRSVPRequest) (*entity.RSVP, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "rsvp not found", nil)
	}
	if req.Email != nil {
		delete(f.byEmail, r.Email)
		r.Email = *req.Email
		f.byEmail[r.Email] = r
	}
	if req.IsAttending != nil {
		r.IsAttending = *req.IsAttending
	}
	if req.NumberOfGuests != nil {
		r.NumberOfGuests = *req.NumberOfGuests
	}
	if req.GuestNames != nil {
		r.GuestNames = entity.GuestNames(*req.GuestNames)
	}
	return r, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) (*entity.RSVP, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrNotFound, "rsvp not found", nil)
	}
	delete(f.byID, id)
	delete(f.byEmail, r.Email)
	return r, nil
}

func (f *fakeRepo) GetStats(ctx context.Context) (*entity.Stats, error) {
	if f.stats != nil {
		return f.stats, nil
	}
	return &entity.Stats{}, nil
}

type fakeConfirmations struct {
	enqueued []string
	err      error
}

func (f *fakeConfirmations) EnqueueConfirmation(ctx context.Context, rsvp *entity.RSVP, reference string) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, rsvp.Email)
	return nil
}

type fakeCache struct {
	pages       map[string]string
	invalidated int
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: map[string]string{}}
}

func (f *fakeCache) GetPage(ctx context.Context, key string) (string, bool) {
	v, ok := f.pages[key]
	return v, ok
}

func (f *fakeCache) SetPage(ctx context.Context, key, value string) error {
	f.pages[key] = value
	return nil
}

func (f *fakeCache) InvalidatePages(ctx context.Context) error {
	f.invalidated++
	f.pages = map[string]string{}
	return nil
}

func (f *fakeCache) IsLoginBlocked(ctx context.Context, key string) (bool, error) { return false, nil }
func (f *fakeCache) IncrementLoginAttempt(ctx context.Context, key string) error  { return nil }
func (f *fakeCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (f *fakeCache) Del(ctx context.Context, key string) error { return nil }

func validPayload() validator.Payload {
	return validator.Payload{
		"name":           "Jane Smith",
		"email":          "jane@example.com",
		"attendance":     "yes",
		"numberOfGuests": 1,
		"guestNames":     []string{"Tom Smith"},
	}
}

func newService(repo *fakeRepo, conf *fakeConfirmations, c *fakeCache) *RSVPService {
	return NewRSVPService(repo, conf, c, metrics.NewNopObserver())
}

func TestSubmit_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	conf := &fakeConfirmations{}
	c := newFakeCache()
	svc := newService(repo, conf, c)

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	require.NotNil(t, resp)
	assert.Equal(t, int64(1), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, []string{"jane@example.com"}, conf.enqueued)
	assert.Equal(t, 1, c.invalidated)
}

func TestSubmit_ValidationFailureStoresNothing(t *testing.T) {
	repo := newFakeRepo()
	conf := &fakeConfirmations{}
	svc := newService(repo, conf, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validator.Payload{
		"name":       "",
		"email":      "broken",
		"attendance": "maybe",
	})

	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.NotEmpty(t, fieldErrors)
	assert.Empty(t, repo.created)
	assert.Empty(t, conf.enqueued)
}

func TestSubmit_DuplicateEmailRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.byEmail["jane@example.com"] = &entity.RSVP{ID: 7, Email: "jane@example.com"}
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	assert.Nil(t, resp)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "email", fieldErrors[0].Field)
	assert.Equal(t, validator.Translate(validator.RawEmailAlreadyRegistered), fieldErrors[0].Message)
	assert.Empty(t, repo.created)
}

// A broken uniqueness pre-check must not block the guest; the unique index is
// the real guarantee.
func TestSubmit_PreCheckFailureFailsOpen(t *testing.T) {
	repo := newFakeRepo()
	repo.getByEmailErr = errors.New("connection reset")
	conf := &fakeConfirmations{}
	svc := newService(repo, conf, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	require.NotNil(t, resp)
	assert.Len(t, repo.created, 1)
}

func TestSubmit_StorageConflictMapsToEmailError(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = apperrors.NewAppError(apperrors.ErrAlreadyExists, "email already registered", nil)
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	assert.Nil(t, resp)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "email", fieldErrors[0].Field)
}

// The storage layer's consistency re-check reports which guest invariant it
// tripped; the surfaced message must match that invariant, not always the
// count-mismatch text.
func TestSubmit_ConsistencyFailureSurfacesSpecificMessage(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = apperrors.NewAppError(apperrors.ErrInvalidInput, validator.RawGuestNamesMustBeEmpty, nil)
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	assert.Nil(t, resp)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "guestNames", fieldErrors[0].Field)
	assert.Equal(t, validator.Translate(validator.RawGuestNamesMustBeEmpty), fieldErrors[0].Message)
}

func TestSubmit_StorageFailureSurfacesAsError(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("disk full")
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Empty(t, fieldErrors)
	assert.True(t, apperrors.Is(err, apperrors.ErrInternalServer))
}

// Email trouble is invisible to the guest: the RSVP is already durable.
func TestSubmit_EmailFailureDoesNotFailSubmission(t *testing.T) {
	repo := newFakeRepo()
	conf := &fakeConfirmations{err: errors.New("broker down")}
	svc := newService(repo, conf, newFakeCache())

	resp, fieldErrors, err := svc.Submit(context.Background(), validPayload())

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	require.NotNil(t, resp)
	assert.Len(t, repo.created, 1)
}

func TestCheckEmailAvailability(t *testing.T) {
	repo := newFakeRepo()
	repo.byEmail["taken@example.com"] = &entity.RSVP{ID: 1, Email: "taken@example.com"}
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	fieldErrors, err := svc.CheckEmailAvailability(context.Background(), "free@example.com")
	require.NoError(t, err)
	assert.Empty(t, fieldErrors)

	fieldErrors, err = svc.CheckEmailAvailability(context.Background(), "taken@example.com")
	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "email", fieldErrors[0].Field)

	fieldErrors, err = svc.CheckEmailAvailability(context.Background(), "not an email")
	require.NoError(t, err)
	require.Len(t, fieldErrors, 1)
}

func TestUpdate_CountChangeResizesGuestNames(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &entity.RSVP{
		ID: 1, Name: "Jane Smith", Email: "jane@example.com",
		IsAttending: true, NumberOfGuests: 2,
		GuestNames: entity.GuestNames{"Anna Lee", "Ben Cole"},
	}
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	one := 1
	resp, err := svc.Update(context.Background(), 1, &dto.UpdateRSVPRequest{NumberOfGuests: &one})

	require.NoError(t, err)
	assert.Equal(t, []string{"Anna Lee"}, resp.GuestNames)
}

func TestUpdate_DecliningClearsGuests(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &entity.RSVP{
		ID: 1, Name: "Jane Smith", Email: "jane@example.com",
		IsAttending: true, NumberOfGuests: 2,
		GuestNames: entity.GuestNames{"Anna Lee", "Ben Cole"},
	}
	c := newFakeCache()
	svc := newService(repo, &fakeConfirmations{}, c)

	declined := false
	resp, err := svc.Update(context.Background(), 1, &dto.UpdateRSVPRequest{IsAttending: &declined})

	require.NoError(t, err)
	assert.False(t, resp.IsAttending)
	assert.Zero(t, resp.NumberOfGuests)
	assert.Empty(t, resp.GuestNames)
	assert.Equal(t, 1, c.invalidated)
}

func TestUpdate_EmailCorrectionApplied(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &entity.RSVP{ID: 1, Name: "Jane Smith", Email: "jnae@example.com"}
	repo.byEmail["jnae@example.com"] = repo.byID[1]
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	corrected := "  jane@example.com  "
	resp, err := svc.Update(context.Background(), 1, &dto.UpdateRSVPRequest{Email: &corrected})

	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", resp.Email)
}

func TestUpdate_InvalidEmailRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &entity.RSVP{ID: 1, Email: "jane@example.com"}
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	bad := "not an email"
	_, err := svc.Update(context.Background(), 1, &dto.UpdateRSVPRequest{Email: &bad})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestUpdate_EmptyRequestRejected(t *testing.T) {
	svc := newService(newFakeRepo(), &fakeConfirmations{}, newFakeCache())

	_, err := svc.Update(context.Background(), 1, &dto.UpdateRSVPRequest{})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
}

func TestDelete_InvalidatesPages(t *testing.T) {
	repo := newFakeRepo()
	repo.byID[1] = &entity.RSVP{ID: 1, Email: "jane@example.com"}
	repo.byEmail["jane@example.com"] = repo.byID[1]
	c := newFakeCache()
	svc := newService(repo, &fakeConfirmations{}, c)

	_, err := svc.Delete(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 1, c.invalidated)
	assert.Empty(t, repo.byID)
}

func TestDashboard_PaginatesInMemory(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 5; i++ {
		repo.all = append(repo.all, entity.RSVP{ID: int64(i + 1), Name: "Guest", Email: "g@example.com"})
	}
	repo.stats = &entity.Stats{Total: 5, AttendingCount: 3, NotAttendingCount: 2, TotalGuests: 4}
	svc := newService(repo, &fakeConfirmations{}, newFakeCache())

	resp, err := svc.Dashboard(context.Background(), params.QueryParams{PageNumber: 2, PageSize: 2})

	require.NoError(t, err)
	assert.Equal(t, 5, resp.RSVPs.TotalItems)
	assert.Equal(t, 2, resp.RSVPs.PageNumber)
	require.Len(t, resp.RSVPs.Items, 2)
	assert.Equal(t, int64(3), resp.RSVPs.Items[0].ID)
	assert.Equal(t, 3, resp.Stats.AttendingCount)
}
