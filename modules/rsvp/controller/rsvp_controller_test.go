package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"wedding-rsvp/core/metrics"
	"wedding-rsvp/modules/rsvp/dto"
	"wedding-rsvp/modules/rsvp/entity"
	"wedding-rsvp/modules/rsvp/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	byEmail map[string]*entity.RSVP
	nextID  int64
}

func (s *stubRepo) Create(ctx context.Context, rsvp *entity.RSVP) error {
	s.nextID++
	rsvp.ID = s.nextID
	rsvp.CreatedAt = time.Now()
	rsvp.UpdatedAt = rsvp.CreatedAt
	s.byEmail[rsvp.Email] = rsvp
	return nil
}

func (s *stubRepo) GetByEmail(ctx context.Context, email string) (*entity.RSVP, error) {
	return s.byEmail[email], nil
}

func (s *stubRepo) GetByID(ctx context.Context, id int64) (*entity.RSVP, error) { return nil, nil }
func (s *stubRepo) GetAll(ctx context.Context) ([]entity.RSVP, error)           { return nil, nil }
func (s *stubRepo) Update(ctx context.Context, id int64, req *dto.UpdateRSVPRequest) (*entity.RSVP, error) {
	return nil, nil
}
func (s *stubRepo) Delete(ctx context.Context, id int64) (*entity.RSVP, error) { return nil, nil }
func (s *stubRepo) GetStats(ctx context.Context) (*entity.Stats, error) {
	return &entity.Stats{}, nil
}

type stubConfirmations struct{}

func (stubConfirmations) EnqueueConfirmation(ctx context.Context, rsvp *entity.RSVP, reference string) error {
	return nil
}

type stubCache struct{}

func (stubCache) GetPage(ctx context.Context, key string) (string, bool)        { return "", false }
func (stubCache) SetPage(ctx context.Context, key, value string) error          { return nil }
func (stubCache) InvalidatePages(ctx context.Context) error                     { return nil }
func (stubCache) IsLoginBlocked(ctx context.Context, key string) (bool, error)  { return false, nil }
func (stubCache) IncrementLoginAttempt(ctx context.Context, key string) error   { return nil }
func (stubCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return nil
}
func (stubCache) Del(ctx context.Context, key string) error { return nil }

func newTestController() *RSVPController {
	repo := &stubRepo{byEmail: map[string]*entity.RSVP{}}
	svc := service.NewRSVPService(repo, stubConfirmations{}, stubCache{}, metrics.NewNopObserver())
	return NewRSVPController(svc)
}

func TestSubmit_JSON_OK(t *testing.T) {
	e := echo.New()
	body := `{"name":"Jane Smith","email":"jane@example.com","attendance":"yes","numberOfGuests":1,"guestNames":["Tom Smith"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rsvp", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := newTestController().Submit(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":1`)
}

func TestSubmit_JSON_ValidationErrors(t *testing.T) {
	e := echo.New()
	body := `{"name":"","email":"nope","attendance":"maybe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/rsvp", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := newTestController().Submit(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"name"`)
	assert.Contains(t, rec.Body.String(), `"field":"email"`)
}

func TestSubmitForm_RedirectsToThanks(t *testing.T) {
	e := echo.New()
	form := url.Values{}
	form.Set("name", "Jane Smith")
	form.Set("email", "jane@example.com")
	form.Set("attendance", "yes")
	form.Set("numberOfGuests", "1")
	form.Set("guestName0", "Tom Smith")

	req := httptest.NewRequest(http.MethodPost, "/rsvp", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	err := newTestController().SubmitForm(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	location, parseErr := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, parseErr)
	assert.Equal(t, "/rsvp/thanks", location.Path)
	assert.Equal(t, "Jane Smith", location.Query().Get("name"))
	assert.Equal(t, "yes", location.Query().Get("attending"))
	assert.NotEmpty(t, location.Query().Get("ref"))
}

func TestSubmitForm_InvalidRedirectsBack(t *testing.T) {
	e := echo.New()
	form := url.Values{}
	form.Set("name", "Jane Smith")
	form.Set("email", "not-an-email")
	form.Set("attendance", "yes")

	req := httptest.NewRequest(http.MethodPost, "/rsvp", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	err := newTestController().SubmitForm(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	location, parseErr := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, parseErr)
	assert.Equal(t, "/rsvp", location.Path)
	assert.Equal(t, "1", location.Query().Get("error"))
	assert.NotEmpty(t, location.Query().Get("message"))
}

func TestValidateEmail_Available(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/validate-email",
		strings.NewReader(`{"email":"free@example.com"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := newTestController().ValidateEmail(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"available":true`)
}

func TestFormPage_RendersGuestCeiling(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/rsvp", nil)
	rec := httptest.NewRecorder()

	err := newTestController().FormPage(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `max="10"`)
}
