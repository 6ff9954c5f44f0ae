package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"collegeevents/internal/delivery/http/helpers"
	"collegeevents/internal/delivery/http/middleware"
	"collegeevents/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	testEventID       = "11111111-1111-4111-8111-111111111111"
	testOrganizerID   = "22222222-2222-4222-8222-222222222222"
	testParticipantID = "33333333-3333-4333-8333-333333333333"
	testRegID         = "44444444-4444-4444-8444-444444444444"
	testVenueID       = "55555555-5555-4555-8555-555555555555"
	testUserID        = "66666666-6666-4666-8666-666666666666"
)

// newRequest builds a request with optional JSON body, path values and authenticated user.
func newRequest(method, target, body string, userID string, pathValues map[string]string) *http.Request {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

// decodeData decodes the success envelope's data into dest and returns the envelope error.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) *helpers.APIError {
	t.Helper()
	var raw struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&raw))
	if dest != nil && raw.Error == nil {
		require.NoError(t, json.Unmarshal(raw.Data, dest))
	}
	return raw.Error
}

// fakeUserService implements domain.UserService for handler tests.
type fakeUserService struct {
	signUpErr   error
	lastSignUp  *domain.User
	lastPass    string
	loginToken  string
	loginUser   *domain.User
	loginErr    error
	users       []*domain.User
	listErr     error
	getUser     *domain.User
	getErr      error
	updateErr   error
	lastUpdate  domain.UserPatch
	lastUpdated string
	deleteErr   error
	lastDelete  string
}

func (f *fakeUserService) SignUp(_ context.Context, user *domain.User, password string) error {
	f.lastSignUp = user
	f.lastPass = password
	if f.signUpErr != nil {
		return f.signUpErr
	}
	user.ID = testUserID
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	return nil
}

func (f *fakeUserService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeUserService) List(_ context.Context) ([]*domain.User, error) {
	return f.users, f.listErr
}

func (f *fakeUserService) GetByID(_ context.Context, _ string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getUser, nil
}

func (f *fakeUserService) Update(_ context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	f.lastUpdated = id
	f.lastUpdate = patch
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	u := &domain.User{ID: id}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Year != nil {
		u.Year = *patch.Year
	}
	return u, nil
}

func (f *fakeUserService) Delete(_ context.Context, id string) error {
	f.lastDelete = id
	return f.deleteErr
}

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	venues     []*domain.Venue
	err        error
	lastCreate *domain.Venue
	lastUpdate *domain.Venue
	lastDelete string
}

func (f *fakeVenueService) Create(_ context.Context, v *domain.Venue) error {
	f.lastCreate = v
	if f.err != nil {
		return f.err
	}
	v.ID = testVenueID
	return nil
}

func (f *fakeVenueService) GetByID(_ context.Context, id string) (*domain.Venue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Venue{ID: id, Name: "Main Hall"}, nil
}

func (f *fakeVenueService) List(_ context.Context) ([]*domain.Venue, error) {
	return f.venues, f.err
}

func (f *fakeVenueService) Update(_ context.Context, v *domain.Venue) error {
	f.lastUpdate = v
	return f.err
}

func (f *fakeVenueService) Delete(_ context.Context, id string) error {
	f.lastDelete = id
	return f.err
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events          []*domain.Event
	err             error
	lastCreate      *domain.Event
	lastUpdate      *domain.Event
	lastOrganizerID string
	lastDeleteID    string
}

func (f *fakeEventService) Create(_ context.Context, e *domain.Event) error {
	f.lastCreate = e
	if f.err != nil {
		return f.err
	}
	e.ID = testEventID
	if e.Status == "" {
		e.Status = domain.EventStatusGreen
	}
	return nil
}

func (f *fakeEventService) GetByID(_ context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Event{ID: id, Title: "Hackathon"}, nil
}

func (f *fakeEventService) List(_ context.Context) ([]*domain.Event, error) {
	return f.events, f.err
}

func (f *fakeEventService) ListByOrganizer(_ context.Context, organizerID string) ([]*domain.Event, error) {
	f.lastOrganizerID = organizerID
	return f.events, f.err
}

func (f *fakeEventService) Update(_ context.Context, organizerID string, e *domain.Event) (*domain.Event, error) {
	f.lastOrganizerID = organizerID
	f.lastUpdate = e
	if f.err != nil {
		return nil, f.err
	}
	return e, nil
}

func (f *fakeEventService) Delete(_ context.Context, eventID, organizerID string) error {
	f.lastDeleteID = eventID
	f.lastOrganizerID = organizerID
	return f.err
}

// fakeParticipantService implements domain.ParticipantService for handler tests.
type fakeParticipantService struct {
	participants []*domain.Participant
	total        int
	err          error
	lastParams   domain.PaginationParams
	lastPatch    domain.ParticipantPatch
	lastDelete   string
}

func (f *fakeParticipantService) List(_ context.Context, params domain.PaginationParams) ([]*domain.Participant, int, error) {
	f.lastParams = params
	return f.participants, f.total, f.err
}

func (f *fakeParticipantService) GetByID(_ context.Context, id string) (*domain.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Participant{ID: id, Email: "asha@college.edu"}, nil
}

func (f *fakeParticipantService) Update(_ context.Context, id string, patch domain.ParticipantPatch) (*domain.Participant, error) {
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	p := &domain.Participant{ID: id}
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	return p, nil
}

func (f *fakeParticipantService) Delete(_ context.Context, id string) error {
	f.lastDelete = id
	return f.err
}

// fakeRegistrationService implements domain.RegistrationService for handler tests.
type fakeRegistrationService struct {
	err             error
	created         bool
	lastParticipant *domain.Participant
	lastOrganizerID string
	lastPatch       domain.RegistrationPatch
	lastDelete      string
	byEvent         []*domain.RegistrationWithParticipant
	forUser         []*domain.RegistrationWithEvent
	lastUserID      string
}

func (f *fakeRegistrationService) Register(_ context.Context, eventID, organizerID string, p *domain.Participant) (*domain.Registration, bool, error) {
	f.lastParticipant = p
	f.lastOrganizerID = organizerID
	if f.err != nil {
		return nil, false, f.err
	}
	return &domain.Registration{ID: testRegID, EventID: eventID, ParticipantID: testParticipantID, Status: domain.RegistrationStatusRegistered}, f.created, nil
}

func (f *fakeRegistrationService) ListByEvent(_ context.Context, _, organizerID string) ([]*domain.RegistrationWithParticipant, error) {
	f.lastOrganizerID = organizerID
	return f.byEvent, f.err
}

func (f *fakeRegistrationService) GetByID(_ context.Context, id string) (*domain.Registration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Registration{ID: id, Status: domain.RegistrationStatusRegistered}, nil
}

func (f *fakeRegistrationService) Update(_ context.Context, id, organizerID string, patch domain.RegistrationPatch) (*domain.Registration, error) {
	f.lastOrganizerID = organizerID
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	reg := &domain.Registration{ID: id, Status: domain.RegistrationStatusRegistered, AdditionalInfo: patch.AdditionalInfo}
	if patch.Status != nil {
		reg.Status = *patch.Status
	}
	return reg, nil
}

func (f *fakeRegistrationService) Delete(_ context.Context, id, organizerID string) error {
	f.lastDelete = id
	f.lastOrganizerID = organizerID
	return f.err
}

func (f *fakeRegistrationService) ListForUser(_ context.Context, userID string) ([]*domain.RegistrationWithEvent, error) {
	f.lastUserID = userID
	return f.forUser, f.err
}

// fakeReconcileService implements domain.ReconcileService for handler tests.
type fakeReconcileService struct {
	result          *domain.ReconcileResult
	err             error
	lastEventID     string
	lastOrganizerID string
	lastOverride    string
}

func (f *fakeReconcileService) Reconcile(_ context.Context, eventID, organizerID, override string) (*domain.ReconcileResult, error) {
	f.lastEventID = eventID
	f.lastOrganizerID = organizerID
	f.lastOverride = override
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
