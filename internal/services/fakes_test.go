package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"collegeevents/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeStore is an in-memory data store shared by the fake repositories so that
// cross-entity behaviour (counts, cascades) can be observed.
type fakeStore struct {
	events        map[string]*domain.Event
	participants  map[string]*domain.Participant
	registrations map[string]*domain.Registration
	users         map[string]*domain.User
	venues        map[string]*domain.Venue
	nextID        int
	writes        int

	failParticipantEmail string // Create fails for this email
	getErr               error  // lookups fail with this error when set
	createRegErr         error  // registration Create fails with this error when set
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:        make(map[string]*domain.Event),
		participants:  make(map[string]*domain.Participant),
		registrations: make(map[string]*domain.Registration),
		users:         make(map[string]*domain.User),
		venues:        make(map[string]*domain.Venue),
		nextID:        1,
	}
}

func (s *fakeStore) id(prefix string) string {
	id := fmt.Sprintf("%s-%d", prefix, s.nextID)
	s.nextID++
	return id
}

func (s *fakeStore) registrationCount(eventID string) int {
	n := 0
	for _, r := range s.registrations {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

func (s *fakeStore) participantByEmail(email string) *domain.Participant {
	for _, p := range s.participants {
		if p.Email != "" && p.Email == domain.NormalizeEmail(email) {
			return p
		}
	}
	return nil
}

// fakeEventRepo implements domain.EventRepository.
type fakeEventRepo struct{ s *fakeStore }

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.s.writes++
	e.ID = f.s.id("ev")
	f.s.events[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.s.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(f.s.events))
	for _, e := range f.s.events {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEventRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	all, _ := f.List(ctx)
	out := make([]*domain.Event, 0)
	for _, e := range all {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.s.events[e.ID]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	cp := *e
	f.s.events[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	delete(f.s.events, id)
	for rid, r := range f.s.registrations {
		if r.EventID == id {
			delete(f.s.registrations, rid)
		}
	}
	return nil
}

func (f *fakeEventRepo) RecomputeRegistrationsCount(ctx context.Context, eventID string) (int, error) {
	e, ok := f.s.events[eventID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	f.s.writes++
	e.RegistrationsCount = f.s.registrationCount(eventID)
	return e.RegistrationsCount, nil
}

// fakeParticipantRepo implements domain.ParticipantRepository.
type fakeParticipantRepo struct{ s *fakeStore }

func (f *fakeParticipantRepo) Create(ctx context.Context, p *domain.Participant) error {
	if f.s.failParticipantEmail != "" && p.Email == f.s.failParticipantEmail {
		return errors.New("insert failed")
	}
	if p.Email != "" && f.s.participantByEmail(p.Email) != nil {
		return domain.ErrDuplicateEmail
	}
	f.s.writes++
	p.ID = f.s.id("p")
	f.s.participants[p.ID] = p
	return nil
}

func (f *fakeParticipantRepo) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	if p, ok := f.s.participants[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByEmail(ctx context.Context, email string) (*domain.Participant, error) {
	if f.s.getErr != nil {
		return nil, f.s.getErr
	}
	if p := f.s.participantByEmail(email); p != nil {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) GetByRegNo(ctx context.Context, regNo string) (*domain.Participant, error) {
	if f.s.getErr != nil {
		return nil, f.s.getErr
	}
	for _, p := range f.s.participants {
		if p.RegNo != "" && p.RegNo == regNo {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeParticipantRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Participant, int, error) {
	out := make([]*domain.Participant, 0, len(f.s.participants))
	for _, p := range f.s.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := len(out)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return out[start:end], total, nil
}

func (f *fakeParticipantRepo) Update(ctx context.Context, p *domain.Participant) error {
	if _, ok := f.s.participants[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if other := f.s.participantByEmail(p.Email); other != nil && other.ID != p.ID {
		return domain.ErrDuplicateEmail
	}
	f.s.writes++
	f.s.participants[p.ID] = p
	return nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := f.s.participants[id]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	delete(f.s.participants, id)
	return nil
}

// fakeRegistrationRepo implements domain.RegistrationRepository.
type fakeRegistrationRepo struct{ s *fakeStore }

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *domain.Registration) error {
	if f.s.createRegErr != nil {
		return f.s.createRegErr
	}
	for _, r := range f.s.registrations {
		if r.EventID == reg.EventID && r.ParticipantID == reg.ParticipantID {
			return domain.ErrAlreadyRegistered
		}
	}
	f.s.writes++
	reg.ID = f.s.id("reg")
	f.s.registrations[reg.ID] = reg
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if r, ok := f.s.registrations[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*domain.Registration, error) {
	for _, r := range f.s.registrations {
		if r.EventID == eventID && r.ParticipantID == participantID {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.RegistrationWithParticipant, error) {
	out := make([]*domain.RegistrationWithParticipant, 0)
	for _, r := range f.s.registrations {
		if r.EventID == eventID {
			out = append(out, &domain.RegistrationWithParticipant{Registration: r, Participant: f.s.participants[r.ParticipantID]})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Registration.RegistrationTime.After(out[j].Registration.RegistrationTime)
	})
	return out, nil
}

func (f *fakeRegistrationRepo) ListByParticipantID(ctx context.Context, participantID string) ([]*domain.Registration, error) {
	out := make([]*domain.Registration, 0)
	for _, r := range f.s.registrations {
		if r.ParticipantID == participantID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, reg *domain.Registration) error {
	if _, ok := f.s.registrations[reg.ID]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	f.s.registrations[reg.ID] = reg
	return nil
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.s.registrations[id]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	delete(f.s.registrations, id)
	return nil
}

func (f *fakeRegistrationRepo) DeleteByParticipantID(ctx context.Context, participantID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int64
	for id, r := range f.s.registrations {
		if r.ParticipantID == participantID {
			delete(f.s.registrations, id)
			n++
		}
	}
	f.s.writes++
	return n, nil
}

// fakeUserRepo implements domain.UserRepository.
type fakeUserRepo struct{ s *fakeStore }

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	for _, existing := range f.s.users {
		if existing.Email == u.Email || (u.RegNo != "" && existing.RegNo == u.RegNo) {
			return domain.ErrDuplicateUser
		}
	}
	f.s.writes++
	u.ID = f.s.id("user")
	f.s.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.s.users))
	for _, u := range f.s.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if _, ok := f.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	for _, existing := range f.s.users {
		if existing.ID != u.ID && existing.Email == u.Email {
			return domain.ErrDuplicateUser
		}
	}
	f.s.writes++
	f.s.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	delete(f.s.users, id)
	return nil
}

// fakeVenueRepo implements domain.VenueRepository.
type fakeVenueRepo struct{ s *fakeStore }

func (f *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	for _, existing := range f.s.venues {
		if strings.EqualFold(existing.Name, v.Name) {
			return domain.ErrDuplicateVenue
		}
	}
	f.s.writes++
	v.ID = f.s.id("venue")
	f.s.venues[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if v, ok := f.s.venues[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeVenueRepo) List(ctx context.Context) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0, len(f.s.venues))
	for _, v := range f.s.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeVenueRepo) Update(ctx context.Context, v *domain.Venue) error {
	if _, ok := f.s.venues[v.ID]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	f.s.venues[v.ID] = v
	return nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.s.venues[id]; !ok {
		return domain.ErrNotFound
	}
	f.s.writes++
	delete(f.s.venues, id)
	return nil
}

// fakeSheet is an in-memory sign-up sheet. Written cells are applied to its rows.
type fakeSheet struct {
	header   []string
	rows     []map[string]string
	writes   map[int]string
	writeErr error
	readErr  error
}

func newFakeSheet(header []string, rows ...map[string]string) *fakeSheet {
	return &fakeSheet{header: header, rows: rows, writes: make(map[int]string)}
}

func (f *fakeSheet) Header(ctx context.Context) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.header, nil
}

func (f *fakeSheet) Rows(ctx context.Context) ([]map[string]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	out := make([]map[string]string, len(f.rows))
	for i, r := range f.rows {
		cp := make(map[string]string, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return out, nil
}

func (f *fakeSheet) WriteCell(ctx context.Context, rowNumber int, column, value string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	idx := rowNumber - 2
	if idx < 0 || idx >= len(f.rows) {
		return fmt.Errorf("row %d out of range", rowNumber)
	}
	f.rows[idx][column] = value
	f.writes[rowNumber] = value
	return nil
}

// fakeOpener implements domain.SheetOpener over a set of fake sheets keyed by sheet ID.
// With hang set, Open blocks until ctx is done.
type fakeOpener struct {
	sheets map[string]*fakeSheet
	opened []string
	err    error
	hang   bool
}

func (f *fakeOpener) Open(ctx context.Context, sheetID string) (domain.SheetSource, error) {
	f.opened = append(f.opened, sheetID)
	if f.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.sheets[sheetID]
	if !ok {
		return nil, errors.New("spreadsheet not found")
	}
	return s, nil
}

// fakeEmailService records registration confirmations.
type fakeEmailService struct {
	sent []*domain.RegistrationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
