package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"collegeevents/internal/domain"
	"collegeevents/internal/signup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	reconcileNow  = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	signupHeaders = []string{"Name", "E-mail", "Reg No", "Timestamp", "Status"}
)

type reconcileFixture struct {
	svc    *reconcileService
	store  *fakeStore
	opener *fakeOpener
	sheet  *fakeSheet
}

func newReconcileFixture(sheet *fakeSheet) *reconcileFixture {
	store := newFakeStore()
	store.events["event-1"] = &domain.Event{
		ID:          "event-1",
		OrganizerID: "org-1",
		Title:       "Hackathon",
		SheetLink:   "https://docs.google.com/spreadsheets/d/sheet-abc/edit#gid=0",
	}
	opener := &fakeOpener{sheets: map[string]*fakeSheet{"sheet-abc": sheet}}
	svc := NewReconcileService(
		&fakeEventRepo{s: store},
		&fakeParticipantRepo{s: store},
		&fakeRegistrationRepo{s: store},
		opener,
		signup.DayFirst,
		discardLogger(),
	).(*reconcileService)
	svc.now = func() time.Time { return reconcileNow }
	return &reconcileFixture{svc: svc, store: store, opener: opener, sheet: sheet}
}

func row(name, email, regNo, ts, status string) map[string]string {
	return map[string]string{"Name": name, "E-mail": email, "Reg No": regNo, "Timestamp": ts, "Status": status}
}

func TestReconcileService_Reconcile_fatal(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		eventID  string
		orgID    string
		override string
		setup    func(f *reconcileFixture)
		wantErr  error
	}{
		{name: "event not found", eventID: "missing", orgID: "org-1", wantErr: domain.ErrNotFound},
		{name: "other organizer", eventID: "event-1", orgID: "org-2", wantErr: domain.ErrForbidden},
		{
			name:    "sheet link unresolved",
			eventID: "event-1",
			orgID:   "org-1",
			setup: func(f *reconcileFixture) {
				f.store.events["event-1"].SheetLink = "see the form on our website!"
			},
			wantErr: domain.ErrSourceUnresolved,
		},
		{
			name:    "no sheet link",
			eventID: "event-1",
			orgID:   "org-1",
			setup: func(f *reconcileFixture) {
				f.store.events["event-1"].SheetLink = ""
			},
			wantErr: domain.ErrSourceUnresolved,
		},
		{name: "override sheet missing", eventID: "event-1", orgID: "org-1", override: "other-sheet", wantErr: domain.ErrSourceAccess},
		{
			name:    "sheet unreadable",
			eventID: "event-1",
			orgID:   "org-1",
			setup: func(f *reconcileFixture) {
				f.sheet.readErr = errors.New("403 permission denied")
			},
			wantErr: domain.ErrSourceAccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReconcileFixture(newFakeSheet(signupHeaders, row("A", "a@x.com", "R1", "", "")))
			if tt.setup != nil {
				tt.setup(f)
			}

			result, err := f.svc.Reconcile(ctx, tt.eventID, tt.orgID, tt.override)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
			assert.Zero(t, f.store.writes)
			assert.Empty(t, f.sheet.writes)
		})
	}
}

func TestReconcileService_Reconcile_two_new_rows(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders,
		row("A", "a@x.com", "R1", "01/02/2024 10:00:00", ""),
		row("B", "b@x.com", "R2", "", ""),
	))

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Equal(t, 2, result.InsertedParticipants)
	assert.Equal(t, 2, result.InsertedRegistrations)
	assert.Empty(t, result.Duplicates)
	assert.Empty(t, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []int{2, 3}, result.UpdatedRows)
	assert.Equal(t, 2, result.RegistrationsCount)
	assert.Equal(t, 2, f.store.events["event-1"].RegistrationsCount)
	assert.Equal(t, map[int]string{2: domain.SheetStatusProcessed, 3: domain.SheetStatusProcessed}, f.sheet.writes)

	a := f.store.participantByEmail("a@x.com")
	require.NotNil(t, a)
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, "R1", a.RegNo)
	assert.Equal(t, "", a.Phone)

	reg, err := (&fakeRegistrationRepo{s: f.store}).GetByEventAndParticipant(context.Background(), "event-1", a.ID)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), reg.RegistrationTime)
	assert.Equal(t, domain.RegistrationStatusRegistered, reg.Status)

	b := f.store.participantByEmail("b@x.com")
	require.NotNil(t, b)
	regB, err := (&fakeRegistrationRepo{s: f.store}).GetByEventAndParticipant(context.Background(), "event-1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, reconcileNow, regB.RegistrationTime)
}

func TestReconcileService_Reconcile_final_statuses_are_skipped_without_writes(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders,
		row("A", "a@x.com", "R1", "", "processed"),
		row("B", "b@x.com", "R2", "", "DELETED"),
		row("C", "c@x.com", "R3", "", " Skipped "),
	))

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Equal(t, []domain.RowSkip{
		{Row: 2, Reason: "already processed"},
		{Row: 3, Reason: "already processed"},
		{Row: 4, Reason: "already processed"},
	}, result.Skipped)
	assert.Zero(t, result.InsertedParticipants)
	assert.Zero(t, result.InsertedRegistrations)
	assert.Zero(t, f.store.writes)
	assert.Empty(t, f.sheet.writes)
}

func TestReconcileService_Reconcile_missing_identity(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders,
		row("Nobody", "", "  ", "", ""),
		row("A", "", "R1", "", "Duplicate"),
	))

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Equal(t, []domain.RowSkip{{Row: 2, Reason: "missing identity"}}, result.Skipped)
	assert.Equal(t, 1, result.InsertedParticipants)
	assert.Equal(t, 1, result.InsertedRegistrations)
	assert.Equal(t, map[int]string{3: domain.SheetStatusProcessed}, f.sheet.writes)
}

func TestReconcileService_Reconcile_same_email_creates_one_participant(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders,
		row("A", "a@x.com", "", "", ""),
		row("A again", "A@X.com ", "", "", ""),
	))

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.InsertedParticipants)
	assert.Equal(t, 1, result.InsertedRegistrations)
	assert.Equal(t, []domain.RowDuplicate{{Row: 3, Email: "a@x.com", Reason: "duplicate registration"}}, result.Duplicates)
	assert.Len(t, f.store.participants, 1)
	assert.Equal(t, domain.SheetStatusDuplicate, f.sheet.writes[3])
}

func TestReconcileService_Reconcile_existing_registration_is_duplicate(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders, row("A", "a@x.com", "R1", "", "")))
	f.store.participants["p-existing"] = &domain.Participant{ID: "p-existing", Email: "a@x.com"}
	f.store.registrations["reg-existing"] = domain.NewRegistration("event-1", "p-existing", reconcileNow)
	f.store.registrations["reg-existing"].ID = "reg-existing"

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Zero(t, result.InsertedParticipants)
	assert.Zero(t, result.InsertedRegistrations)
	assert.Len(t, result.Duplicates, 1)
	assert.Len(t, f.store.participants, 1)
	assert.Len(t, f.store.registrations, 1)
	assert.Zero(t, f.store.writes)
}

func TestReconcileService_Reconcile_resolves_by_reg_no(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders, row("A", "", "R1", "", "")))
	f.store.participants["p-existing"] = &domain.Participant{ID: "p-existing", RegNo: "R1"}

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Zero(t, result.InsertedParticipants)
	assert.Equal(t, 1, result.InsertedRegistrations)
	_, err = (&fakeRegistrationRepo{s: f.store}).GetByEventAndParticipant(context.Background(), "event-1", "p-existing")
	require.NoError(t, err)
}

func TestReconcileService_Reconcile_is_idempotent(t *testing.T) {
	tests := []struct {
		name         string
		header       []string
		wantSkipped  int
		wantDupCount int
	}{
		{name: "with status column", header: signupHeaders, wantSkipped: 2},
		{name: "without status column", header: []string{"Name", "E-mail", "Reg No", "Timestamp"}, wantDupCount: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReconcileFixture(newFakeSheet(tt.header,
				map[string]string{"Name": "A", "E-mail": "a@x.com", "Reg No": "R1"},
				map[string]string{"Name": "B", "E-mail": "b@x.com", "Reg No": "R2"},
			))
			ctx := context.Background()

			first, err := f.svc.Reconcile(ctx, "event-1", "org-1", "")
			require.NoError(t, err)
			assert.Equal(t, 2, first.InsertedRegistrations)

			second, err := f.svc.Reconcile(ctx, "event-1", "org-1", "")
			require.NoError(t, err)
			assert.Zero(t, second.InsertedParticipants)
			assert.Zero(t, second.InsertedRegistrations)
			assert.Len(t, second.Skipped, tt.wantSkipped)
			assert.Len(t, second.Duplicates, tt.wantDupCount)
			assert.Equal(t, 2, second.RegistrationsCount)
		})
	}
}

func TestReconcileService_Reconcile_row_error_does_not_abort_batch(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders,
		row("Bad", "bad@x.com", "", "", ""),
		row("Good", "good@x.com", "", "", ""),
	))
	f.store.failParticipantEmail = "bad@x.com"

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "insert failed")
	assert.Equal(t, 1, result.InsertedRegistrations)
	assert.Equal(t, map[int]string{2: domain.SheetStatusError, 3: domain.SheetStatusProcessed}, f.sheet.writes)
}

func TestReconcileService_Reconcile_counts_participant_stored_before_registration_failed(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders, row("New", "new@x.com", "R7", "", "")))
	f.store.createRegErr = errors.New("connection reset")

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Len(t, f.store.participants, 1)
	assert.Equal(t, 1, result.InsertedParticipants)
	assert.Equal(t, 0, result.InsertedRegistrations)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Contains(t, result.Errors[0].Error, "connection reset")
	assert.Equal(t, map[int]string{2: domain.SheetStatusError}, f.sheet.writes)

	// The participant now exists, so a retry only adds the registration.
	f.store.createRegErr = nil
	retry, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, retry.InsertedParticipants)
	assert.Equal(t, 1, retry.InsertedRegistrations)
}

func TestReconcileService_Reconcile_write_back_failure_is_ignored(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders, row("A", "a@x.com", "", "", "")))
	f.sheet.writeErr = errors.New("quota exceeded")

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.InsertedRegistrations)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.UpdatedRows)
}

func TestReconcileService_Reconcile_override_replaces_sheet_link(t *testing.T) {
	f := newReconcileFixture(newFakeSheet(signupHeaders))
	f.opener.sheets["override-id"] = newFakeSheet(signupHeaders, row("A", "a@x.com", "", "", ""))

	result, err := f.svc.Reconcile(context.Background(), "event-1", "org-1", "https://docs.google.com/spreadsheets/d/override-id/edit")
	require.NoError(t, err)

	assert.Equal(t, []string{"override-id"}, f.opener.opened)
	assert.Equal(t, 1, result.InsertedRegistrations)
}
