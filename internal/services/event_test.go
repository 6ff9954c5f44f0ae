package services

import (
	"context"
	"testing"
	"time"

	"collegeevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture() (domain.EventService, *fakeStore) {
	store := newFakeStore()
	store.venues["venue-1"] = &domain.Venue{ID: "venue-1", Name: "Main Hall"}
	return NewEventService(&fakeEventRepo{s: store}, &fakeVenueRepo{s: store}, 5*time.Second), store
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		event   *domain.Event
		wantErr error
		check   func(t *testing.T, e *domain.Event)
	}{
		{
			name:  "fills venue name and default status",
			event: &domain.Event{OrganizerID: "org-1", Title: " Hackathon ", VenueID: "venue-1", RegistrationsCount: 40},
			check: func(t *testing.T, e *domain.Event) {
				assert.NotEmpty(t, e.ID)
				assert.Equal(t, "Hackathon", e.Title)
				assert.Equal(t, "Main Hall", e.Venue)
				assert.Equal(t, domain.EventStatusGreen, e.Status)
				assert.Zero(t, e.RegistrationsCount)
				assert.False(t, e.CreatedAt.IsZero())
			},
		},
		{name: "missing organizer", event: &domain.Event{Title: "X"}, wantErr: domain.ErrInvalidInput},
		{name: "missing title", event: &domain.Event{OrganizerID: "org-1"}, wantErr: domain.ErrInvalidInput},
		{name: "unknown venue", event: &domain.Event{OrganizerID: "org-1", Title: "X", VenueID: "nope"}, wantErr: domain.ErrInvalidInput},
		{name: "bad status", event: &domain.Event{OrganizerID: "org-1", Title: "X", Status: "Blue"}, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newEventFixture()
			err := svc.Create(ctx, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, tt.event)
		})
	}
}

func TestEventService_Update(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		organizerID string
		event       *domain.Event
		wantErr     error
	}{
		{name: "owner updates", organizerID: "org-1", event: &domain.Event{ID: "event-1", Title: "New title", SheetLink: "abc"}},
		{name: "other organizer", organizerID: "org-2", event: &domain.Event{ID: "event-1", Title: "New title"}, wantErr: domain.ErrForbidden},
		{name: "missing event", organizerID: "org-1", event: &domain.Event{ID: "missing", Title: "New title"}, wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newEventFixture()
			store.events["event-1"] = &domain.Event{
				ID: "event-1", OrganizerID: "org-1", Title: "Old", Status: domain.EventStatusYellow,
				RegistrationsCount: 7, CreatedAt: created,
			}

			updated, err := svc.Update(ctx, tt.organizerID, tt.event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Old", store.events["event-1"].Title)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "New title", updated.Title)
			assert.Equal(t, "org-1", updated.OrganizerID)
			assert.Equal(t, 7, updated.RegistrationsCount)
			assert.Equal(t, domain.EventStatusYellow, updated.Status)
			assert.Equal(t, created, updated.CreatedAt)
			assert.Equal(t, "abc", store.events["event-1"].SheetLink)
		})
	}
}

func TestEventService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, store := newEventFixture()
	store.events["event-1"] = &domain.Event{ID: "event-1", OrganizerID: "org-1"}
	store.registrations["reg-1"] = &domain.Registration{ID: "reg-1", EventID: "event-1"}

	require.ErrorIs(t, svc.Delete(ctx, "event-1", "org-2"), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "event-1", "org-1"))
	assert.Empty(t, store.events)
	assert.Empty(t, store.registrations)
	require.ErrorIs(t, svc.Delete(ctx, "event-1", "org-1"), domain.ErrNotFound)
}

func TestEventService_ListByOrganizer(t *testing.T) {
	svc, store := newEventFixture()
	now := time.Now()
	store.events["e1"] = &domain.Event{ID: "e1", OrganizerID: "org-1", CreatedAt: now.Add(-time.Hour)}
	store.events["e2"] = &domain.Event{ID: "e2", OrganizerID: "org-1", CreatedAt: now}
	store.events["e3"] = &domain.Event{ID: "e3", OrganizerID: "org-2", CreatedAt: now}

	events, err := svc.ListByOrganizer(context.Background(), "org-1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e2", events[0].ID)
	assert.Equal(t, "e1", events[1].ID)
}
