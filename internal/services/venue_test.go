package services

import (
	"context"
	"testing"
	"time"

	"collegeevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVenueService(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewVenueService(&fakeVenueRepo{s: store}, 5*time.Second)

	v := &domain.Venue{Name: " Main Hall "}
	require.NoError(t, svc.Create(ctx, v))
	assert.Equal(t, "Main Hall", v.Name)
	created := v.CreatedAt

	require.ErrorIs(t, svc.Create(ctx, &domain.Venue{Name: "main hall"}), domain.ErrDuplicateVenue)
	require.ErrorIs(t, svc.Create(ctx, &domain.Venue{Name: "  "}), domain.ErrInvalidInput)

	upd := &domain.Venue{ID: v.ID, Name: "Auditorium", PhoneNumber: "555"}
	require.NoError(t, svc.Update(ctx, upd))
	got, err := svc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Auditorium", got.Name)
	assert.Equal(t, created, got.CreatedAt)

	require.ErrorIs(t, svc.Update(ctx, &domain.Venue{ID: "missing", Name: "X"}), domain.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, v.ID))
	_, err = svc.GetByID(ctx, v.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
