package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"safealert.backend/internal/domain/entities"
	domainerrors "safealert.backend/internal/domain/errors"
)

func TestSafeZoneRepository_OwnerScopedCRUD(t *testing.T) {
	db := newTestDB(t)
	createSafeZoneTable(t, db)
	repo := NewSafeZoneRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	zone := &entities.SafeZone{
		ID:          uuid.New(),
		UserID:      userID,
		Description: "Evening commute",
		StartLocation: entities.Location{
			Latitude:  23.8103,
			Longitude: 90.4125,
			Address:   "Office, Gulshan",
		},
		EndLocation: entities.Location{
			Latitude:  23.7509,
			Longitude: 90.3935,
			Address:   "Home, Dhanmondi",
		},
		ExpectedReturn: null.TimeFrom(time.Now().Add(2 * time.Hour)),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	require.NoError(t, repo.Create(ctx, zone))

	got, err := repo.GetByID(ctx, zone.ID, userID)
	require.NoError(t, err)
	require.Equal(t, "Evening commute", got.Description)
	require.InDelta(t, 23.8103, got.StartLocation.Latitude, 1e-9)
	require.True(t, got.ExpectedReturn.Valid)

	// another user cannot see the zone
	_, err = repo.GetByID(ctx, zone.ID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	zone.Description = "Morning commute"
	zone.EndLocation.Address = "Home, Mirpur"
	require.NoError(t, repo.Update(ctx, zone))

	got, err = repo.GetByID(ctx, zone.ID, userID)
	require.NoError(t, err)
	require.Equal(t, "Morning commute", got.Description)
	require.Equal(t, "Home, Mirpur", got.EndLocation.Address)

	require.NoError(t, repo.SoftDelete(ctx, zone.ID, userID))
	_, err = repo.GetByID(ctx, zone.ID, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSafeZoneRepository_ListSearchesAddresses(t *testing.T) {
	db := newTestDB(t)
	createSafeZoneTable(t, db)
	repo := NewSafeZoneRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	for _, desc := range []string{"Campus route", "Market run"} {
		zone := &entities.SafeZone{
			ID:          uuid.New(),
			UserID:      userID,
			Description: desc,
			StartLocation: entities.Location{
				Latitude: 1, Longitude: 1, Address: "Start point",
			},
			EndLocation: entities.Location{
				Latitude: 2, Longitude: 2, Address: "End point",
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, zone))
	}

	zones, total, err := repo.ListByUser(ctx, userID, &entities.SafeZoneListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, zones, 2)

	zones, total, err = repo.ListByUser(ctx, userID, &entities.SafeZoneListQuery{SearchTerm: "campus", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Campus route", zones[0].Description)
}
