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

func TestAlertPostRepository_OwnerScopedCRUD(t *testing.T) {
	db := newTestDB(t)
	createAlertPostTable(t, db)
	repo := NewAlertPostRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	post := &entities.AlertPost{
		ID:          uuid.New(),
		UserID:      userID,
		Description: "Being followed near the bridge",
		Image:       null.StringFrom("https://cdn.example.com/alerts/1.jpg"),
		Location: entities.Location{
			Latitude:  23.7,
			Longitude: 90.4,
			Address:   "Hatirjheel bridge",
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID, userID)
	require.NoError(t, err)
	require.Equal(t, "Being followed near the bridge", got.Description)
	require.True(t, got.Image.Valid)

	_, err = repo.GetByID(ctx, post.ID, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	post.Description = "Safe now, resolved"
	require.NoError(t, repo.Update(ctx, post))

	got, err = repo.GetByID(ctx, post.ID, userID)
	require.NoError(t, err)
	require.Equal(t, "Safe now, resolved", got.Description)

	require.NoError(t, repo.SoftDelete(ctx, post.ID, userID))
	_, err = repo.GetByID(ctx, post.ID, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAlertPostRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	createAlertPostTable(t, db)
	repo := NewAlertPostRepository(db)
	ctx := context.Background()

	mine := uuid.New()
	other := uuid.New()
	for _, userID := range []uuid.UUID{mine, mine, other} {
		post := &entities.AlertPost{
			ID:          uuid.New(),
			UserID:      userID,
			Description: "help",
			Location:    entities.Location{Latitude: 1, Longitude: 1},
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		require.NoError(t, repo.Create(ctx, post))
	}

	posts, total, err := repo.ListByUser(ctx, mine, &entities.AlertPostListQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, posts, 2)
}
