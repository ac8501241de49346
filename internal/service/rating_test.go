package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kerramientas-backend/internal/domain"
	"kerramientas-backend/internal/repository/memory"
	"kerramientas-backend/internal/service"
)

type ratingFixture struct {
	store  *memory.Store
	svc    service.RatingService
	ctx    context.Context
	toolID int32
	owner  int32
	rater  int32
	other  int32
}

func newRatingFixture(t *testing.T) *ratingFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	owner := &domain.User{Username: "jorge", FullName: "Jorge Quispe", Email: "jorge@example.com", PasswordHash: "x"}
	rater := &domain.User{Username: "maria", FullName: "Maria Flores", Email: "maria@example.com", PasswordHash: "x"}
	other := &domain.User{Username: "pedro", FullName: "Pedro Castillo", Email: "pedro@example.com", PasswordHash: "x"}
	require.NoError(t, store.Users().Create(ctx, owner))
	require.NoError(t, store.Users().Create(ctx, rater))
	require.NoError(t, store.Users().Create(ctx, other))

	tool := &domain.Tool{OwnerID: owner.ID, Name: "Amoladora", Brand: "DeWalt", DailyPrice: 25, IsAvailable: true}
	require.NoError(t, store.Tools().Create(ctx, tool))

	return &ratingFixture{
		store:  store,
		svc:    service.NewRatingService(store.Ratings(), store.Tools()),
		ctx:    ctx,
		toolID: tool.ID,
		owner:  owner.ID,
		rater:  rater.ID,
		other:  other.ID,
	}
}

func strPtr(s string) *string { return &s }

func TestRateTool(t *testing.T) {
	f := newRatingFixture(t)

	t.Run("CreatesRating", func(t *testing.T) {
		rating, err := f.svc.RateTool(f.ctx, f.rater, f.toolID, 4, strPtr("buena herramienta"))
		require.NoError(t, err)
		assert.Equal(t, 4.0, rating.Score)
		require.NotNil(t, rating.Comment)
		assert.Equal(t, "buena herramienta", *rating.Comment)
	})

	t.Run("SecondRatingReplacesFirst", func(t *testing.T) {
		updated, err := f.svc.RateTool(f.ctx, f.rater, f.toolID, 2, nil)
		require.NoError(t, err)
		assert.Equal(t, 2.0, updated.Score)
		assert.Nil(t, updated.Comment)
		assert.NotNil(t, updated.UpdatedAt)

		ratings, err := f.svc.ListToolRatings(f.ctx, f.toolID)
		require.NoError(t, err)
		assert.Len(t, ratings, 1)
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		_, err := f.svc.RateTool(f.ctx, f.rater, f.toolID, 0, nil)
		assert.True(t, domain.IsValidation(err))
		_, err = f.svc.RateTool(f.ctx, f.rater, f.toolID, 5.5, nil)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("OwnTool", func(t *testing.T) {
		_, err := f.svc.RateTool(f.ctx, f.owner, f.toolID, 5, nil)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("UnknownTool", func(t *testing.T) {
		_, err := f.svc.RateTool(f.ctx, f.rater, 999, 5, nil)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestToolStats(t *testing.T) {
	f := newRatingFixture(t)

	_, err := f.svc.RateTool(f.ctx, f.rater, f.toolID, 5, nil)
	require.NoError(t, err)
	_, err = f.svc.RateTool(f.ctx, f.other, f.toolID, 3, nil)
	require.NoError(t, err)

	t.Run("AggregatesScores", func(t *testing.T) {
		stats, err := f.svc.GetToolStats(f.ctx, f.toolID)
		require.NoError(t, err)
		assert.Equal(t, int32(2), stats.TotalRatings)
		assert.Equal(t, 4.0, stats.AverageRating)
		assert.Equal(t, int32(1), stats.Distribution[5])
		assert.Equal(t, int32(1), stats.Distribution[3])
		assert.Equal(t, int32(0), stats.Distribution[1])
	})

	t.Run("UnknownTool", func(t *testing.T) {
		_, err := f.svc.GetToolStats(f.ctx, 999)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestDeleteRating(t *testing.T) {
	f := newRatingFixture(t)

	rating, err := f.svc.RateTool(f.ctx, f.rater, f.toolID, 4, nil)
	require.NoError(t, err)

	t.Run("OtherUserRejected", func(t *testing.T) {
		err := f.svc.DeleteRating(f.ctx, f.other, rating.ID)
		assert.True(t, domain.IsUnauthorized(err))
	})

	t.Run("OwnerRemoves", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteRating(f.ctx, f.rater, rating.ID))
		ratings, err := f.svc.ListToolRatings(f.ctx, f.toolID)
		require.NoError(t, err)
		assert.Empty(t, ratings)
	})

	t.Run("Gone", func(t *testing.T) {
		err := f.svc.DeleteRating(f.ctx, f.rater, rating.ID)
		assert.True(t, domain.IsNotFound(err))
	})
}
