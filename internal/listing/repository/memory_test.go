package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

func newPendingListing(createdAt time.Time) *models.Listing {
	return &models.Listing{
		ID:          uuid.New(),
		Status:      models.PendingStatus,
		CreatorName: "@creator",
		Title:       "clip",
		VideoURL:    "https://example.com/v",
		EmbedURL:    "https://example.com/v",
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func mustCreate(t *testing.T, r *MemoryRepository, l *models.Listing) {
	t.Helper()
	tx, err := r.BeginTx(context.Background())
	require.NoError(t, err)
	require.NoError(t, r.CreateTx(context.Background(), tx, l))
	require.NoError(t, tx.Commit())
}

func TestMemoryCreate_RefusesNonPending(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	l := newPendingListing(time.Now())
	l.Status = models.ApprovedStatus

	tx, err := r.BeginTx(ctx)
	require.NoError(t, err)

	// Store contract: new rows are pending, whatever the caller sends.
	err = r.CreateTx(ctx, tx, l)
	require.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = r.GetByID(ctx, l.ID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryCreate_DuplicateIDConflicts(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	l := newPendingListing(time.Now())
	mustCreate(t, r, l)

	tx, err := r.BeginTx(ctx)
	require.NoError(t, err)
	require.ErrorIs(t, r.CreateTx(ctx, tx, l), models.ErrConflict)
}

func TestMemoryListByStatus_NewestFirst(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := newPendingListing(base)
	newer := newPendingListing(base.Add(time.Minute))
	mustCreate(t, r, older)
	mustCreate(t, r, newer)

	approved := newPendingListing(base.Add(2 * time.Minute))
	mustCreate(t, r, approved)
	tx, err := r.BeginTx(ctx)
	require.NoError(t, err)
	_, err = r.SetModerationTx(ctx, tx, approved.ID, models.ApprovedStatus, nil)
	require.NoError(t, err)

	pending, err := r.ListByStatus(ctx, models.PendingStatus)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, newer.ID, pending[0].ID)
	assert.Equal(t, older.ID, pending[1].ID)

	published, err := r.ListByStatus(ctx, models.ApprovedStatus)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, approved.ID, published[0].ID)
}

func TestMemoryAddGenres_NoDuplicatePairs(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	l := newPendingListing(time.Now())
	mustCreate(t, r, l)

	require.NoError(t, r.AddGenres(ctx, l.ID, []int64{1, 3}))
	require.NoError(t, r.AddGenres(ctx, l.ID, []int64{3, 1}))

	ids, err := r.GenreIDs(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestMemoryReplaceGenres_Wholesale(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	l := newPendingListing(time.Now())
	mustCreate(t, r, l)
	require.NoError(t, r.AddGenres(ctx, l.ID, []int64{1, 2, 3}))

	require.NoError(t, r.ReplaceGenres(ctx, l.ID, []int64{5}))

	ids, err := r.GenreIDs(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, ids)

	// Empty replacement clears the set.
	require.NoError(t, r.ReplaceGenres(ctx, l.ID, nil))
	ids, err = r.GenreIDs(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMemoryAddGenres_UnknownListing(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	err := r.AddGenres(ctx, uuid.New(), []int64{1})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryGetByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	l := newPendingListing(time.Now())
	mustCreate(t, r, l)

	got, err := r.GetByID(ctx, l.ID)
	require.NoError(t, err)

	// Мутация копии не должна трогать хранимую запись
	got.Title = "mutated"

	again, err := r.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "clip", again.Title)
}

func TestMemoryTaxonomy_OrderAndActiveFilter(t *testing.T) {
	ctx := context.Background()

	tax := NewMemoryTaxonomy(
		[]models.GenreCategory{
			{ID: 2, Name: "Second", SortOrder: 2},
			{ID: 1, Name: "First", SortOrder: 1},
		},
		[]models.Genre{
			{ID: 3, CategoryID: 1, Name: "C", SortOrder: 3, IsActive: true},
			{ID: 1, CategoryID: 1, Name: "A", SortOrder: 1, IsActive: true},
			{ID: 2, CategoryID: 2, Name: "B", SortOrder: 2, IsActive: false},
		},
	)

	cats, err := tax.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "First", cats[0].Name)

	genres, err := tax.ActiveGenres(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "A", genres[0].Name)
	assert.Equal(t, "C", genres[1].Name)
}
