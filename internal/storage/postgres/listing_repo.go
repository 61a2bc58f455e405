package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
	"github.com/romariotrain/moderation-platform/internal/listing/repository"
)

type ListingRepo struct {
	db *sqlx.DB
}

func NewListingRepo(db *sqlx.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

const listingColumns = `id, status, creator_name, creator_email, title, video_url, embed_url, genre, memo, rejection_reason, created_at, updated_at`

func (r *ListingRepo) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func sqlxTx(tx repository.Tx) (*sqlx.Tx, error) {
	t, ok := tx.(*sqlx.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected tx type %T", tx)
	}
	return t, nil
}

func (r *ListingRepo) CreateTx(ctx context.Context, tx repository.Tx, l *models.Listing) error {
	// Контракт стора: новые записи только pending, независимо от того,
	// что прислал вызывающий и что проверяет сам сервер БД.
	if l == nil {
		return models.ErrInvalidArgument
	}
	if l.Status != models.PendingStatus {
		return fmt.Errorf("%w: new listing must be pending, got %q", models.ErrInvalidArgument, l.Status)
	}
	if err := l.Validate(); err != nil {
		return err
	}

	t, err := sqlxTx(tx)
	if err != nil {
		return err
	}

	const q = `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = t.ExecContext(ctx, q,
		l.ID, l.Status, l.CreatorName, l.CreatorEmail, l.Title,
		l.VideoURL, l.EmbedURL, l.Genre, l.Memo, l.RejectionReason,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("listing create: %w", err)
	}
	return nil
}

func (r *ListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	const q = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1
	`

	var l models.Listing
	if err := r.db.GetContext(ctx, &l, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("listing get by id: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("listing row %s: %w", id, err)
	}

	return &l, nil
}

func (r *ListingRepo) ListByStatus(ctx context.Context, status models.Status) ([]models.Listing, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidArgument
	}

	const q = `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE status = $1
		ORDER BY created_at DESC
	`

	var ls []models.Listing
	if err := r.db.SelectContext(ctx, &ls, q, status); err != nil {
		return nil, fmt.Errorf("listing list by status: %w", err)
	}
	for i := range ls {
		if err := ls[i].Validate(); err != nil {
			return nil, fmt.Errorf("listing row %s: %w", ls[i].ID, err)
		}
	}

	return ls, nil
}

func (r *ListingRepo) SetModerationTx(ctx context.Context, tx repository.Tx, id uuid.UUID, status models.Status, reason *string) (*models.Listing, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidArgument
	}

	t, err := sqlxTx(tx)
	if err != nil {
		return nil, err
	}

	const q = `
		UPDATE listings
		SET status = $2, rejection_reason = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + listingColumns + `
	`

	var l models.Listing
	if err := t.GetContext(ctx, &l, q, id, status, reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("listing set moderation: %w", err)
	}

	return &l, nil
}

func (r *ListingRepo) AddGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error {
	if listingID == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if len(genreIDs) == 0 {
		return nil
	}

	return r.insertGenres(ctx, r.db, listingID, genreIDs)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ListingRepo) insertGenres(ctx context.Context, e execer, listingID uuid.UUID, genreIDs []int64) error {
	// Одна команда на весь набор; дубликаты пар глушит уникальный индекс
	values := make([]string, 0, len(genreIDs))
	args := make([]any, 0, len(genreIDs)+1)
	args = append(args, listingID)
	for i, gid := range genreIDs {
		values = append(values, fmt.Sprintf("($1, $%d)", i+2))
		args = append(args, gid)
	}

	q := `
		INSERT INTO listing_genres (listing_id, genre_id)
		VALUES ` + strings.Join(values, ", ") + `
		ON CONFLICT (listing_id, genre_id) DO NOTHING
	`
	if _, err := e.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("listing genres insert: %w", err)
	}
	return nil
}

func (r *ListingRepo) ReplaceGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error {
	if listingID == uuid.Nil {
		return models.ErrInvalidArgument
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_genres WHERE listing_id = $1`, listingID); err != nil {
		return fmt.Errorf("listing genres delete: %w", err)
	}
	if len(genreIDs) > 0 {
		if err := r.insertGenres(ctx, tx, listingID, genreIDs); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *ListingRepo) SetGenreLabel(ctx context.Context, listingID uuid.UUID, label *string) error {
	if listingID == uuid.Nil {
		return models.ErrInvalidArgument
	}

	const q = `
		UPDATE listings
		SET genre = $2, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, q, listingID, label)
	if err != nil {
		return fmt.Errorf("listing set genre label: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *ListingRepo) GenreIDs(ctx context.Context, listingID uuid.UUID) ([]int64, error) {
	if listingID == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}

	const q = `
		SELECT genre_id
		FROM listing_genres
		WHERE listing_id = $1
		ORDER BY genre_id ASC
	`

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, q, listingID); err != nil {
		return nil, fmt.Errorf("listing genre ids: %w", err)
	}
	return ids, nil
}
