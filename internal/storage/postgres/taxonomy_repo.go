package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

// TaxonomyRepo reads the genre reference tables. The pipeline never
// writes them; rows are maintained out of band.
type TaxonomyRepo struct {
	db *sqlx.DB
}

func NewTaxonomyRepo(db *sqlx.DB) *TaxonomyRepo {
	return &TaxonomyRepo{db: db}
}

func (r *TaxonomyRepo) Categories(ctx context.Context) ([]models.GenreCategory, error) {
	const q = `
		SELECT id, name, sort_order
		FROM genre_categories
		ORDER BY sort_order ASC, id ASC
	`

	var cats []models.GenreCategory
	if err := r.db.SelectContext(ctx, &cats, q); err != nil {
		return nil, fmt.Errorf("categories select: %w", err)
	}
	return cats, nil
}

func (r *TaxonomyRepo) ActiveGenres(ctx context.Context) ([]models.Genre, error) {
	const q = `
		SELECT id, genre_category_id, name, sort_order, is_active
		FROM genres
		WHERE is_active = TRUE
		ORDER BY sort_order ASC, id ASC
	`

	var genres []models.Genre
	if err := r.db.SelectContext(ctx, &genres, q); err != nil {
		return nil, fmt.Errorf("genres select: %w", err)
	}
	return genres, nil
}
