package service

import (
	"context"
	"fmt"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

const (
	categoriesCacheKey = "categories"
	genresCacheKey     = "genres"
)

// Categories returns all genre categories in display order. The result is
// served from an expiring cache; on a store error the cache is left as is,
// so a previously loaded taxonomy survives a flaky read.
func (s *Service) Categories(ctx context.Context) ([]models.GenreCategory, error) {
	if cached, ok := s.catCache.Get(categoriesCacheKey); ok {
		return cached, nil
	}

	cats, err := s.taxonomy.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	s.catCache.Add(categoriesCacheKey, cats)
	return cats, nil
}

// ActiveGenres returns the genres offered to intake, in display order.
// Empty taxonomy is a valid state, not an error.
func (s *Service) ActiveGenres(ctx context.Context) ([]models.Genre, error) {
	if cached, ok := s.genreCache.Get(genresCacheKey); ok {
		return cached, nil
	}

	genres, err := s.taxonomy.ActiveGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	s.genreCache.Add(genresCacheKey, genres)
	return genres, nil
}
