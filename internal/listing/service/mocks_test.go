package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
	"github.com/romariotrain/moderation-platform/internal/listing/repository"
)

type ListingStoreMock struct {
	mock.Mock
}

type txMock struct{}

func (txMock) Commit() error   { return nil }
func (txMock) Rollback() error { return nil }

func (m *ListingStoreMock) BeginTx(ctx context.Context) (repository.Tx, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(repository.Tx), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListingStoreMock) CreateTx(ctx context.Context, tx repository.Tx, l *models.Listing) error {
	args := m.Called(ctx, tx, l)
	return args.Error(0)
}

func (m *ListingStoreMock) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListingStoreMock) ListByStatus(ctx context.Context, status models.Status) ([]models.Listing, error) {
	args := m.Called(ctx, status)
	if v := args.Get(0); v != nil {
		return v.([]models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListingStoreMock) SetModerationTx(ctx context.Context, tx repository.Tx, id uuid.UUID, status models.Status, reason *string) (*models.Listing, error) {
	args := m.Called(ctx, tx, id, status, reason)
	if v := args.Get(0); v != nil {
		return v.(*models.Listing), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ListingStoreMock) AddGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error {
	args := m.Called(ctx, listingID, genreIDs)
	return args.Error(0)
}

func (m *ListingStoreMock) ReplaceGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error {
	args := m.Called(ctx, listingID, genreIDs)
	return args.Error(0)
}

func (m *ListingStoreMock) SetGenreLabel(ctx context.Context, listingID uuid.UUID, label *string) error {
	args := m.Called(ctx, listingID, label)
	return args.Error(0)
}

func (m *ListingStoreMock) GenreIDs(ctx context.Context, listingID uuid.UUID) ([]int64, error) {
	args := m.Called(ctx, listingID)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type TaxonomyStoreMock struct {
	mock.Mock
}

func (m *TaxonomyStoreMock) Categories(ctx context.Context) ([]models.GenreCategory, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.GenreCategory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaxonomyStoreMock) ActiveGenres(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Genre), args.Error(1)
	}
	return nil, args.Error(1)
}

type OutboxMock struct {
	mock.Mock
}

func (m *OutboxMock) Add(ctx context.Context, tx repository.Tx, event models.DomainEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}
