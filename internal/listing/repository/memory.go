package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	data   map[uuid.UUID]*models.Listing
	genres map[uuid.UUID]map[int64]struct{}
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data:   make(map[uuid.UUID]*models.Listing),
		genres: make(map[uuid.UUID]map[int64]struct{}),
	}
}

// memTx — in-memory заглушка, мутации применяются сразу.
type memTx struct{}

func (memTx) Commit() error   { return nil }
func (memTx) Rollback() error { return nil }

func (r *MemoryRepository) BeginTx(ctx context.Context) (Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return memTx{}, nil
}

func (r *MemoryRepository) CreateTx(ctx context.Context, _ Tx, l *models.Listing) error {
	if l == nil {
		return models.ErrInvalidArgument
	}
	if l.Status != models.PendingStatus {
		return fmt.Errorf("%w: new listing must be pending, got %q", models.ErrInvalidArgument, l.Status)
	}
	if err := l.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[l.ID]; exists {
		return models.ErrConflict
	}

	// Защитная копия, чтобы внешняя сторона не могла мутировать хранимый объект
	cp := *l
	r.data[l.ID] = &cp

	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.data[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	cp := *l
	return &cp, nil
}

func (r *MemoryRepository) ListByStatus(ctx context.Context, status models.Status) ([]models.Listing, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Listing, 0)
	for _, l := range r.data {
		if l.Status == status {
			out = append(out, *l)
		}
	}

	// created_at DESC — новые сверху, как в очереди модерации
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *MemoryRepository) SetModerationTx(ctx context.Context, _ Tx, id uuid.UUID, status models.Status, reason *string) (*models.Listing, error) {
	if id == uuid.Nil || !status.Valid() {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.data[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	l.Status = status
	l.RejectionReason = reason
	l.UpdatedAt = time.Now()

	cp := *l
	return &cp, nil
}

func (r *MemoryRepository) AddGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error {
	if listingID == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(genreIDs) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[listingID]; !ok {
		return models.ErrNotFound
	}

	set, ok := r.genres[listingID]
	if !ok {
		set = make(map[int64]struct{})
		r.genres[listingID] = set
	}
	for _, id := range genreIDs {
		set[id] = struct{}{}
	}

	return nil
}

func (r *MemoryRepository) ReplaceGenres(ctx context.Context, listingID uuid.UUID, genreIDs []int64) error {
	if listingID == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[listingID]; !ok {
		return models.ErrNotFound
	}

	set := make(map[int64]struct{}, len(genreIDs))
	for _, id := range genreIDs {
		set[id] = struct{}{}
	}
	r.genres[listingID] = set

	return nil
}

func (r *MemoryRepository) SetGenreLabel(ctx context.Context, listingID uuid.UUID, label *string) error {
	if listingID == uuid.Nil {
		return models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.data[listingID]
	if !ok {
		return models.ErrNotFound
	}
	l.Genre = label
	l.UpdatedAt = time.Now()

	return nil
}

func (r *MemoryRepository) GenreIDs(ctx context.Context, listingID uuid.UUID) ([]int64, error) {
	if listingID == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.genres[listingID]
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out, nil
}

// MemoryTaxonomy serves static reference data seeded at construction.
type MemoryTaxonomy struct {
	categories []models.GenreCategory
	genres     []models.Genre
}

func NewMemoryTaxonomy(categories []models.GenreCategory, genres []models.Genre) *MemoryTaxonomy {
	cats := make([]models.GenreCategory, len(categories))
	copy(cats, categories)
	sort.SliceStable(cats, func(i, j int) bool { return cats[i].SortOrder < cats[j].SortOrder })

	gs := make([]models.Genre, len(genres))
	copy(gs, genres)
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].SortOrder < gs[j].SortOrder })

	return &MemoryTaxonomy{categories: cats, genres: gs}
}

func (t *MemoryTaxonomy) Categories(ctx context.Context) ([]models.GenreCategory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.GenreCategory, len(t.categories))
	copy(out, t.categories)
	return out, nil
}

func (t *MemoryTaxonomy) ActiveGenres(ctx context.Context) ([]models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Genre, 0, len(t.genres))
	for _, g := range t.genres {
		if g.IsActive {
			out = append(out, g)
		}
	}
	return out, nil
}
