package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/romariotrain/moderation-platform/internal/listing/domain"
	"github.com/romariotrain/moderation-platform/internal/listing/embedurl"
	"github.com/romariotrain/moderation-platform/internal/listing/models"
	"github.com/romariotrain/moderation-platform/internal/listing/repository"
)

// Таксономия — статичный справочник, кэшируем на taxonomyTTL.
const taxonomyTTL = 5 * time.Minute

type Service struct {
	listings repository.ListingRepository
	taxonomy repository.TaxonomyRepository
	outbox   repository.OutboxRepository
	clock    func() time.Time
	idGen    func() uuid.UUID

	catCache   *expirable.LRU[string, []models.GenreCategory]
	genreCache *expirable.LRU[string, []models.Genre]
}

func New(listings repository.ListingRepository, taxonomy repository.TaxonomyRepository, outbox repository.OutboxRepository) *Service {
	return &Service{
		listings:   listings,
		taxonomy:   taxonomy,
		outbox:     outbox,
		clock:      time.Now,
		idGen:      uuid.New,
		catCache:   expirable.NewLRU[string, []models.GenreCategory](1, nil, taxonomyTTL),
		genreCache: expirable.NewLRU[string, []models.Genre](1, nil, taxonomyTTL),
	}
}

// SubmitListing is the anonymous intake payload. There is deliberately no
// status field: every submission starts pending.
type SubmitListing struct {
	CreatorName  string
	CreatorEmail string
	Title        string
	VideoURL     string
	Memo         string
	GenreIDs     []int64
}

// Submit validates the payload, persists a pending listing together with
// its outbox event, then attaches genre tags. The tag write happens after
// the listing transaction on purpose: if tagging fails the listing stays
// in the queue and the caller gets the created listing alongside an error
// wrapping models.ErrPartialWrite.
func (s *Service) Submit(ctx context.Context, in SubmitListing) (*models.Listing, error) {
	creatorName := strings.TrimSpace(in.CreatorName)
	if creatorName == "" {
		return nil, models.NewValidationError("creator_name", "must not be empty")
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("title", "must not be empty")
	}
	videoURL := strings.TrimSpace(in.VideoURL)
	if videoURL == "" {
		return nil, models.NewValidationError("video_url", "must not be empty")
	}

	genreIDs, genreLabel, err := s.resolveGenres(ctx, in.GenreIDs)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	l := &models.Listing{
		ID:          s.idGen(),
		Status:      models.PendingStatus,
		CreatorName: creatorName,
		Title:       title,
		VideoURL:    videoURL,
		EmbedURL:    embedurl.Normalize(videoURL),
		Genre:       genreLabel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if email := strings.TrimSpace(in.CreatorEmail); email != "" {
		l.CreatorEmail = &email
	}
	if memo := strings.TrimSpace(in.Memo); memo != "" {
		l.Memo = &memo
	}

	tx, err := s.listings.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := s.listings.CreateTx(ctx, tx, l); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	if err := s.outbox.Add(ctx, tx, models.NewListingSubmitted(l.ID, l.Title)); err != nil {
		return nil, fmt.Errorf("add outbox: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	// Привязка жанров идёт отдельной записью, без отката листинга
	if len(genreIDs) > 0 {
		if err := s.listings.AddGenres(ctx, l.ID, genreIDs); err != nil {
			return l, fmt.Errorf("attach genres: %w: %w", models.ErrPartialWrite, err)
		}
	}

	return l, nil
}

// resolveGenres checks selected ids against the active-genre set and
// builds the legacy label in selection order. Duplicates in the selection
// collapse to the first occurrence.
func (s *Service) resolveGenres(ctx context.Context, selected []int64) ([]int64, *string, error) {
	if len(selected) == 0 {
		return nil, nil, nil
	}

	genres, err := s.ActiveGenres(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load genres: %w", err)
	}
	nameByID := make(map[int64]string, len(genres))
	for _, g := range genres {
		nameByID[g.ID] = g.Name
	}

	ids := make([]int64, 0, len(selected))
	names := make([]string, 0, len(selected))
	seen := make(map[int64]struct{}, len(selected))
	for _, id := range selected {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		name, ok := nameByID[id]
		if !ok {
			return nil, nil, models.NewValidationError("genre_ids", fmt.Sprintf("unknown or inactive genre %d", id))
		}
		ids = append(ids, id)
		names = append(names, name)
	}

	label := strings.Join(names, models.GenreLabelSeparator)
	return ids, &label, nil
}

func (s *Service) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	return s.listings.GetByID(ctx, id)
}

// PendingListings is the moderation queue view: pending only, newest
// first. Callers re-invoke to refresh; this is not a subscription.
func (s *Service) PendingListings(ctx context.Context) ([]models.Listing, error) {
	return s.listings.ListByStatus(ctx, models.PendingStatus)
}

// PublishedListings is the public feed: approved only, newest first. An
// empty slice is a normal result, not an error.
func (s *Service) PublishedListings(ctx context.Context) ([]models.Listing, error) {
	return s.listings.ListByStatus(ctx, models.ApprovedStatus)
}

// Approve moves a listing to approved and unconditionally clears the
// rejection reason. The write is issued even when the listing is already
// approved, so re-approving is an idempotent no-op in effect.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return s.moderate(ctx, id, models.ApprovedStatus, nil)
}

// Reject moves a listing to rejected. The reason is an explicit required
// parameter; an empty-after-trimming reason is stored as unset.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason string) (*models.Listing, error) {
	var rp *string
	if trimmed := strings.TrimSpace(reason); trimmed != "" {
		rp = &trimmed
	}
	return s.moderate(ctx, id, models.RejectedStatus, rp)
}

func (s *Service) moderate(ctx context.Context, id uuid.UUID, to models.Status, reason *string) (*models.Listing, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}

	// Текущий статус нужен для события и проверки перехода
	cur, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(cur.Status, to); err != nil {
		return nil, err
	}

	tx, err := s.listings.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	updated, err := s.listings.SetModerationTx(ctx, tx, id, to, reason)
	if err != nil {
		return nil, err
	}

	event := models.NewListingModerated(id, cur.Status, to, reason)
	if err := s.outbox.Add(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("add outbox: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return updated, nil
}

// ListingGenres returns the ids of the genres attached to a listing.
func (s *Service) ListingGenres(ctx context.Context, id uuid.UUID) ([]int64, error) {
	if id == uuid.Nil {
		return nil, models.ErrInvalidArgument
	}
	return s.listings.GenreIDs(ctx, id)
}

// Retag replaces the whole association set for a listing. Tags are never
// edited in place.
func (s *Service) Retag(ctx context.Context, id uuid.UUID, genreIDs []int64) error {
	if id == uuid.Nil {
		return models.ErrInvalidArgument
	}

	ids, label, err := s.resolveGenres(ctx, genreIDs)
	if err != nil {
		return err
	}

	if _, err := s.listings.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.listings.ReplaceGenres(ctx, id, ids); err != nil {
		return fmt.Errorf("replace genres: %w", err)
	}
	// Легаси-метка идёт следом за тегами
	if err := s.listings.SetGenreLabel(ctx, id, label); err != nil {
		return fmt.Errorf("set genre label: %w", err)
	}

	return nil
}
