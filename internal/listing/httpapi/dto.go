package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

type SubmitListingRequest struct {
	CreatorName  string  `json:"creator_name"`
	CreatorEmail string  `json:"creator_email,omitempty"`
	Title        string  `json:"title"`
	VideoURL     string  `json:"video_url"`
	Memo         string  `json:"memo,omitempty"`
	GenreIDs     []int64 `json:"genre_ids,omitempty"`
}

type SubmitListingResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	// Warning is set when the listing was created but tagging failed.
	Warning string `json:"warning,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type RetagRequest struct {
	GenreIDs []int64 `json:"genre_ids"`
}

type ListingResponse struct {
	ID              uuid.UUID `json:"id"`
	Status          string    `json:"status"`
	CreatorName     string    `json:"creator_name"`
	CreatorEmail    *string   `json:"creator_email,omitempty"`
	Title           string    `json:"title"`
	VideoURL        string    `json:"video_url"`
	EmbedURL        string    `json:"embed_url"`
	Genre           *string   `json:"genre,omitempty"`
	Memo            *string   `json:"memo,omitempty"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FeedItemResponse is the public feed entry. Position is the ordinal
// within the returned page, for display only — it is never persisted.
type FeedItemResponse struct {
	Position    int       `json:"position"`
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	CreatorName string    `json:"creator_name"`
	Genre       *string   `json:"genre,omitempty"`
	EmbedURL    string    `json:"embed_url"`
	CreatedAt   time.Time `json:"created_at"`
}

type CategoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortOrder int64  `json:"sort_order"`
}

type GenreResponse struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"genre_category_id"`
	Name       string `json:"name"`
	SortOrder  int64  `json:"sort_order"`
}

type TaxonomyResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Genres     []GenreResponse    `json:"genres"`
}

func toListingResponse(l *models.Listing) ListingResponse {
	return ListingResponse{
		ID:              l.ID,
		Status:          string(l.Status),
		CreatorName:     l.CreatorName,
		CreatorEmail:    l.CreatorEmail,
		Title:           l.Title,
		VideoURL:        l.VideoURL,
		EmbedURL:        l.EmbedURL,
		Genre:           l.Genre,
		Memo:            l.Memo,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func toFeedResponse(ls []models.Listing) []FeedItemResponse {
	out := make([]FeedItemResponse, 0, len(ls))
	for i, l := range ls {
		out = append(out, FeedItemResponse{
			Position:    i,
			ID:          l.ID,
			Title:       l.Title,
			CreatorName: l.CreatorName,
			Genre:       l.Genre,
			EmbedURL:    l.EmbedURL,
			CreatedAt:   l.CreatedAt,
		})
	}
	return out
}
