package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	PendingStatus  Status = "pending"
	ApprovedStatus Status = "approved"
	RejectedStatus Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case PendingStatus, ApprovedStatus, RejectedStatus:
		return true
	default:
		return false
	}
}

// GenreLabelSeparator joins selected genre names into the legacy
// free-text genre column on a listing.
const GenreLabelSeparator = " / "

type Listing struct {
	ID              uuid.UUID `db:"id"`
	Status          Status    `db:"status"`
	CreatorName     string    `db:"creator_name"`
	CreatorEmail    *string   `db:"creator_email"`
	Title           string    `db:"title"`
	VideoURL        string    `db:"video_url"`
	EmbedURL        string    `db:"embed_url"`
	Genre           *string   `db:"genre"`
	Memo            *string   `db:"memo"`
	RejectionReason *string   `db:"rejection_reason"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Validate checks a listing row as read from (or about to be written to)
// the store. The store is remote and loosely typed, so rows are checked
// here instead of trusted at read time.
func (l *Listing) Validate() error {
	if l.ID == uuid.Nil {
		return fmt.Errorf("%w: listing id is empty", ErrInvalidArgument)
	}
	if !l.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, l.Status)
	}
	if l.CreatorName == "" {
		return fmt.Errorf("%w: creator_name is empty", ErrInvalidArgument)
	}
	if l.Title == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidArgument)
	}
	if l.VideoURL == "" {
		return fmt.Errorf("%w: video_url is empty", ErrInvalidArgument)
	}
	if l.EmbedURL == "" {
		return fmt.Errorf("%w: embed_url is empty", ErrInvalidArgument)
	}
	// Причина отказа живёт только вместе со статусом rejected
	if l.RejectionReason != nil && l.Status != RejectedStatus {
		return fmt.Errorf("%w: rejection_reason set on %s listing", ErrInvalidArgument, l.Status)
	}
	return nil
}

type GenreCategory struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	SortOrder int64  `db:"sort_order"`
}

type Genre struct {
	ID         int64  `db:"id"`
	CategoryID int64  `db:"genre_category_id"`
	Name       string `db:"name"`
	SortOrder  int64  `db:"sort_order"`
	IsActive   bool   `db:"is_active"`
}
