package domain

import (
	"fmt"

	"github.com/romariotrain/moderation-platform/internal/listing/models"
)

// CanTransition reports whether a moderation write may move a listing
// between two states. Pending is entry-only: listings are born pending
// and never return there. Approve and reject may overwrite each other,
// so a moderator can reverse a decision in either direction.
func CanTransition(from, to models.Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	return to == models.ApprovedStatus || to == models.RejectedStatus
}

func ValidateTransition(from, to models.Status) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
