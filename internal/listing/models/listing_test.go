package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func validListing() *Listing {
	now := time.Now()
	return &Listing{
		ID:          uuid.New(),
		Status:      PendingStatus,
		CreatorName: "@creator",
		Title:       "clip",
		VideoURL:    "https://youtu.be/abcdef12345",
		EmbedURL:    "https://www.youtube.com/embed/abcdef12345?autoplay=0&mute=0",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestListingValidate(t *testing.T) {
	require.NoError(t, validListing().Validate())

	tests := []struct {
		name   string
		mutate func(*Listing)
	}{
		{name: "nil id", mutate: func(l *Listing) { l.ID = uuid.Nil }},
		{name: "unknown status", mutate: func(l *Listing) { l.Status = "archived" }},
		{name: "empty creator name", mutate: func(l *Listing) { l.CreatorName = "" }},
		{name: "empty title", mutate: func(l *Listing) { l.Title = "" }},
		{name: "empty video url", mutate: func(l *Listing) { l.VideoURL = "" }},
		{name: "empty embed url", mutate: func(l *Listing) { l.EmbedURL = "" }},
		{
			name: "reason on pending listing",
			mutate: func(l *Listing) {
				r := "bad link"
				l.RejectionReason = &r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(l)
			require.ErrorIs(t, l.Validate(), ErrInvalidArgument)
		})
	}
}

func TestListingValidate_ReasonAllowedOnRejected(t *testing.T) {
	l := validListing()
	l.Status = RejectedStatus
	r := "bad link"
	l.RejectionReason = &r
	require.NoError(t, l.Validate())
}

func TestValidationError_WrapsInvalidArgument(t *testing.T) {
	err := NewValidationError("title", "must not be empty")
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, "title: must not be empty", err.Error())
}
