// Package domain contains the core business entities for Clipstream.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Video represents the metadata for an uploaded video.
// The actual media content lives elsewhere; this service only manages
// metadata, ownership and visibility.
type Video struct {
	// ID is the unique identifier for the video.
	ID uuid.UUID `json:"id"`

	// OwnerID is the ID of the user who uploaded this video.
	// Immutable after creation.
	OwnerID int64 `json:"owner_id"`

	// Title is the display title. Must be non-empty.
	Title string `json:"title"`

	// Description is free-form text describing the video.
	Description string `json:"description"`

	// Credits optionally attributes contributors.
	Credits *string `json:"credits,omitempty"`

	// IsPrivate hides the video from everyone except its owner.
	IsPrivate bool `json:"is_private"`

	// Likes is the number of likes. Never negative.
	Likes int64 `json:"likes"`

	// UploadedAt is the timestamp when the video was created.
	UploadedAt time.Time `json:"uploaded_at"`
}

// NewVideo creates a new Video owned by ownerID with default values.
func NewVideo(ownerID int64, title, description string) *Video {
	return &Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		IsPrivate:   false,
		Likes:       0,
		UploadedAt:  time.Now().UTC(),
	}
}

// VisibleTo reports whether the video may be returned to the given viewer.
// A zero viewerID means an anonymous caller. Public videos are visible to
// everyone; private videos only to their owner.
func (v *Video) VisibleTo(viewerID int64) bool {
	if !v.IsPrivate {
		return true
	}
	return IsOwner(viewerID, v.OwnerID)
}

// ValidateTitle checks that a video title is acceptable.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrVideoTitleEmpty
	}
	return nil
}
