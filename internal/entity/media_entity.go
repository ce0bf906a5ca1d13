package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaItem is one catalog asset (campus photo or tour video) the
// assistant can attach to a reply. Tags is a comma-separated keyword
// list maintained by content editors.
type MediaItem struct {
	Id          uuid.UUID
	MediaType   string // "image" or "video"
	URL         string
	Title       string
	Description string
	Tags        string
	CreatedAt   time.Time
}
