package media

// Decision is the outcome of the media-relevance judgment for one query.
// Discarded after the turn.
type Decision struct {
	IncludeMedia bool
	Keywords     []string // at most 4, lowercased, deduplicated
}

// Selection is the narrowed media set fed into response generation.
type Selection struct {
	SelectedImages    []string `json:"selected_images"`
	SelectedVideos    []string `json:"selected_videos"`
	ImageDescriptions string   `json:"-"`
	VideoDescriptions string   `json:"-"`
}

// Candidate is one catalog row offered to the selection stage.
type Candidate struct {
	URL         string
	Description string
}

// Search-time caps; the selection stage narrows further.
const (
	MaxImageResults = 5
	MaxVideoResults = 3

	maxKeywords = 4
)
