package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaKeywordMatch matches catalog items whose title, description or tags
// contain any of the keywords (case-insensitive).
type MediaKeywordMatch struct {
	Keywords []string
}

func (s MediaKeywordMatch) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Keywords) == 0 {
		return db
	}

	query := db.Session(&gorm.Session{NewDB: true})
	for _, kw := range s.Keywords {
		pattern := "%" + kw + "%"
		query = query.Or("title ILIKE ? OR description ILIKE ? OR tags ILIKE ?", pattern, pattern, pattern)
	}
	return db.Where(query)
}

// ByMediaType filters by "image" or "video".
type ByMediaType struct {
	MediaType string
}

func (s ByMediaType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("media_type = ?", s.MediaType)
}

// ByDocumentID filters embeddings by their parent knowledge document.
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}
