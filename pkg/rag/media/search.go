package media

import (
	"context"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"
)

// Searcher looks up catalog media matching the keywords produced by the
// decision stage. Lookup failures never fail the turn: the pipeline simply
// proceeds without media.
type Searcher struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewSearcher(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) *Searcher {
	return &Searcher{
		uowFactory: uowFactory,
		log:        log,
	}
}

// Search returns up to MaxImageResults image candidates and MaxVideoResults
// video candidates whose title, description or tags match any keyword.
// Empty keywords mean the decision stage found nothing concrete to look up.
func (s *Searcher) Search(ctx context.Context, keywords []string) (images []Candidate, videos []Candidate) {
	if len(keywords) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	images = s.searchByType(ctx, uow, keywords, constant.MediaTypeImage, MaxImageResults)
	videos = s.searchByType(ctx, uow, keywords, constant.MediaTypeVideo, MaxVideoResults)
	return images, videos
}

func (s *Searcher) searchByType(ctx context.Context, uow unitofwork.UnitOfWork, keywords []string, mediaType string, limit int) []Candidate {
	items, err := uow.MediaItemRepository().FindAll(ctx,
		specification.MediaKeywordMatch{Keywords: keywords},
		specification.ByMediaType{MediaType: mediaType},
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		s.log.Warn("MediaSearcher", "Catalog lookup failed, continuing without media", map[string]interface{}{
			"media_type": mediaType,
			"keywords":   keywords,
			"error":      err.Error(),
		})
		return nil
	}

	candidates := make([]Candidate, 0, len(items))
	for _, item := range items {
		candidates = append(candidates, toCandidate(item))
	}
	return candidates
}

func toCandidate(item *entity.MediaItem) Candidate {
	description := item.Description
	if description == "" {
		description = item.Title
	}
	return Candidate{
		URL:         item.URL,
		Description: description,
	}
}
