package retriever

import (
	"context"

	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/embedding"
)

const defaultTopK = 5

// Passage is one retrieved knowledge chunk with its source document title.
type Passage struct {
	Content       string
	DocumentTitle string
}

// Retriever embeds the user query and pulls the nearest knowledge chunks
// from the vector store. Retrieval failures degrade to an empty context
// rather than failing the turn; the generator answers from persona alone.
type Retriever struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	topK              int
	log               logger.ILogger
}

func NewRetriever(uowFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider, log logger.ILogger) *Retriever {
	return &Retriever{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		topK:              defaultTopK,
		log:               log,
	}
}

// Retrieve returns the topK passages most similar to the query. An empty
// knowledge base is logged once per call and returns no passages.
func (r *Retriever) Retrieve(ctx context.Context, query string) []Passage {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	total, err := uow.DocumentEmbeddingRepository().Count(ctx)
	if err != nil {
		r.log.Warn("retriever", "embedding count failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if total == 0 {
		r.log.Warn("retriever", "knowledge base is empty", nil)
		return nil
	}

	resp, err := r.embeddingProvider.Generate(query, embedding.TaskTypeQuery)
	if err != nil {
		r.log.Warn("retriever", "query embedding failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	chunks, err := uow.DocumentEmbeddingRepository().SearchSimilar(ctx, resp.Embedding.Values, r.topK)
	if err != nil {
		r.log.Warn("retriever", "similarity search failed, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	passages := make([]Passage, 0, len(chunks))
	for _, chunk := range chunks {
		passages = append(passages, Passage{
			Content:       chunk.Content,
			DocumentTitle: chunk.DocumentTitle,
		})
	}
	return passages
}
