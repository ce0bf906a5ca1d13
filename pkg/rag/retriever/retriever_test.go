package retriever

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/contract"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

// fakeEmbedder records what it was asked to embed.
type fakeEmbedder struct {
	gotText     string
	gotTaskType string
	vector      []float32
	err         error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.gotText = text
	f.gotTaskType = taskType
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: f.vector},
	}, nil
}

type fakeEmbeddingRepo struct {
	count     int64
	chunks    []*contract.RetrievedChunk
	gotVector []float32
	gotLimit  int
}

func (f *fakeEmbeddingRepo) Create(ctx context.Context, e *entity.DocumentEmbedding) error { return nil }
func (f *fakeEmbeddingRepo) CreateBulk(ctx context.Context, e []*entity.DocumentEmbedding) error {
	return nil
}
func (f *fakeEmbeddingRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeEmbeddingRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (f *fakeEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentEmbedding, error) {
	return nil, nil
}
func (f *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return f.count, nil
}
func (f *fakeEmbeddingRepo) SearchSimilar(ctx context.Context, vector []float32, limit int) ([]*contract.RetrievedChunk, error) {
	f.gotVector = vector
	f.gotLimit = limit
	return f.chunks, nil
}

type fakeUow struct {
	embeddings *fakeEmbeddingRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error { return nil }
func (f *fakeUow) Rollback() error { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository { return nil }
func (f *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return nil }
func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return nil }
func (f *fakeUow) KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository {
	return nil
}
func (f *fakeUow) DocumentEmbeddingRepository() contract.DocumentEmbeddingRepository {
	return f.embeddings
}
func (f *fakeUow) MediaItemRepository() contract.MediaItemRepository { return nil }

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func TestRetrieveReturnsPassages(t *testing.T) {
	repo := &fakeEmbeddingRepo{
		count: 12,
		chunks: []*contract.RetrievedChunk{
			{Content: "FUE has six faculties.", DocumentTitle: "Faculties Overview"},
			{Content: "Tuition is paid per semester.", DocumentTitle: "Tuition"},
		},
	}
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2, 0.3}}
	r := NewRetriever(&fakeUowFactory{uow: &fakeUow{embeddings: repo}}, embedder, nopLogger{})

	passages := r.Retrieve(context.Background(), "What faculties do you offer?")

	if embedder.gotText != "What faculties do you offer?" {
		t.Errorf("embedded text = %q", embedder.gotText)
	}
	if embedder.gotTaskType != embedding.TaskTypeQuery {
		t.Errorf("task type = %q, want %q", embedder.gotTaskType, embedding.TaskTypeQuery)
	}
	if !reflect.DeepEqual(repo.gotVector, []float32{0.1, 0.2, 0.3}) {
		t.Errorf("search vector = %v", repo.gotVector)
	}
	want := []Passage{
		{Content: "FUE has six faculties.", DocumentTitle: "Faculties Overview"},
		{Content: "Tuition is paid per semester.", DocumentTitle: "Tuition"},
	}
	if !reflect.DeepEqual(passages, want) {
		t.Errorf("passages = %v", passages)
	}
}

func TestRetrieveEmptyKnowledgeBase(t *testing.T) {
	repo := &fakeEmbeddingRepo{count: 0}
	embedder := &fakeEmbedder{vector: []float32{1}}
	r := NewRetriever(&fakeUowFactory{uow: &fakeUow{embeddings: repo}}, embedder, nopLogger{})

	if passages := r.Retrieve(context.Background(), "anything"); passages != nil {
		t.Errorf("passages = %v, want none", passages)
	}
	if embedder.gotText != "" {
		t.Error("empty knowledge base must not spend an embedding call")
	}
}

func TestRetrieveEmbeddingFailureDegrades(t *testing.T) {
	repo := &fakeEmbeddingRepo{count: 3}
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}
	r := NewRetriever(&fakeUowFactory{uow: &fakeUow{embeddings: repo}}, embedder, nopLogger{})

	if passages := r.Retrieve(context.Background(), "anything"); passages != nil {
		t.Errorf("passages = %v, want none", passages)
	}
	if repo.gotVector != nil {
		t.Error("failed embedding must not reach the similarity search")
	}
}
