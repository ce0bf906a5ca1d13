package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"admission-assistant-be/internal/config"
	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/contract"
	"admission-assistant-be/internal/repository/memory"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/embedding"
	"admission-assistant-be/pkg/kyc"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/rag/intent"
	"admission-assistant-be/pkg/rag/media"
	"admission-assistant-be/pkg/rag/response"
	"admission-assistant-be/pkg/rag/retriever"
	"admission-assistant-be/pkg/retry"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error { return nil }

// scriptedProvider pops queued Generate replies in order and answers every
// Chat call with the same reply.
type scriptedProvider struct {
	mu        sync.Mutex
	replies   []string
	chatReply string
	chatCalls int
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.replies) == 0 {
		return "", nil
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r, nil
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatCalls++
	return s.chatReply, nil
}

func (s *scriptedProvider) pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.replies)
}

type fakeSessionRepo struct {
	session *entity.ChatSession
	updated bool
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *entity.ChatSession) error { return nil }
func (f *fakeSessionRepo) Update(ctx context.Context, s *entity.ChatSession) error {
	f.updated = true
	return nil
}
func (f *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	return f.session, nil
}
func (f *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	if f.session == nil {
		return nil, nil
	}
	return []*entity.ChatSession{f.session}, nil
}
func (f *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeSessionRepo) AttachUser(ctx context.Context, sessionId uuid.UUID, userId uuid.UUID) error {
	return nil
}

type fakeMessageRepo struct {
	messages []*entity.ChatMessage
}

func (f *fakeMessageRepo) Create(ctx context.Context, m *entity.ChatMessage) error {
	f.messages = append(f.messages, m)
	return nil
}
func (f *fakeMessageRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeMessageRepo) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (f *fakeMessageRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error) {
	return nil, nil
}
func (f *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	return f.messages, nil
}
func (f *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.messages)), nil
}

type fakeUserRepo struct {
	user *entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	return f.user, nil
}
func (f *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}
func (f *fakeUserRepo) CreateRefreshToken(ctx context.Context, t *entity.UserRefreshToken) error {
	return nil
}
func (f *fakeUserRepo) FindRefreshToken(ctx context.Context, specs ...specification.Specification) (*entity.UserRefreshToken, error) {
	return nil, nil
}
func (f *fakeUserRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error { return nil }
func (f *fakeUserRepo) RevokeAllRefreshTokens(ctx context.Context, userId uuid.UUID) error {
	return nil
}

type fakeEmbeddingRepo struct {
	count int64
}

func (f *fakeEmbeddingRepo) Create(ctx context.Context, e *entity.DocumentEmbedding) error {
	return nil
}
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
	return nil, nil
}

type fakeUow struct {
	sessions   *fakeSessionRepo
	messages   *fakeMessageRepo
	users      *fakeUserRepo
	embeddings *fakeEmbeddingRepo
}

func (f *fakeUow) Begin(ctx context.Context) error { return nil }
func (f *fakeUow) Commit() error { return nil }
func (f *fakeUow) Rollback() error { return nil }

func (f *fakeUow) UserRepository() contract.UserRepository { return f.users }
func (f *fakeUow) ChatSessionRepository() contract.ChatSessionRepository { return f.sessions }
func (f *fakeUow) ChatMessageRepository() contract.ChatMessageRepository { return f.messages }
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

type stubEmbedder struct{}

func (stubEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{}, nil
}

type stubRegistrar struct{}

func (stubRegistrar) RegisterProfile(ctx context.Context, profile kyc.Profile) (*kyc.Registration, error) {
	return nil, fmt.Errorf("not under test")
}

var chatTestPolicy = retry.Policy{Retries: 1, BaseDelay: time.Millisecond, BackoffFactor: 2}

func newTestChatService(provider *scriptedProvider, uow *fakeUow, chatCfg config.ChatConfig) IChatService {
	factory := &fakeUowFactory{uow: uow}
	log := nopLogger{}

	kycManager := kyc.NewManager(
		intent.NewClassifier(provider, chatTestPolicy),
		kyc.NewExtractor(provider, chatTestPolicy, log),
		memory.NewKycProfileRepository(),
		stubRegistrar{},
		provider,
		chatTestPolicy,
		log,
	)

	return NewChatService(
		factory,
		media.NewDecider(provider, chatTestPolicy, log),
		media.NewSearcher(factory, log),
		media.NewSelector(provider, chatTestPolicy, log),
		retriever.NewRetriever(factory, stubEmbedder{}, log),
		response.NewGenerator(provider, chatTestPolicy, 0, log),
		kycManager,
		nil,
		chatCfg,
		log,
	)
}

func anonymousSession() (*fakeUow, *entity.ChatSession) {
	session := &entity.ChatSession{
		Id:        uuid.New(),
		Title:     defaultSessionTitle,
		CreatedAt: time.Now(),
	}
	uow := &fakeUow{
		sessions:   &fakeSessionRepo{session: session},
		messages:   &fakeMessageRepo{},
		users:      &fakeUserRepo{},
		embeddings: &fakeEmbeddingRepo{},
	}
	return uow, session
}

func TestSendChatInputTooLong(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"NONE"}}
	uow, session := anonymousSession()
	svc := newTestChatService(provider, uow, config.ChatConfig{MaxInputTokens: 2, HistoryTokenBudget: 100})

	resp, err := svc.SendChat(context.Background(), nil, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          strings.Repeat("word ", 20),
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}

	want := fmt.Sprintf(constant.InputTooLongMessage, 2)
	if resp.Reply != want {
		t.Errorf("Reply = %q, want %q", resp.Reply, want)
	}
	if provider.pending() != 1 || provider.chatCalls != 0 {
		t.Error("over-budget input must not spend a model call")
	}
	if len(uow.messages.messages) != 2 {
		t.Errorf("persisted %d messages, want the rejected turn stored", len(uow.messages.messages))
	}
}

func TestSendChatLoginIntentShortCircuits(t *testing.T) {
	provider := &scriptedProvider{replies: []string{"LOGIN"}, chatReply: "should not be used"}
	uow, session := anonymousSession()
	svc := newTestChatService(provider, uow, config.ChatConfig{MaxInputTokens: 100, HistoryTokenBudget: 100})

	resp, err := svc.SendChat(context.Background(), nil, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          "I want to login",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}

	if resp.Reply != constant.LoginPromptMessage {
		t.Errorf("Reply = %q", resp.Reply)
	}
	if provider.chatCalls != 0 {
		t.Error("login turn must not reach response generation")
	}
	if len(resp.SelectedImages) != 0 || len(resp.SelectedVideos) != 0 {
		t.Error("login turn must not run the media stages")
	}
	if len(uow.messages.messages) != 2 {
		t.Errorf("persisted %d messages, want 2", len(uow.messages.messages))
	}
}

func TestSendChatAuthenticatedEmptyContext(t *testing.T) {
	// Decision says no media, the knowledge base is empty: the turn must
	// still produce a coherent answer with empty media arrays.
	provider := &scriptedProvider{
		replies:   []string{"NO"},
		chatReply: "We offer engineering, pharmacy and four more faculties.",
	}
	uow, session := anonymousSession()
	userId := uuid.New()
	session.UserId = &userId
	uow.users.user = &entity.User{Id: userId, Name: "Sara", Faculty: "engineering"}

	svc := newTestChatService(provider, uow, config.ChatConfig{MaxInputTokens: 100, HistoryTokenBudget: 100})

	resp, err := svc.SendChat(context.Background(), &userId, &dto.SendChatRequest{
		ChatSessionId: session.Id,
		Chat:          "What engineering programs do you have?",
	})
	if err != nil {
		t.Fatalf("SendChat() error = %v", err)
	}

	if resp.Reply != "We offer engineering, pharmacy and four more faculties." {
		t.Errorf("Reply = %q", resp.Reply)
	}
	if provider.chatCalls != 1 {
		t.Errorf("chat calls = %d, want 1", provider.chatCalls)
	}
	if len(resp.SelectedImages) != 0 || len(resp.SelectedVideos) != 0 {
		t.Errorf("media = %v / %v, want none", resp.SelectedImages, resp.SelectedVideos)
	}
	if resp.CompletionStatus || resp.ShowRegisterButton {
		t.Error("plain answer must not raise the registration flags")
	}
	if len(uow.messages.messages) != 2 {
		t.Errorf("persisted %d messages, want 2", len(uow.messages.messages))
	}
	if !uow.sessions.updated {
		t.Error("first turn should replace the default session title")
	}
	if session.Title == defaultSessionTitle {
		t.Errorf("session title still %q", session.Title)
	}
}

func TestSendChatUnknownSession(t *testing.T) {
	provider := &scriptedProvider{}
	uow := &fakeUow{
		sessions:   &fakeSessionRepo{},
		messages:   &fakeMessageRepo{},
		users:      &fakeUserRepo{},
		embeddings: &fakeEmbeddingRepo{},
	}
	svc := newTestChatService(provider, uow, config.ChatConfig{MaxInputTokens: 100, HistoryTokenBudget: 100})

	_, err := svc.SendChat(context.Background(), nil, &dto.SendChatRequest{
		ChatSessionId: uuid.New(),
		Chat:          "hello",
	})
	if err != ErrSessionNotFound {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}
