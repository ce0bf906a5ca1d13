package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"admission-assistant-be/internal/config"
	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/events"
	"admission-assistant-be/pkg/kyc"
	"admission-assistant-be/pkg/llm"
	pktNats "admission-assistant-be/pkg/nats"
	"admission-assistant-be/pkg/rag/media"
	"admission-assistant-be/pkg/rag/response"
	"admission-assistant-be/pkg/rag/retriever"
	"admission-assistant-be/pkg/rag/signals"
	"admission-assistant-be/pkg/tokens"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("chat session not found")

// historyFetchLimit bounds how many stored messages are loaded before the
// token-budget trim runs.
const historyFetchLimit = 50

const defaultSessionTitle = "New conversation"

type IChatService interface {
	CreateSession(ctx context.Context, userId *uuid.UUID) (*dto.CreateSessionResponse, error)
	GetSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error)
	GetHistory(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error)
	DeleteSession(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) error
	SendChat(ctx context.Context, userId *uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	decider        *media.Decider
	searcher       *media.Searcher
	selector       *media.Selector
	retriever      *retriever.Retriever
	generator      *response.Generator
	kycManager     *kyc.Manager
	eventPublisher *pktNats.Publisher
	chatCfg        config.ChatConfig
	log            logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	decider *media.Decider,
	searcher *media.Searcher,
	selector *media.Selector,
	passageRetriever *retriever.Retriever,
	generator *response.Generator,
	kycManager *kyc.Manager,
	eventPublisher *pktNats.Publisher,
	chatCfg config.ChatConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:     uowFactory,
		decider:        decider,
		searcher:       searcher,
		selector:       selector,
		retriever:      passageRetriever,
		generator:      generator,
		kycManager:     kycManager,
		eventPublisher: eventPublisher,
		chatCfg:        chatCfg,
		log:            log,
	}
}

func (s *chatService) CreateSession(ctx context.Context, userId *uuid.UUID) (*dto.CreateSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     defaultSessionTitle,
		CreatedAt: time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}

	welcome := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          constant.AssistantWelcomeMessage,
		Role:          constant.ChatMessageRoleModel,
		Source:        constant.ChatSourceText,
		ChatSessionId: session.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, welcome); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.CreateSessionResponse{
		Id:      session.Id,
		Welcome: constant.AssistantWelcomeMessage,
	}, nil
}

func (s *chatService) GetSessions(ctx context.Context, userId uuid.UUID) ([]dto.GetAllSessionsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.GetAllSessionsResponse, 0, len(sessions))
	for _, session := range sessions {
		result = append(result, dto.GetAllSessionsResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
		})
	}
	return result, nil
}

func (s *chatService) GetHistory(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) ([]dto.GetChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]dto.GetChatHistoryResponse, 0, len(messages))
	for _, message := range messages {
		result = append(result, dto.GetChatHistoryResponse{
			Id:        message.Id,
			Role:      message.Role,
			Chat:      message.Chat,
			Source:    message.Source,
			CreatedAt: message.CreatedAt,
		})
	}
	return result, nil
}

func (s *chatService) DeleteSession(ctx context.Context, userId *uuid.UUID, sessionId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.ownedSession(ctx, uow, userId, sessionId); err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ChatMessageRepository().DeleteBySessionId(ctx, sessionId); err != nil {
		return err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		return err
	}

	return uow.Commit()
}

// SendChat runs one conversational turn: budget check, registration flow
// for unauthenticated sessions, then the media / retrieval / generation
// pipeline. Every stage except generation degrades silently.
func (s *chatService) SendChat(ctx context.Context, userId *uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.ownedSession(ctx, uow, userId, req.ChatSessionId)
	if err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = constant.ChatSourceText
	}

	if err := tokens.CheckInput(req.Chat, s.chatCfg.MaxInputTokens); err != nil {
		reply := fmt.Sprintf(constant.InputTooLongMessage, s.chatCfg.MaxInputTokens)
		if err := s.persistTurn(ctx, uow, session, req.Chat, source, reply); err != nil {
			return nil, err
		}
		return &dto.SendChatResponse{ChatSessionId: session.Id, Reply: reply}, nil
	}

	if userId == nil {
		if outcome := s.kycManager.Handle(ctx, session.Id.String(), req.Chat); outcome.Handled {
			return s.finishKycTurn(ctx, uow, session, req.Chat, source, outcome)
		}
	}

	history := s.loadHistory(ctx, uow, session.Id)
	history = tokens.TrimHistory(history, s.chatCfg.HistoryTokenBudget)

	selection := s.runMediaStages(ctx, req.Chat)
	passages := s.retriever.Retrieve(ctx, req.Chat)

	in := response.Input{
		Query:             req.Chat,
		Passages:          passages,
		ImageDescriptions: selection.ImageDescriptions,
		VideoDescriptions: selection.VideoDescriptions,
		History:           history,
	}
	if userId != nil {
		if user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *userId}); err == nil && user != nil {
			in.UserName = user.Name
			in.UserFaculty = user.Faculty
		}
	}

	answer := s.generator.Generate(ctx, in)
	sig := signals.Extract(answer)
	reply := signals.Strip(answer)

	if err := s.persistTurn(ctx, uow, session, req.Chat, source, reply); err != nil {
		return nil, err
	}
	s.publishReplied(ctx, session, userId)

	return &dto.SendChatResponse{
		ChatSessionId:      session.Id,
		Reply:              reply,
		SelectedImages:     selection.SelectedImages,
		SelectedVideos:     selection.SelectedVideos,
		CompletionStatus:   sig.CompletionStatus,
		ShowRegisterButton: sig.ShowRegisterButton,
	}, nil
}

// runMediaStages chains decision, search and selection. Any stage can
// leave the turn with no media.
func (s *chatService) runMediaStages(ctx context.Context, query string) media.Selection {
	decision := s.decider.Decide(ctx, query)
	if !decision.IncludeMedia {
		return media.Selection{}
	}

	images, videos := s.searcher.Search(ctx, decision.Keywords)
	if len(images) == 0 && len(videos) == 0 {
		return media.Selection{}
	}

	return s.selector.Select(ctx, query, images, videos)
}

func (s *chatService) finishKycTurn(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, chat, source string, outcome kyc.Outcome) (*dto.SendChatResponse, error) {
	if err := s.persistTurn(ctx, uow, session, chat, source, outcome.Reply); err != nil {
		return nil, err
	}

	resp := &dto.SendChatResponse{
		ChatSessionId:      session.Id,
		Reply:              outcome.Reply,
		CompletionStatus:   outcome.CompletionStatus,
		ShowRegisterButton: outcome.ShowRegisterButton,
	}

	if outcome.Registration != nil {
		if newUserId, err := uuid.Parse(outcome.Registration.UserID); err == nil {
			if err := uow.ChatSessionRepository().AttachUser(ctx, session.Id, newUserId); err != nil {
				s.log.Warn("chat_service", "failed to attach session to new user", map[string]interface{}{
					"session_id": session.Id.String(),
					"user_id":    outcome.Registration.UserID,
					"error":      err.Error(),
				})
			}
		}
		resp.Auth = &dto.ChatAuthResponse{
			UserName:     outcome.Registration.UserName,
			AccessToken:  outcome.Registration.AccessToken,
			RefreshToken: outcome.Registration.RefreshToken,
		}
	}

	s.publishReplied(ctx, session, nil)
	return resp, nil
}

// loadHistory returns prior messages oldest-first as chat turns. Load
// failures degrade to an empty history.
func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) []llm.Message {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: historyFetchLimit},
	)
	if err != nil {
		s.log.Warn("chat_service", "failed to load history", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil
	}

	history := make([]llm.Message, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		role := messages[i].Role
		if role == constant.ChatMessageRoleModel {
			role = "assistant"
		}
		history = append(history, llm.Message{
			Role:    role,
			Content: messages[i].Chat,
		})
	}
	return history
}

func (s *chatService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, chat, source, reply string) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          chat,
		Role:          constant.ChatMessageRoleUser,
		Source:        source,
		ChatSessionId: session.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return err
	}

	modelMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		Chat:          reply,
		Role:          constant.ChatMessageRoleModel,
		Source:        constant.ChatSourceText,
		ChatSessionId: session.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, modelMessage); err != nil {
		return err
	}

	if session.Title == defaultSessionTitle || session.Title == "" {
		session.Title = sessionTitle(chat)
		if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
			return err
		}
	}

	return uow.Commit()
}

func (s *chatService) publishReplied(ctx context.Context, session *entity.ChatSession, userId *uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	uid := ""
	if userId != nil {
		uid = userId.String()
	}
	event := events.NewAssistantRepliedEvent(session.Id.String(), uid)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("chat_service", "failed to publish reply event", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
}

// ownedSession loads the session and enforces ownership: an anonymous
// caller may only touch anonymous sessions, an authenticated caller only
// their own.
func (s *chatService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId *uuid.UUID, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.UserId != nil {
		if userId == nil || *userId != *session.UserId {
			return nil, ErrSessionNotFound
		}
	}
	return session, nil
}

func sessionTitle(chat string) string {
	const maxTitleLen = 80
	runes := []rune(chat)
	if len(runes) <= maxTitleLen {
		return chat
	}
	return string(runes[:maxTitleLen]) + "…"
}
