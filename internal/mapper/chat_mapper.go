package mapper

import (
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) SessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	updatedAt := s.UpdatedAt
	return &entity.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: &updatedAt,
	}
}

func (m *ChatMapper) SessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	out := &model.ChatSession{
		Id:        s.Id,
		UserId:    s.UserId,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
	}
	if s.UpdatedAt != nil {
		out.UpdatedAt = *s.UpdatedAt
	}
	return out
}

func (m *ChatMapper) SessionsToEntities(sessions []*model.ChatSession) []*entity.ChatSession {
	entities := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		entities[i] = m.SessionToEntity(s)
	}
	return entities
}

func (m *ChatMapper) MessageToEntity(c *model.ChatMessage) *entity.ChatMessage {
	if c == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:            c.Id,
		Chat:          c.Chat,
		Role:          c.Role,
		Source:        c.Source,
		ChatSessionId: c.ChatSessionId,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) MessageToModel(c *entity.ChatMessage) *model.ChatMessage {
	if c == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:            c.Id,
		Chat:          c.Chat,
		Role:          c.Role,
		Source:        c.Source,
		ChatSessionId: c.ChatSessionId,
		CreatedAt:     c.CreatedAt,
	}
}

func (m *ChatMapper) MessagesToEntities(messages []*model.ChatMessage) []*entity.ChatMessage {
	entities := make([]*entity.ChatMessage, len(messages))
	for i, c := range messages {
		entities[i] = m.MessageToEntity(c)
	}
	return entities
}
