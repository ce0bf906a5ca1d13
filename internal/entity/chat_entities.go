package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id        uuid.UUID
	UserId    *uuid.UUID // nil for anonymous sessions
	Title     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type ChatMessage struct {
	Id            uuid.UUID
	Chat          string
	Role          string
	Source        string // "text" or "transcript"
	ChatSessionId uuid.UUID
	CreatedAt     time.Time
}
