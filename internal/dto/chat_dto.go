package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id      uuid.UUID `json:"id"`
	Welcome string    `json:"welcome"`
}

type GetAllSessionsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required"`
	Source        string    `json:"source,omitempty" validate:"omitempty,oneof=text transcript"`
}

type DeleteSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
}

type SendChatResponse struct {
	ChatSessionId      uuid.UUID         `json:"chat_session_id"`
	Reply              string            `json:"reply"`
	SelectedImages     []string          `json:"selected_images,omitempty"`
	SelectedVideos     []string          `json:"selected_videos,omitempty"`
	CompletionStatus   bool              `json:"completion_status"`
	ShowRegisterButton bool              `json:"show_register_button"`
	Auth               *ChatAuthResponse `json:"auth,omitempty"` // present when the turn completed a registration
}

// ChatAuthResponse carries the tokens issued when a registration completes
// mid-conversation.
type ChatAuthResponse struct {
	UserName     string `json:"user_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
