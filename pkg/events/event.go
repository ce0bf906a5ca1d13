package events

import "time"

// Event is the contract for everything published on the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "USER_REGISTERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes.
const (
	TypeUserRegistered    = "USER_REGISTERED"
	TypeUserLogin         = "USER_LOGIN"
	TypeDocumentIngested  = "DOCUMENT_INGESTED"
	TypeAssistantReplied  = "ASSISTANT_REPLIED"
)

// NewUserRegisteredEvent announces a completed registration, whether via
// the auth endpoint or the conversational flow.
func NewUserRegisteredEvent(userID, name, email, faculty string) BaseEvent {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userID,
			"name":    name,
			"email":   email,
			"faculty": faculty,
		},
		OccurredAt: time.Now(),
	}
}

// NewDocumentIngestedEvent announces that a knowledge document finished
// chunking and embedding.
func NewDocumentIngestedEvent(documentID, title string, chunks int) BaseEvent {
	return BaseEvent{
		Type: TypeDocumentIngested,
		Data: map[string]interface{}{
			"document_id": documentID,
			"title":       title,
			"chunks":      chunks,
		},
		OccurredAt: time.Now(),
	}
}

// NewAssistantRepliedEvent announces a completed conversational turn.
func NewAssistantRepliedEvent(sessionID, userID string) BaseEvent {
	return BaseEvent{
		Type: TypeAssistantReplied,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now(),
	}
}
