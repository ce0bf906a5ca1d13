package service

import (
	"context"
	"fmt"
	"time"

	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/pkg/mailer"
	"admission-assistant-be/internal/websocket"
	"admission-assistant-be/pkg/events"
	pktNats "admission-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

const notificationDurableName = "notification-worker"

// NotificationService reacts to bus events: welcome mail for new
// registrations and real-time pushes over the websocket hub.
type NotificationService struct {
	subscriber   *pktNats.Subscriber
	emailService mailer.IEmailService
	hub          *websocket.Hub
	log          logger.ILogger
}

func NewNotificationService(
	subscriber *pktNats.Subscriber,
	emailService mailer.IEmailService,
	hub *websocket.Hub,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		subscriber:   subscriber,
		emailService: emailService,
		hub:          hub,
		log:          log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.log.Warn("notification_service", "no bus connection, notifications disabled", nil)
		return
	}
	if err := s.subscriber.Subscribe("events.>", notificationDurableName, s.handleEvent); err != nil {
		s.log.Error("notification_service", "failed to subscribe to event bus", map[string]interface{}{"error": err.Error()})
		return
	}
	s.log.Info("notification_service", "listening on events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeUserRegistered:
		return s.onUserRegistered(event)
	case events.TypeAssistantReplied:
		s.onAssistantReplied(event)
	case events.TypeDocumentIngested:
		s.onDocumentIngested(event)
	}
	return nil
}

func (s *NotificationService) onUserRegistered(event events.Event) error {
	payload := event.Payload()
	name, _ := payload["name"].(string)
	email, _ := payload["email"].(string)
	faculty, _ := payload["faculty"].(string)

	if s.emailService != nil && email != "" {
		if err := s.emailService.SendWelcome(email, name, faculty); err != nil {
			s.log.Warn("notification_service", "failed to send welcome email", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
			// Redelivery would spam the inbox; log and move on.
		}
	}

	if userID, ok := parseUserID(payload); ok {
		s.hub.Send(userID, websocket.Notification{
			Type:      "registration_complete",
			Title:     "Welcome to FUE!",
			Message:   fmt.Sprintf("Hi %s, your account is ready.", name),
			CreatedAt: time.Now(),
		})
	}
	return nil
}

func (s *NotificationService) onAssistantReplied(event events.Event) {
	payload := event.Payload()
	userID, ok := parseUserID(payload)
	if !ok {
		return // anonymous turn, nobody to notify
	}

	s.hub.Send(userID, websocket.Notification{
		Type:    "assistant_replied",
		Title:   "Nour replied",
		Message: "Your conversation has a new answer.",
		Data: map[string]interface{}{
			"session_id": payload["session_id"],
		},
		CreatedAt: time.Now(),
	})
}

func (s *NotificationService) onDocumentIngested(event events.Event) {
	payload := event.Payload()
	title, _ := payload["title"].(string)

	s.hub.Broadcast(websocket.Notification{
		Type:      "knowledge_updated",
		Title:     "Knowledge base updated",
		Message:   fmt.Sprintf("New admission content is available: %s", title),
		CreatedAt: time.Now(),
	})
}

func parseUserID(payload map[string]interface{}) (uuid.UUID, bool) {
	raw, _ := payload["user_id"].(string)
	if raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
