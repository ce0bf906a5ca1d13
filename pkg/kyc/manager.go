package kyc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"admission-assistant-be/internal/constant"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/pkg/llm"
	"admission-assistant-be/pkg/rag/intent"
	"admission-assistant-be/pkg/rag/signals"
	"admission-assistant-be/pkg/retry"
)

// ErrEmailTaken is returned by a Registrar when the profile's email
// already has an account.
var ErrEmailTaken = errors.New("email already registered")

// ProfileStore keeps in-progress registration profiles keyed by chat
// session. Entries expire with the session.
type ProfileStore interface {
	Get(sessionID string) (*Profile, bool)
	Save(sessionID string, profile *Profile)
	Delete(sessionID string)
}

// Registrar persists a completed profile as a user account and signs the
// new user in.
type Registrar interface {
	RegisterProfile(ctx context.Context, profile Profile) (*Registration, error)
}

// Registration is the result of a completed sign-up.
type Registration struct {
	UserID       string
	UserName     string
	AccessToken  string
	RefreshToken string
}

// Outcome tells the chat pipeline what the registration flow did with a
// message. Handled=false means the message is ordinary conversation.
type Outcome struct {
	Handled            bool
	Reply              string
	CompletionStatus   bool
	ShowRegisterButton bool
	Registration       *Registration
}

// Manager drives the registration dialogue for unauthenticated sessions.
// It owns the session's profile accumulator: each message may contribute
// any subset of the required fields, in any order, and the reply guides
// the user toward whatever is still missing.
type Manager struct {
	classifier  *intent.Classifier
	extractor   *Extractor
	store       ProfileStore
	registrar   Registrar
	llmProvider llm.LLMProvider
	retryPolicy retry.Policy
	log         logger.ILogger
}

func NewManager(
	classifier *intent.Classifier,
	extractor *Extractor,
	store ProfileStore,
	registrar Registrar,
	llmProvider llm.LLMProvider,
	retryPolicy retry.Policy,
	log logger.ILogger,
) *Manager {
	return &Manager{
		classifier:  classifier,
		extractor:   extractor,
		store:       store,
		registrar:   registrar,
		llmProvider: llmProvider,
		retryPolicy: retryPolicy,
		log:         log,
	}
}

// Handle processes one message from an unauthenticated session. A session
// with no active profile only enters the flow on explicit register intent;
// login intent gets pointed at the login endpoint instead.
func (m *Manager) Handle(ctx context.Context, sessionID, userMessage string) Outcome {
	profile, active := m.store.Get(sessionID)

	if !active {
		switch m.classifier.Classify(ctx, userMessage) {
		case intent.IntentRegister:
			profile = &Profile{}
		case intent.IntentLogin:
			return Outcome{Handled: true, Reply: constant.LoginPromptMessage}
		default:
			return Outcome{}
		}
	}

	extracted := m.extractor.Extract(ctx, userMessage)
	profile.Merge(extracted)
	validationErrors := profile.Validate()
	missing := profile.Missing()

	m.log.Info("kyc_manager", "profile updated", map[string]interface{}{
		"session_id":        sessionID,
		"missing":           missing,
		"validation_errors": len(validationErrors),
	})

	if len(missing) == 0 && len(validationErrors) == 0 {
		return m.completeRegistration(ctx, sessionID, *profile, userMessage)
	}

	m.store.Save(sessionID, profile)
	reply := m.guidanceMessage(ctx, profile, missing, validationErrors, userMessage)
	return Outcome{Handled: true, Reply: reply}
}

// Active reports whether the session has an in-progress registration.
func (m *Manager) Active(sessionID string) bool {
	_, found := m.store.Get(sessionID)
	return found
}

func (m *Manager) completeRegistration(ctx context.Context, sessionID string, profile Profile, userMessage string) Outcome {
	registration, err := m.registrar.RegisterProfile(ctx, profile)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			profile.Email = ""
			m.store.Save(sessionID, &profile)
			return Outcome{
				Handled: true,
				Reply:   "This email is already registered. Please use a different email address or try logging in instead.",
			}
		}
		m.log.Error("kyc_manager", "registration failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return Outcome{
			Handled: true,
			Reply:   "❌ Registration failed due to a technical error. Please try again.",
		}
	}

	m.store.Delete(sessionID)

	reply := m.guidanceMessage(ctx, &profile, nil, nil, userMessage)
	return Outcome{
		Handled:            true,
		Reply:              reply,
		CompletionStatus:   true,
		ShowRegisterButton: true,
		Registration:       registration,
	}
}

// guidanceMessage generates the conversational reply for the current
// profile state. The model's control markers are stripped from the text;
// completion is decided by the accumulator, not by what the model claims.
func (m *Manager) guidanceMessage(ctx context.Context, profile *Profile, missing, validationErrors []string, userMessage string) string {
	if m.llmProvider == nil {
		return staticGuidance(profile, missing, validationErrors)
	}

	prompt := fmt.Sprintf(constant.KycGuidancePromptV1,
		profile.String(),
		renderList(missing),
		renderList(validationErrors),
		userMessage,
		strings.Join(Faculties, ", "),
	)

	raw, err := retry.Do(ctx, m.retryPolicy, func() (string, error) {
		return m.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0))
	})
	if err != nil {
		m.log.Warn("kyc_manager", "guidance generation failed, using static fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return staticGuidance(profile, missing, validationErrors)
	}

	reply := signals.Strip(raw)
	if strings.TrimSpace(reply) == "" {
		return staticGuidance(profile, missing, validationErrors)
	}
	return reply
}

var fieldLabels = map[string]string{
	"name":     "Your full name",
	"email":    "Your email address",
	"mobile":   "Your mobile number",
	"faculty":  "Your faculty of interest",
	"password": "Your password (minimum 6 characters)",
}

func staticGuidance(profile *Profile, missing, validationErrors []string) string {
	if len(missing) == 0 && len(validationErrors) == 0 {
		name := profile.Name
		if name == "" {
			name = "there"
		}
		return fmt.Sprintf("✅ Great, %s! Your information is complete. You can now ask questions about university admissions.", name)
	}

	var b strings.Builder
	b.WriteString("Please provide the following information to continue:\n\n")
	if len(missing) > 0 {
		b.WriteString("**Missing information:**\n")
		for _, field := range missing {
			b.WriteString("• " + fieldLabels[field] + "\n")
		}
	}
	if len(validationErrors) > 0 {
		b.WriteString("\n**Please correct:**\n")
		for _, e := range validationErrors {
			b.WriteString("• " + e + "\n")
		}
	}
	return b.String()
}

func renderList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
