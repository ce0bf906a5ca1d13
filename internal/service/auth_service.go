package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"admission-assistant-be/internal/config"
	"admission-assistant-be/internal/dto"
	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/pkg/logger"
	"admission-assistant-be/internal/repository/specification"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/events"
	"admission-assistant-be/pkg/kyc"
	pktNats "admission-assistant-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error

	// RegisterProfile lets the conversational flow create accounts with
	// the same rules as the auth endpoint.
	RegisterProfile(ctx context.Context, profile kyc.Profile) (*kyc.Registration, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	authCfg        config.AuthConfig
	log            logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	authCfg config.AuthConfig,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		authCfg:        authCfg,
		log:            log,
	}
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func (s *authService) signAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(time.Duration(s.authCfg.AccessTokenTTLMins) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authCfg.JWTSecret))
}

func (s *authService) issueTokens(ctx context.Context, uow unitofwork.UnitOfWork, user *entity.User, ipAddress, userAgent string) (string, string, error) {
	accessToken, err := s.signAccessToken(user)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	rawRefreshToken := uuid.New().String()
	refreshEntity := &entity.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		TokenHash: hashToken(rawRefreshToken),
		ExpiresAt: time.Now().Add(time.Duration(s.authCfg.RefreshTokenTTLDays) * 24 * time.Hour),
		Revoked:   false,
		IpAddress: ipAddress,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := uow.UserRepository().CreateRefreshToken(ctx, refreshEntity); err != nil {
		return "", "", fmt.Errorf("create refresh token: %w", err)
	}

	return accessToken, rawRefreshToken, nil
}

func (s *authService) createUser(ctx context.Context, name, email, mobile, faculty, password, ipAddress, userAgent string) (*entity.User, string, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, "", "", err
	}
	if existing != nil {
		return nil, "", "", kyc.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Mobile:       mobile,
		Faculty:      faculty,
		Role:         entity.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, "", "", err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, uow, user, ipAddress, userAgent)
	if err != nil {
		return nil, "", "", err
	}

	if err := uow.Commit(); err != nil {
		return nil, "", "", err
	}

	s.afterRegistration(ctx, user)

	return user, accessToken, refreshToken, nil
}

// afterRegistration announces the new account on the bus; the
// notification consumer owns the welcome email and websocket push.
func (s *authService) afterRegistration(ctx context.Context, user *entity.User) {
	if s.eventPublisher == nil {
		return
	}
	event := events.NewUserRegisteredEvent(user.Id.String(), user.Name, user.Email, user.Faculty)
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("auth_service", "failed to publish registration event", map[string]interface{}{
			"user_id": user.Id.String(),
			"error":   err.Error(),
		})
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	user, accessToken, refreshToken, err := s.createUser(ctx, req.Name, req.Email, req.Mobile, req.Faculty, req.Password, ipAddress, userAgent)
	if err != nil {
		if errors.Is(err, kyc.ErrEmailTaken) {
			return nil, errors.New("email already registered")
		}
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserProfile(user),
	}, nil
}

// RegisterProfile creates an account from a completed conversational
// profile. Duplicate emails surface as kyc.ErrEmailTaken so the dialogue
// can recover by asking for another address.
func (s *authService) RegisterProfile(ctx context.Context, profile kyc.Profile) (*kyc.Registration, error) {
	user, accessToken, refreshToken, err := s.createUser(ctx, profile.Name, profile.Email, profile.Mobile, profile.Faculty, profile.Password, "", "assistant")
	if err != nil {
		return nil, err
	}

	return &kyc.Registration{
		UserID:       user.Id.String(),
		UserName:     user.Name,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, uow, user, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserLogin,
			Data: map[string]interface{}{
				"user_id": user.Id.String(),
				"device":  userAgent,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("auth_service", "failed to publish login event", map[string]interface{}{
				"user_id": user.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         toUserProfile(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	stored, err := uow.UserRepository().FindRefreshToken(ctx,
		specification.ByTokenHash{Hash: hashToken(refreshToken)},
		specification.NotRevoked{},
	)
	if err != nil || stored == nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: stored.UserId})
	if err != nil || user == nil {
		return nil, errors.New("invalid refresh token")
	}

	// Rotate: revoke the presented token and issue a fresh pair.
	if err := uow.UserRepository().RevokeRefreshToken(ctx, stored.TokenHash); err != nil {
		return nil, err
	}
	accessToken, newRefreshToken, err := s.issueTokens(ctx, uow, user, stored.IpAddress, stored.UserAgent)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         toUserProfile(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().RevokeRefreshToken(ctx, hashToken(refreshToken))
}

func toUserProfile(user *entity.User) dto.UserProfileResponse {
	return dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Name:      user.Name,
		Mobile:    user.Mobile,
		Faculty:   user.Faculty,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
