package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Mobile       string
	Faculty      string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type UserRefreshToken struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	Revoked   bool
	IpAddress string
	UserAgent string
	CreatedAt time.Time
}
