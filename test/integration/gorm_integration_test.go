package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"admission-assistant-be/internal/entity"
	"admission-assistant-be/internal/repository/unitofwork"
	"admission-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ChatSessionRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Document Embedding Repository", func(t *testing.T) {
		count, err := uow.DocumentEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentEmbedding count: %d", count)
	})

	t.Run("Check Transactional Chat Session", func(t *testing.T) {
		ctx := context.Background()
		txUow := uowFactory.NewUnitOfWork(ctx)
		err := txUow.Begin(ctx)
		assert.NoError(t, err)

		user := &entity.User{
			Id:           uuid.New(),
			Email:        "test-integration-" + uuid.New().String() + "@example.com",
			PasswordHash: "x",
			Name:         "Integration Test User",
			Role:         entity.UserRoleUser,
			CreatedAt:    time.Now(),
		}
		err = txUow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		session := &entity.ChatSession{
			Id:        uuid.New(),
			UserId:    &user.Id,
			Title:     "Integration session",
			CreatedAt: time.Now(),
		}
		err = txUow.ChatSessionRepository().Create(ctx, session)
		assert.NoError(t, err)

		message := &entity.ChatMessage{
			Id:            uuid.New(),
			Chat:          "Hello from the integration test",
			Role:          "user",
			Source:        "text",
			ChatSessionId: session.Id,
			CreatedAt:     time.Now(),
		}
		err = txUow.ChatMessageRepository().Create(ctx, message)
		assert.NoError(t, err)

		// Rollback keeps the database clean.
		err = txUow.Rollback()
		assert.NoError(t, err)
	})
}
