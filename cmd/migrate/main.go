package main

import (
	"log"
	"os"

	"admission-assistant-be/internal/model"
	"admission-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// Extensions AutoMigrate cannot create itself.
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.UserRefreshToken{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.KnowledgeDocument{},
		&model.DocumentEmbedding{},
		&model.MediaItem{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// The similarity search orders by cosine distance; without this index
	// every query scans the whole table.
	indexSQL := `CREATE INDEX IF NOT EXISTS idx_document_embeddings_embedding
		ON document_embeddings USING hnsw (embedding_value vector_cosine_ops);`
	if err := db.Exec(indexSQL).Error; err != nil {
		log.Printf("Warn: Failed to create vector index: %v. Continuing...", err)
	}

	log.Println("Migration complete.")
}
