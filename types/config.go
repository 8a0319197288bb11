package types

import (
	"fmt"
	"os"
	"strconv"
)

// Config carries every environment-provided knob. Loaded once at
// startup and passed explicitly; nothing in the pipeline reads the
// environment after that.
type Config struct {
	ListenAddr   string
	TempDir      string
	Collection   string
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	EmbeddingDim int
	LLM          LLMConfig
}

type LLMConfig struct {
	GenerateURL    string
	GenerateModel  string
	EmbeddingURL   string
	EmbeddingModel string
}

func ConfigFromEnv() Config {
	return Config{
		ListenAddr:   envStr("SERVER_ADDR", ":8080"),
		TempDir:      envStr("TEMP_FOLDER", "./_temp"),
		Collection:   envStr("COLLECTION_NAME", "local_rag"),
		ChunkSize:    envInt("CHUNK_SIZE", 400),
		ChunkOverlap: envInt("CHUNK_OVERLAP", 40),
		TopK:         envInt("TOP_K", 5),
		EmbeddingDim: envInt("EMBEDDING_DIM", 768),
		LLM: LLMConfig{
			GenerateURL:    envStr("LLM_URL", "http://localhost:11434/api/generate"),
			GenerateModel:  envStr("LLM_MODEL", "mistral"),
			EmbeddingURL:   envStr("OLLAMA_EMBEDDING_URL", "http://localhost:11434/api/embeddings"),
			EmbeddingModel: envStr("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
		},
	}
}

// PostgresDSN builds the store connection string from PG_* variables.
func PostgresDSN() string {
	port, _ := strconv.Atoi(envStr("PG_PORT", "5432"))
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("PG_HOST"), port, os.Getenv("PG_USER"), os.Getenv("PG_PASS"), os.Getenv("PG_DB_NAME"))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
