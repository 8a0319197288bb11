package types

import (
	"github.com/google/uuid"
)

// Chunk is the unit of embedding and retrieval: a bounded span of
// document text with a fixed word overlap to its neighbours.
type Chunk struct {
	ID        uuid.UUID
	DocID     uuid.UUID
	Title     string
	Index     int
	Content   string
	Embedding []float32
	Distance  float64
}

type EmbedResponse struct {
	Message string `json:"message"`
}

type QueryResponse struct {
	Message string `json:"message"`
}
