package api

import (
	"context"
	"fmt"
	"log"
	"strings"

	"localrag/model"
	"localrag/store"
	"localrag/types"

	"github.com/gofiber/fiber/v2"
)

type QueryHandler struct {
	cfg       types.Config
	store     store.VectorStorer
	embedder  model.Embedder
	generator model.Generator
}

func NewQueryHandler(cfg types.Config, s store.VectorStorer, e model.Embedder, g model.Generator) *QueryHandler {
	return &QueryHandler{
		cfg:       cfg,
		store:     s,
		embedder:  e,
		generator: g,
	}
}

// HandleQuery embeds the question, retrieves the top-k chunks and asks
// the model for a single-shot answer grounded in them.
func (h *QueryHandler) HandleQuery(c *fiber.Ctx) error {
	var params types.QueryParams
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errors := types.Validate(&params); len(errors) > 0 {
		return NewValidationError(errors)
	}

	embeddedQuery, err := h.embedder.Embed(params.Query)
	if err != nil {
		return ErrUnavailable(fmt.Sprintf("embedding failed: %v", err))
	}

	similarChunks, err := h.store.Search(context.Background(), embeddedQuery, h.cfg.TopK)
	if err != nil {
		return ErrUnavailable(fmt.Sprintf("retrieval failed: %v", err))
	}
	log.Printf("[QUERY] retrieved %d chunks", len(similarChunks))

	answer, err := h.generator.Generate(buildContext(similarChunks), params.Query)
	if err != nil {
		return ErrUnavailable(fmt.Sprintf("generation failed: %v", err))
	}

	return c.JSON(types.QueryResponse{Message: answer})
}

// buildContext concatenates the retrieved chunk texts in rank order.
func buildContext(chunks []types.Chunk) string {
	if len(chunks) == 0 {
		return "empty"
	}

	var sb strings.Builder
	for _, ch := range chunks {
		sb.WriteString(ch.Content)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}
