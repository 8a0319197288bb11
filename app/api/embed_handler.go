package api

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"localrag/chunker"
	"localrag/model"
	"localrag/store"
	"localrag/types"

	"github.com/gofiber/fiber/v2"
)

// PDFExtractor validates an uploaded file and returns its per-page text.
type PDFExtractor interface {
	Validate(path string) error
	ExtractPages(path string) ([]string, error)
}

type EmbedHandler struct {
	cfg       types.Config
	store     store.VectorStorer
	embedder  model.Embedder
	extractor PDFExtractor
}

func NewEmbedHandler(cfg types.Config, s store.VectorStorer, e model.Embedder, x PDFExtractor) *EmbedHandler {
	return &EmbedHandler{
		cfg:       cfg,
		store:     s,
		embedder:  e,
		extractor: x,
	}
}

// HandleEmbed ingests one PDF: temp save, extract, chunk, embed,
// upsert. The temp file is removed on every exit path.
func (h *EmbedHandler) HandleEmbed(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return ErrBadInput("no file part")
	}
	if fileHeader.Filename == "" {
		return ErrBadInput("no selected file")
	}

	path := filepath.Join(h.cfg.TempDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(fileHeader.Filename)))
	if err := c.SaveFile(fileHeader, path); err != nil {
		return fmt.Errorf("failed to save upload: %w", err)
	}
	defer os.Remove(path)

	if err := h.extractor.Validate(path); err != nil {
		return ErrBadInput(err.Error())
	}

	pages, err := h.extractor.ExtractPages(path)
	if err != nil {
		return ErrBadInput(err.Error())
	}

	chunks := chunker.Split(fileHeader.Filename, pages, h.cfg.ChunkSize, h.cfg.ChunkOverlap)
	if len(chunks) == 0 {
		return ErrBadInput("no extractable text in file")
	}

	for i := range chunks {
		embedding, err := h.embedder.Embed(chunks[i].Content)
		if err != nil {
			return ErrUnavailable(fmt.Sprintf("embedding failed: %v", err))
		}
		chunks[i].Embedding = embedding
	}

	if err := h.store.UpsertChunks(context.Background(), chunks); err != nil {
		return ErrUnavailable(fmt.Sprintf("storage failed: %v", err))
	}

	log.Printf("[EMBED] ingested %s: %d chunks", fileHeader.Filename, len(chunks))
	return c.JSON(types.EmbedResponse{Message: "File embedded successfully"})
}
