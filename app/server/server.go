package server

import (
	"context"
	"log"
	"log/slog"
	"os"

	"localrag/app/api"
	"localrag/loader"
	"localrag/model"
	"localrag/store"
	"localrag/types"

	"github.com/gofiber/fiber/v2"
)

var config = fiber.Config{
	ErrorHandler: api.ErrorHandler,
}

type Server struct {
	cfg    types.Config
	logger *slog.Logger
}

func NewServer(cfg types.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: slog.Default(),
	}
}

func (s *Server) Stop() {
	s.logger.Info("server stopped")
}

func (s *Server) Run() {
	ctx := context.Background()

	if err := os.MkdirAll(s.cfg.TempDir, 0755); err != nil {
		log.Fatal("error to create temp directory: ", err)
	}

	pool, err := store.NewPostgresStore(ctx, types.PostgresDSN(), s.cfg.Collection, s.cfg.EmbeddingDim)
	if err != nil {
		log.Fatal("error to connect to Postgres database: ", err)
	}

	if err := pool.Init(ctx); err != nil {
		log.Fatal("error to create tables: ", err)
	}

	var (
		embedder  = model.NewOllamaEmbedder(s.cfg.LLM)
		generator = model.NewOllamaGenerator(s.cfg.LLM)
		pdfLoader = loader.NewPDFLoader()

		app          = fiber.New(config)
		checkHandler = api.NewCheckHandler()
		embedHandler = api.NewEmbedHandler(s.cfg, pool, embedder, pdfLoader)
		queryHandler = api.NewQueryHandler(s.cfg, pool, embedder, generator)

		check = app.Group("/check")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	app.Post("/embed", embedHandler.HandleEmbed)
	app.Post("/query", queryHandler.HandleQuery)

	s.logger.Info("listening", "addr", s.cfg.ListenAddr, "collection", s.cfg.Collection)
	if err := app.Listen(s.cfg.ListenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
	}
}
