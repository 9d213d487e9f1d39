package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmoralesf/brand-guardian/internal/config"
	"github.com/dmoralesf/brand-guardian/internal/core/ports"
	"github.com/dmoralesf/brand-guardian/internal/core/usecase"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/llm/openaicompat"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/queue/nats"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/repository/postgres"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/resilience"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/storage/localfs"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/vector/qdrant"
	"github.com/dmoralesf/brand-guardian/internal/infrastructure/vision/gemini"
	"github.com/dmoralesf/brand-guardian/internal/observability/tracing"
)

// App wires the adapters and use cases both binaries share.
type App struct {
	Config config.Config

	Queue    ports.MessageQueue
	Profiles ports.ProfileRepository
	Storage  ports.ObjectStorage
	Verifier *localfs.Storage
	Manuals  ports.ManualRepository

	BrandUC      ports.BrandService
	ManualUC     ports.ManualBuilder
	IndexUC      ports.ManualIndexer
	GenerateUC   ports.ContentGenerator
	GovernanceUC ports.GovernanceService
	AuditUC      ports.ImageAuditor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	brands := postgres.NewBrandRepository(db)
	manuals := postgres.NewManualRepository(db)
	contents := postgres.NewContentRepository(db)
	approvals := postgres.NewApprovalRepository(db)
	reports := postgres.NewAuditRepository(db)
	profiles := postgres.NewProfileRepository(db)

	storage, err := localfs.New(cfg.StoragePath, cfg.StorageSignSecret, cfg.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	llmTimeout := time.Duration(cfg.LLMTimeoutS) * time.Second
	generator := openaicompat.New(openaicompat.Config{
		APIKey:         cfg.GroqAPIKey,
		BaseURL:        cfg.GroqBaseURL,
		ChatModel:      cfg.GroqModel,
		RequestTimeout: llmTimeout,
		Executor:       executor,
	})
	embedder := openaicompat.NewEmbedder(openaicompat.EmbedderConfig{
		APIKey:         cfg.OpenAIAPIKey,
		Model:          cfg.EmbeddingModel,
		Dimensions:     cfg.EmbeddingDim,
		RequestTimeout: llmTimeout,
		Executor:       executor,
	})
	judge := gemini.New(gemini.Config{
		APIKey:         cfg.GeminiAPIKey,
		Model:          cfg.GeminiModel,
		RequestTimeout: llmTimeout,
		Executor:       executor,
	})

	index := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection)

	tracer := tracing.Noop()
	if cfg.TraceSpansEnabled {
		tracer = tracing.NewSlogTracer(logger)
	}

	brandUC := usecase.NewBrandUseCase(brands)
	manualUC := usecase.NewCreateManualUseCase(brands, manuals, generator, queue, tracer)
	indexUC := usecase.NewIndexManualUseCase(manuals, embedder, index)
	generateUC := usecase.NewGenerateContentUseCase(manuals, contents, embedder, index, generator, tracer)
	governanceUC := usecase.NewGovernanceUseCase(contents, approvals)
	auditUC := usecase.NewAuditImageUseCase(manuals, contents, reports, storage, embedder, index, judge, tracer)

	return &App{
		Config: cfg,

		Queue:    queue,
		Profiles: profiles,
		Storage:  storage,
		Verifier: storage,
		Manuals:  manuals,

		BrandUC:      brandUC,
		ManualUC:     manualUC,
		IndexUC:      indexUC,
		GenerateUC:   generateUC,
		GovernanceUC: governanceUC,
		AuditUC:      auditUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
