package app

import (
	"context"
	"fmt"
	"time"

	"career-match/internal/config"
	"career-match/internal/database"
	"career-match/internal/database/migration"
	dbpostgres "career-match/internal/database/postgres"
	"career-match/internal/domain/matching"
	"career-match/internal/infrastructure/cache"
	"career-match/internal/infrastructure/embedding"
	"career-match/internal/infrastructure/export"
	"career-match/internal/infrastructure/llm"
	"career-match/internal/repository"
	"career-match/internal/usecase"
	"career-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns the process-wide dependencies. Close releases them in
// reverse order of construction.
type Container struct {
	Config config.Config
	Log    *zap.Logger
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub

	Jobs        repository.JobPostingRepository
	Users       *repository.PostgresUserProfileRepository
	Assessments repository.AssessmentRepository
	Recs        repository.RecommendationRepository
	Gaps        repository.GapReportRepository

	Embedder  usecase.Embedder
	Roadmaps  usecase.RoadmapGenerator
	Questions usecase.QuestionGenerator

	CatalogUC  *usecase.Catalog
	ProfileUC  *usecase.Profile
	MatchingUC *usecase.Matching
	GapUC      *usecase.GapAnalysis
	AttemptUC  *usecase.Attempt
	RoadmapUC  *usecase.Roadmap
	ReportUC   *usecase.Report
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	if cfg.Database.RunMigrations {
		r := migration.Runner{Log: log}
		if err := r.Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	c := &Container{
		Config:      cfg,
		Log:         log,
		DB:          db,
		Cache:       cache.NewRedis(ctx, cfg.Redis, log),
		Hub:         ws.NewHub(log),
		Jobs:        repository.NewPostgresJobPostingRepository(db),
		Users:       repository.NewPostgresUserProfileRepository(db),
		Assessments: repository.NewPostgresAssessmentRepository(db),
		Recs:        repository.NewPostgresRecommendationRepository(db),
		Gaps:        repository.NewPostgresGapReportRepository(db),
	}
	ws.SetDefaultHub(c.Hub)

	c.wireProviders(ctx)
	c.wireUsecases()
	return c, nil
}

// wireProviders connects the Gemini clients. Without an API key the
// service still runs: profile embedding, roadmaps and question generation
// then report themselves unavailable.
func (c *Container) wireProviders(ctx context.Context) {
	space := c.Config.Matching.EmbeddingSpace

	if emb, err := embedding.NewGemini(ctx, c.Config.Gemini, space, c.Log); err != nil {
		c.Log.Warn("embedding provider disabled", zap.Error(err))
	} else {
		c.Embedder = emb
	}

	if gen, err := llm.NewRoadmapGenerator(ctx, c.Config.Gemini, c.Log); err != nil {
		c.Log.Warn("roadmap generator disabled", zap.Error(err))
	} else {
		c.Roadmaps = gen
	}

	if gen, err := llm.NewQuestionGenerator(ctx, c.Config.Gemini, c.Log); err != nil {
		c.Log.Warn("question generator disabled", zap.Error(err))
	} else {
		c.Questions = gen
	}
}

func (c *Container) wireUsecases() {
	holder := matching.NewCatalogHolder(nil)
	notify := ws.Notifier{}

	c.CatalogUC = usecase.NewCatalogUsecase(c.Jobs, holder, c.Cache, notify, c.Config.Matching.EmbeddingSpace, c.Log)
	c.ProfileUC = usecase.NewProfileUsecase(c.Users, c.Embedder, c.Log)
	c.MatchingUC = usecase.NewMatchingUsecase(c.Users, c.Recs, holder, c.Cache, c.Config.Matching.TopK, c.Log)
	c.GapUC = usecase.NewGapAnalysisUsecase(c.Users, c.Recs, c.Jobs, c.Gaps, c.Assessments, notify, c.Log)
	c.AttemptUC = usecase.NewAttemptUsecase(c.Assessments, c.Users, c.Questions, c.Log)
	c.RoadmapUC = usecase.NewRoadmapUsecase(c.GapUC, c.Roadmaps, c.Log)
	c.ReportUC = usecase.NewReportUsecase(c.Users, c.Jobs, c.Gaps, c.Assessments, export.WriteExcel, c.Log)
}

// LoadCatalog performs the first catalog refresh. An empty catalog is not
// fatal; ranking answers 503 until a refresh succeeds.
func (c *Container) LoadCatalog(ctx context.Context) {
	info, err := c.CatalogUC.Refresh(ctx)
	if err != nil {
		c.Log.Warn("initial catalog load failed", zap.Error(err))
		return
	}
	c.Log.Info("catalog loaded",
		zap.String("version", info.Version),
		zap.Int("size", info.Size),
		zap.Int("dimension", info.Dimension),
	)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	ws.SetDefaultHub(nil)
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
