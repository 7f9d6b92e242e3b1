package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/lapenya/quiniela/external/footballdata"
	"github.com/lapenya/quiniela/internal/config"
	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/infrastructure/repository/postgres"
	redisrepo "github.com/lapenya/quiniela/internal/infrastructure/repository/redis"
	"github.com/lapenya/quiniela/internal/interfaces/httpapi"
	"github.com/lapenya/quiniela/internal/platform/logging"
	"github.com/lapenya/quiniela/internal/platform/resilience"
	"github.com/lapenya/quiniela/internal/usecase"
)

// Application wires configuration into connected stores and services. Both
// binaries build one; the API serves from it, the pipeline runner calls
// Pipeline.Run once and exits.
type Application struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB
	Redis  *goredis.Client

	Pipeline    *usecase.PipelineService
	Submissions *usecase.SubmissionService
	History     *usecase.HistoryService
	Board       *usecase.BoardService
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Application, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.ConnectContext(ctx, "postgres", cfg.DBURL,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisOpts, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	redisClient := goredis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		db.Close()
		redisClient.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	matches := redisrepo.NewMatchRepository(redisClient)
	snapshots := redisrepo.NewSnapshotStore(redisClient)
	current := redisrepo.NewCurrentStore(redisClient)
	archive := postgres.NewArchiveRepository(db)
	registry := postgres.NewRegistryRepository(db)

	provider := footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:     cfg.FootballDataBaseURL,
		Token:       cfg.FootballDataToken,
		Competition: cfg.FootballDataCompetition,
		Timeout:     cfg.FootballDataTimeout,
		MaxRetries:  cfg.FootballDataMaxRetries,
		Logger:      logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailures,
			OpenTimeout:      cfg.FootballDataCircuitOpenWait,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpen,
		},
	})

	pipeline := usecase.NewPipelineService(provider, matches, snapshots, current, archive, logger, usecase.PipelineConfig{
		Competition: cfg.FootballDataCompetition,
		Season:      cfg.FootballDataSeason,
		Pricing: odds.Pricing{
			DrawStrength: cfg.OddsDrawStrength,
			Margin:       cfg.OddsMargin,
			Ceiling:      cfg.OddsCeiling,
		},
		Scoring: prediction.ScorePolicy{Weight: cfg.ScoringWeight},
	})

	return &Application{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Redis:       redisClient,
		Pipeline:    pipeline,
		Submissions: usecase.NewSubmissionService(registry, current, snapshots, logger),
		History:     usecase.NewHistoryService(archive),
		Board:       usecase.NewBoardService(snapshots),
	}, nil
}

func (a *Application) HTTPServer() (*http.Server, error) {
	if a.Config.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Submissions, a.History, a.Board, a.Pipeline, a.Logger)
	router := httpapi.NewRouter(handler, a.Logger, a.Config.CORSAllowedOrigins, a.Config.InternalJobToken)

	return &http.Server{
		Addr:         a.Config.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.Config.ReadTimeout,
		WriteTimeout: a.Config.WriteTimeout,
	}, nil
}

func (a *Application) Close() error {
	var firstErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
