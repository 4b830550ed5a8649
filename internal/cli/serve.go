package cli

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizmaster-service/internal/app"
	"quizmaster-service/internal/config"
	"quizmaster-service/internal/infra/memory"
	pgstore "quizmaster-service/internal/infra/postgres"
	rediscache "quizmaster-service/internal/infra/redis"
	transport "quizmaster-service/internal/transport/http"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
	attemptTTL := config.TTLDuration(cfg.Attempt.TTL, time.Hour)

	var (
		quizStore   app.QuizStore
		resultStore app.ResultStore
		loader      memory.QuizLoader
	)
	if cfg.Postgres.URL != "" {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
		db := bun.NewDB(sqldb, pgdialect.New())
		quizStore = pgstore.NewQuizStore(db)
		resultStore = pgstore.NewResultStore(db)

		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		loader = pgstore.NewQuizLoader(pool)
	} else {
		log.Printf("no postgres configured, using in-memory stores")
		memStore := memory.NewQuizStore()
		quizStore = memStore
		resultStore = memory.NewResultStore()
		loader = memStore
	}

	var reader interface {
		app.QuizReader
		app.CacheInvalidator
	}
	if redisClient != nil {
		reader = rediscache.NewQuizCache(redisClient, loader, quizTTL)
	} else {
		reader = memory.NewQuizCache(loader, quizTTL)
	}

	var attemptRepo app.AttemptRepository
	if redisClient != nil {
		attemptRepo = rediscache.NewAttemptStore(redisClient, attemptTTL)
	} else {
		attemptRepo = memory.NewAttemptStore(attemptTTL)
	}

	quizService := app.NewQuizService(quizStore, resultStore)
	quizService.SetCache(reader)
	attemptService := app.NewAttemptService(attemptRepo, reader, resultStore)

	api := transport.NewAPI(quizService, attemptService, nil)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      api.Router(cfg.Server.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizmaster service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
