package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"designer-quiz-service/internal/app"
	"designer-quiz-service/internal/config"
	"designer-quiz-service/internal/domain"
	"designer-quiz-service/internal/infra/audienceful"
	"designer-quiz-service/internal/infra/memory"
	pginfra "designer-quiz-service/internal/infra/postgres"
	rediscatalog "designer-quiz-service/internal/infra/redis"
	transport "designer-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
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

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var store interface {
		app.SubmissionStore
		app.AnalyticsStore
	}
	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)

	var catalogLoader memory.CatalogLoader
	if pool != nil {
		pgCatalogs := pginfra.NewCatalogLoader(pool)
		if err := pgCatalogs.EnsureCatalog(ctx, defaultCatalog()); err != nil {
			return err
		}
		catalogLoader = pgCatalogs
		store = pginfra.NewSubmissionRepository(pool)
	} else {
		catalogLoader = memory.NewStaticCatalogLoader(map[string]domain.Catalog{
			cfg.Catalog.Version: defaultCatalog(),
		})
		store = memory.NewSubmissionStore()
	}

	var catalogs app.CatalogRepository
	if redisClient != nil {
		catalogs = rediscatalog.NewCatalogRepository(redisClient, catalogLoader, catalogTTL)
	} else {
		catalogs = memory.NewCatalogRepository(catalogLoader, catalogTTL)
	}

	hub := app.NewDashboardHub()
	submissions := app.NewSubmissionService(store, catalogs, cfg.Catalog.Version, hub)
	analytics := app.NewAnalyticsService(store, catalogs, cfg.Catalog.Version)
	notifier := audienceful.New(cfg.Audienceful.BaseURL, cfg.Audienceful.APIKey, cfg.Audienceful.Tag)

	handler := transport.NewHandler(submissions, analytics, notifier, cfg.Share.BaseURL)
	wsHandler := transport.NewWSHandler(analytics, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)
	mux.HandleFunc("/ws/dashboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting designer quiz service on :%s", finalPort)
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
