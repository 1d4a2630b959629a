package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArnavTheExploit/EventSphere/internal/api"
	"github.com/ArnavTheExploit/EventSphere/internal/api/metrics"
	"github.com/ArnavTheExploit/EventSphere/internal/core/seed"
	"github.com/ArnavTheExploit/EventSphere/internal/core/service"
	"github.com/ArnavTheExploit/EventSphere/internal/infrastructure/auth"
	"github.com/ArnavTheExploit/EventSphere/internal/infrastructure/config"
	mongodb "github.com/ArnavTheExploit/EventSphere/internal/infrastructure/db/mongo"
	redisdb "github.com/ArnavTheExploit/EventSphere/internal/infrastructure/db/redis"
	"github.com/ArnavTheExploit/EventSphere/internal/infrastructure/queue"
	"github.com/ArnavTheExploit/EventSphere/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- External stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Adapters ---
	eventStore := mongodb.NewEventStore(db, log)
	regStore := mongodb.NewRegistrationStore(db, log)
	identityRepo := mongodb.NewIdentityRepository(db)
	if err := identityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("identity index init failed")
	}
	blobStore, err := mongodb.NewBlobStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}
	roleStore := redisdb.NewRoleStore(rdb)
	dedup := redisdb.NewRegistrationDedup(rdb)

	var federated *auth.GoogleFederated
	if cfg.Google.ClientID != "" {
		federated = auth.NewGoogleFederated(cfg.Google.ClientID, cfg.Google.ClientSecret, cfg.Google.RedirectURL)
	}
	provider := auth.NewProvider(identityRepo, federated, log)

	// --- Core services ---
	sessions := service.NewSessionManager(provider, roleStore, cfg.JWTSecret, 24*time.Hour, log)
	catalog := service.NewCatalog(eventStore, seed.Events(), log)
	feed := service.NewRegistrationFeed(regStore, catalog, log)
	regService := service.NewRegistrationService(catalog, regStore, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.Workers, regService, log)

	catalog.OnChange(func() {
		metrics.CatalogMergedEvents.Set(float64(len(catalog.Events())))
	})

	// --- Long-lived subscriptions ---
	unsubSession, err := sessions.Restore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("session restore failed")
	}
	defer unsubSession()

	unsubCatalog, err := catalog.Start(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("event subscription failed")
	}
	defer unsubCatalog()

	unsubFeed, err := feed.Start(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("registration subscription failed")
	}
	defer unsubFeed()

	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Sessions:   sessions,
		Catalog:    catalog,
		Feed:       feed,
		Dispatcher: dispatcher,
		Blobs:      blobStore,
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("eventsphere started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
