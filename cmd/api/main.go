package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"labvoice/internal/agent"
	"labvoice/internal/archive"
	"labvoice/internal/gateway/config"
	"labvoice/internal/gateway/handler"
	"labvoice/internal/gateway/middleware"
	"labvoice/internal/gateway/server"
	"labvoice/internal/gateway/service"
	"labvoice/internal/gateway/voice"
	"labvoice/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	reportStore, summaryStore, closeStore, err := buildStores(cfg.Store)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}
	defer closeStore()

	archiveStore, err := buildArchive(cfg.Archive)
	if err != nil {
		log.Fatalf("init archive: %v", err)
	}

	agentClient, err := buildAgent(ctx, cfg.Agent)
	if err != nil {
		log.Fatalf("init agent: %v", err)
	}
	defer agentClient.Close()

	uploadSvc := service.NewUploadService(reportStore, archiveStore)
	summarySvc := service.NewSummaryService(summaryStore)
	askSvc := service.NewAskService(reportStore, agentClient)
	hub := voice.NewHub()

	router := mux.NewRouter()
	h := handler.NewHandler(uploadSvc, summarySvc, askSvc, hub)
	h.RegisterRoutes(router)

	srv := server.New(cfg.Port, middleware.CORS(middleware.Logging(router)))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server: %v", err)
		}
	case sig := <-stop:
		log.Printf("received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}

// buildStores selects the store backend: Postgres when a DSN is set, Redis
// when an address is set, in-memory otherwise. Database-backed stores get an
// LRU cache in front.
func buildStores(cfg config.StoreConfig) (store.ReportStore, store.SummaryStore, func(), error) {
	switch {
	case cfg.PostgresDSN != "":
		pg, err := store.NewPostgresStore(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		cached, err := store.NewCachedStore(pg, cfg.CacheEntries)
		if err != nil {
			pg.Close()
			return nil, nil, nil, err
		}
		log.Printf("store backend: postgres (cache %d entries)", cfg.CacheEntries)
		return cached, cached, func() { pg.Close() }, nil

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		rs := store.NewRedisStore(client)
		cached, err := store.NewCachedStore(rs, cfg.CacheEntries)
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		log.Printf("store backend: redis at %s (cache %d entries)", cfg.RedisAddr, cfg.CacheEntries)
		return cached, cached, func() { _ = client.Close() }, nil

	default:
		mem := store.NewMemoryStore()
		log.Printf("store backend: memory")
		return mem, mem, func() {}, nil
	}
}

func buildArchive(cfg config.ArchiveConfig) (archive.Store, error) {
	if !cfg.Enabled {
		log.Printf("archive backend: memory")
		return archive.NewMemoryStore(), nil
	}
	s3, err := archive.NewS3Store(archive.S3Config{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		UseSSL:    cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("archive backend: s3 at %s bucket %s", cfg.Endpoint, cfg.Bucket)
	return s3, nil
}

func buildAgent(ctx context.Context, cfg config.AgentConfig) (agent.Client, error) {
	if cfg.Provider == "gemini" {
		client, err := agent.NewGeminiClient(ctx, cfg.Model)
		if err != nil {
			return nil, err
		}
		log.Printf("agent: %s", client.Name())
		return client, nil
	}
	log.Printf("agent: fake")
	return agent.NewFakeClient(), nil
}
