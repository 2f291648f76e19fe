package main // Entry point package

import (
	"context"
	"errors"
	"log" // Logging library
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/film-catalog/internal/config"     // Internal config loader
	"github.com/iliyamo/film-catalog/internal/database"   // Store connection + schema
	"github.com/iliyamo/film-catalog/internal/handler"    // Film handlers
	"github.com/iliyamo/film-catalog/internal/middleware" // Redis cache + rate limit
	"github.com/iliyamo/film-catalog/internal/queue"      // Film event consumer
	"github.com/iliyamo/film-catalog/internal/repository" // Film repository
	"github.com/iliyamo/film-catalog/internal/router"     // Internal router setup
	"github.com/iliyamo/film-catalog/internal/service"    // RabbitMQ publisher
)

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	redisCfg := config.LoadRedisConfig()
	rdb := config.NewRedisClient(redisCfg)
	if rdb == nil && redisCfg.Enabled {
		log.Printf("redis unreachable at %s; cache and rate limit disabled", redisCfg.Addr)
	}
	if rdb != nil {
		defer rdb.Close()
	}
	cacheCfg := config.LoadCacheConfig()

	films := handler.NewFilmHandler(repository.NewFilmRepo(db))
	if inv := middleware.NewCacheInvalidator(cacheCfg, rdb); inv != nil {
		films.Cache = inv
	}
	if cfg.RabbitEnabled {
		films.Events = service.NewQueuePublisher(cfg.RabbitURL)
		go func() {
			if err := queue.StartFilmConsumer(ctx, cfg.RabbitURL, cfg.EventLogDir); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("film-consumer: stopped: %v", err)
			}
		}()
	}

	e := router.New(films, db, router.Options{
		ImageDir:  cfg.ImageDir,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:     middleware.NewRedisCache(cacheCfg, rdb),
		AccessLog: true,
	})

	addr := ":" + cfg.Port                                                        // Address string with port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.DBDriver) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	grace, err := time.ParseDuration(cfg.ShutdownTimeout)
	if err != nil || grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Printf("stopped")
}
