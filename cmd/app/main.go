package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hazard_duel/internal/config"
	"hazard_duel/internal/db"
	httpServer "hazard_duel/internal/http"
	"hazard_duel/internal/http/handlers"
	"hazard_duel/internal/http/middleware"
	"hazard_duel/internal/logger"
	"hazard_duel/internal/repository"
	"hazard_duel/internal/service"
	"hazard_duel/internal/ws"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_JSON") == "true")
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	rdb := db.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if rdb != nil {
		defer rdb.Close()
	}
	middleware.SetRedisClient(rdb)

	gameRepo := repository.NewGameRepository(dbPool)
	historyRepo := repository.NewGameHistoryRepository(dbPool)
	playerRepo := repository.NewPlayerRepository(dbPool)
	cache := repository.NewSnapshotCache(rdb, time.Duration(cfg.SnapshotCacheTTLMinutes)*time.Minute)

	matches := service.NewMatchService(gameRepo, cache, historyRepo)
	tokens := service.NewTokenService(cfg.JWT)
	players := service.NewPlayerService(playerRepo)
	audit := service.NewAuditService(repository.NewAuditRepository(dbPool))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	matches.StartCleanup(ctx, time.Minute, time.Duration(cfg.MatchIdleMinutes)*time.Minute)

	h := handlers.NewHandler(players, matches, tokens, historyRepo)
	h.Audit = audit

	r := gin.New()
	r.Use(gin.Recovery(), httpServer.CORS(cfg.AllowedOrigin))

	httpServer.RegisterRoutes(r, httpServer.Deps{
		Handler: h,
		Health:  handlers.NewHealthHandler(dbPool, rdb, version),
		Hub:     ws.NewHub(matches),
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
