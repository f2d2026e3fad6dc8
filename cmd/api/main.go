package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"motopartes/internal/cache"
	"motopartes/internal/config"
	"motopartes/internal/database"
	"motopartes/internal/logger"
	"motopartes/internal/notification"
	"motopartes/internal/pkg/display"
	jwtsvc "motopartes/internal/pkg/jwt"
	"motopartes/internal/repository"
	"motopartes/internal/server"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.IsDev()); err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.L()

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	display.SetLocation(cfg.Location())

	db, err := database.Connect(cfg.Database.URL, log)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := server.Deps{
		DB:          db,
		Log:         log,
		JWT:         jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL),
		Notifier:    notification.NopNotifier{},
		CacheTTL:    cfg.Redis.CacheTTL,
		RecentStore: cache.NewMemory(),
		CORSOrigins: cfg.CORS.AllowOrigins,
		CORSMaxAge:  cfg.CORS.MaxAge,
	}

	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewRedis(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "motopartes:",
		}, log)
		if err != nil {
			log.Fatal("redis connect failed", zap.Error(err))
		}
		defer rdb.Close()
		deps.ProductCache = rdb
		deps.RecentStore = rdb
	} else {
		log.Info("REDIS_ADDR not set, product cache disabled")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kn := notification.NewKafkaNotifier(cfg.Kafka.Brokers, cfg.Kafka.ReservaTopic, log.Named("kafka"))
		defer kn.Close()
		deps.Notifier = kn
		log.Info("publishing status events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.ReservaTopic))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}
