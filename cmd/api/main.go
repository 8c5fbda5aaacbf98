package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/jobs"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/catalog"
	"hotelbooking/internal/modules/loyalty"
	"hotelbooking/internal/modules/search"
	"hotelbooking/internal/notification"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/lock"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	accountRepo := repository.NewAccountRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var locker lock.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zl.Fatal("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer rdb.Close()
		locker = lock.NewRedisLocker(rdb, cfg.RoomLockTTL, cfg.RoomLockWait, zl)
		zl.Info("room locks backed by redis", zap.String("addr", cfg.RedisAddr))
	} else {
		locker = lock.NewLocalLocker(cfg.RoomLockWait)
		zl.Info("room locks are process-local")
	}

	hub := notification.NewHub()
	senders := notification.Multi{hub}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		kp := notification.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		defer kp.Close()
		senders = append(senders, kp)
		zl.Info("booking events published to kafka",
			zap.Strings("brokers", brokers),
			zap.String("topic", cfg.KafkaTopic),
		)
	}

	loyaltyService := loyalty.NewService(loyaltyRepo, zl)
	bookingService := booking.NewService(bookingRepo, roomRepo, locker, loyaltyService, senders, zl)

	authHandler := auth.NewHandler(auth.NewService(accountRepo, j), zl)
	catalogHandler := catalog.NewHandler(catalog.NewService(roomRepo), zl)
	searchHandler := search.NewHandler(search.NewService(roomRepo, bookingRepo), zl)
	bookingHandler := booking.NewHandler(bookingService, zl)
	loyaltyHandler := loyalty.NewHandler(loyaltyService)
	wsHandler := notification.NewWSHandler(hub, j, cfg.AllowedOrigins(), zl)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(zl),
		middleware.Recovery(zl),
		middleware.CORS(cfg.AllowedOrigins()),
	)
	if cfg.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitPerMin, zl))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	jwtAuth := middleware.JWTAuth(j)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		searchHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1, jwtAuth)
		loyaltyHandler.RegisterRoutes(v1, jwtAuth)
		wsHandler.RegisterRoutes(v1)
	}

	var scheduler *jobs.Scheduler
	if cfg.StayCompletionInterval > 0 {
		scheduler, err = jobs.NewScheduler(bookingRepo, cfg.StayCompletionInterval, zl)
		if err != nil {
			zl.Fatal("scheduler init failed", zap.Error(err))
		}
		if err := scheduler.AddLoyaltyReconciliation(loyaltyRepo, loyaltyService, cfg.StayCompletionInterval); err != nil {
			zl.Fatal("scheduler init failed", zap.Error(err))
		}
		scheduler.Start()
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			zl.Warn("scheduler shutdown", zap.Error(err))
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
