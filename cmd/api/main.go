package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "hotelbooking/docs"
	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/events"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/admin"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/catalog"
	"hotelbooking/internal/modules/realtime"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/pkg/logger"
	"hotelbooking/internal/repository"
)

// @title						Hotel Booking API
// @version					1.0
// @description				Room catalog, booking lifecycle and administration.
// @BasePath					/api/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("database migrate failed")
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var limiter middleware.RateLimiter
	if cfg.RateLimit.Enabled && cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, rate limiting fails open until it recovers")
		}
		cancel()
		limiter = middleware.NewRedisTokenBucket(rdb, cfg.RateLimit)
	} else {
		log.Info("rate limiting disabled")
	}
	limit := middleware.RateLimit(limiter, cfg.RateLimit.Capacity, log)

	hub := realtime.NewHub(log)
	defer hub.Close()

	senders := []events.Sender{hub}
	if cfg.AMQPURL != "" {
		pub, err := events.Dial(cfg.AMQPURL, events.DefaultExchange, log)
		if err != nil {
			log.WithError(err).Warn("amqp unavailable, booking events go to the admin feed only")
		} else {
			defer pub.Close()
			senders = append(senders, pub)
		}
	}
	var sender booking.EventSender
	if fan := events.NewFanout(senders...); fan != nil {
		sender = fan
	}

	authService := auth.NewService(userRepo, j, log)
	authHandler := auth.NewHandler(authService, limit, int64(j.TTL()/time.Second), log)

	catalogService := catalog.NewService(roomRepo, bookingRepo, log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	bookingService := booking.NewService(bookingRepo, roomRepo, userRepo, sender, booking.WithLogger(log))
	bookingHandler := booking.NewHandler(bookingService, log)

	adminService := admin.NewService(bookingRepo, userRepo, roomRepo, log)
	adminHandler := admin.NewHandler(adminService, log)

	feedHandler := realtime.NewHandler(hub, j, cfg.CORSOrigins, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ErrorLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up", "feed_clients": hub.Count()})
	})

	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		feedHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j), middleware.RequireActiveUser(userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterAdminRoutes(protected)
			adminHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
