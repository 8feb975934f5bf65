package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wedding-rsvp/core/cache"
	"wedding-rsvp/core/config"
	"wedding-rsvp/core/database"
	"wedding-rsvp/core/logger"
	"wedding-rsvp/core/metrics"
	coremw "wedding-rsvp/core/middleware"
	"wedding-rsvp/core/queue"
	"wedding-rsvp/modules/admin"
	"wedding-rsvp/modules/auth"
	"wedding-rsvp/modules/notification"
	"wedding-rsvp/modules/notification/mailer"
	"wedding-rsvp/modules/rsvp"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Run boots every subsystem and blocks until shutdown: config, database,
// redis, the background email worker, then the HTTP server.
func Run() error {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.InitDB(database.DatabaseConfig{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	cacheInstance, err := cache.InitCache(cache.CacheConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}

	queueConfig := queue.QueueConfig{
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}
	taskQueue := queue.NewQueue(queueConfig)
	defer taskQueue.Close()

	workerServer := queue.NewServer(queueConfig)
	mux := asynq.NewServeMux()

	smtpMailer := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	notifService := notification.Init(mux, taskQueue, smtpMailer)

	if err := workerServer.Start(mux); err != nil {
		return fmt.Errorf("start background worker: %w", err)
	}
	defer workerServer.Shutdown()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())

	mw := coremw.New()
	e.Use(mw.RequestLogger())

	observer := metrics.NewPrometheusObserver()
	rsvpService := rsvp.Init(e, db, cacheInstance, notifService, observer)
	auth.Init(e, cacheInstance)
	admin.Init(e, rsvpService, mw)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Start:Error", "error", err)
		}
	}()
	logger.Info("Server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
