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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/schoolhub/classroom/internal/auth"
	"github.com/schoolhub/classroom/internal/config"
	"github.com/schoolhub/classroom/internal/events"
	"github.com/schoolhub/classroom/internal/graph"
	"github.com/schoolhub/classroom/internal/httpserver"
	"github.com/schoolhub/classroom/internal/repo"
	"github.com/schoolhub/classroom/internal/search"
	"github.com/schoolhub/classroom/internal/tokens"
	"github.com/schoolhub/classroom/pkg/logging"
	loggingmw "github.com/schoolhub/classroom/pkg/middleware/logging"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	var producer *events.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = events.NewProducer(configuration.KAFKA_ADDRESS)
	}

	taskIndexer := &search.TaskIndexer{}
	if configuration.ES_URL != "" {
		esClient, err := search.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		taskIndexer.ES = esClient
	}

	codec := tokens.NewCodec(
		[]byte(configuration.ACCESS_SECRET),
		[]byte(configuration.REFRESH_SECRET),
	)
	repository := repo.New(db)

	resolver := &graph.Resolver{
		Repo:     repository,
		Auth:     auth.NewService(repository, codec),
		Guard:    auth.NewGuard(codec),
		Producer: producer,
		Tasks:    taskIndexer,
	}

	schema, err := graph.NewSchema(resolver)
	if err != nil {
		log.Fatalf("schema init: %v", err)
	}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{Schema: schema})

	srv := &http.Server{
		Addr:         configuration.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", configuration.HTTP_ADDR)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	logger.Info("shutdown complete")
}
