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

	"video-summarizer/pkg/config"
	"video-summarizer/pkg/db"
	"video-summarizer/pkg/gemini"
	"video-summarizer/pkg/processor"
	"video-summarizer/pkg/server"
	"video-summarizer/pkg/youtube"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	dbClient := db.NewClient(cfg.MongoURI, cfg.DatabaseName, cfg.CollectionName)
	if err := dbClient.Connect(ctx); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer dbClient.Close(ctx)

	if err := dbClient.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	ytClient := youtube.NewClient(cfg.YouTubeAPIKey)

	geminiClient, err := gemini.NewClient(gemini.Config{
		APIKey:            cfg.GeminiAPIKey,
		Model:             cfg.GeminiModel,
		BaseURL:           cfg.GeminiBaseURL,
		RequestsPerMinute: cfg.GeminiRPM,
	})
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	proc := processor.NewProcessor(dbClient, ytClient, geminiClient, geminiClient)
	pool := processor.NewPool(proc, cfg.WorkerCount, cfg.QueueSize)
	pool.Start(ctx)
	log.Printf("Started %d background workers (queue size %d)", cfg.WorkerCount, cfg.QueueSize)

	srv := server.New(dbClient, ytClient, pool)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	go func() {
		log.Printf("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown error: %v", err)
	}

	// Let queued and in-flight pipelines finish before closing the store.
	pool.Shutdown()
	log.Println("All workers stopped")
}
