package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/reelist/reelist/internal/config"
	"github.com/reelist/reelist/internal/db"
	"github.com/reelist/reelist/internal/jobs"
	"github.com/reelist/reelist/internal/server"
)

func main() {
	log.Println("reelist starting...")

	cfg := config.Load()

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.OMDbAPIKey == "" {
		log.Println("OMDB_API_KEY not set; catalog lookups will fail")
	}

	srv := server.New(cfg, database)

	var queue *jobs.Queue
	if cfg.JobsEnabled() {
		queue = jobs.NewQueue(cfg.RedisAddr)
		if err := queue.RegisterSessionPurge(srv.Sessions); err != nil {
			log.Fatalf("job registration failed: %v", err)
		}
		if err := queue.Start(); err != nil {
			log.Fatalf("job queue failed: %v", err)
		}
		defer queue.Shutdown()
	}

	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      srv.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("listening on :%d", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	httpServer.Shutdown(ctx)
}
