package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-writing-be/internal/bootstrap"
	"ai-writing-be/internal/config"
	"ai-writing-be/internal/server"
	"ai-writing-be/internal/tracer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 0. Tracing (opt-in)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Configuration
	cfg := config.Load()

	// 2. Dependencies
	container, err := bootstrap.NewContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("[FATAL] Failed to bootstrap: %v", err)
	}

	// 3. Background services
	if err := container.PersistConsumer.Consume(ctx); err != nil {
		log.Fatalf("[FATAL] Failed to start persist consumer: %v", err)
	}
	if err := container.ActivityHandler.Start(); err != nil {
		log.Printf("[WARN] Activity relay disabled: %v", err)
	}

	// 4. Server
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("[ERROR] Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] Server shutdown: %v", err)
	}
	container.Close(shutdownCtx)
}
