package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/codementorhq/code-mentor/internal/application"
	appmentor "github.com/codementorhq/code-mentor/internal/application/mentor"
	"github.com/codementorhq/code-mentor/internal/config"
	"github.com/codementorhq/code-mentor/internal/domain/ai"
	"github.com/codementorhq/code-mentor/internal/infra/ai/anthropic"
	openaiClient "github.com/codementorhq/code-mentor/internal/infra/ai/openai"
	"github.com/codementorhq/code-mentor/internal/infra/httpserver"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	// A missing or placeholder API key leaves the client nil; the service
	// then refuses each request with a configuration error instead of
	// failing confusingly mid-call.
	var client ai.Client
	if pc := cfg.ResolveProvider(); pc != nil {
		switch pc.Provider {
		case "anthropic":
			client = anthropic.NewClient(pc.APIKey, pc.Model, pc.BaseURL)
		default:
			client = openaiClient.NewClient(pc.APIKey, pc.Model, pc.BaseURL)
		}
		log.Printf("AI provider configured: %s", pc.Provider)
	} else {
		log.Printf("warning: no AI provider configured; analysis and chat will be refused")
	}

	svc := appmentor.NewService(client, application.SystemClock{})
	handler := httpserver.NewRouter(svc, cfg.AI.Provider, cfg.CORS.AllowedOrigins)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second, // completions are slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
