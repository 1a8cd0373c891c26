package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kumarimahto/Smart-Tracer/internal/ai"
	"github.com/kumarimahto/Smart-Tracer/internal/config"
	"github.com/kumarimahto/Smart-Tracer/internal/database"
	"github.com/kumarimahto/Smart-Tracer/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	// Without an API key the insight service still works, serving its
	// deterministic fallbacks for every AI-backed endpoint.
	var gen ai.TextGenerator
	if cfg.AI.APIKey != "" {
		client, err := ai.NewGeminiClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("init gemini client: %v", err)
		}
		defer client.Close()
		gen = client
	} else {
		log.Printf("GEMINI_API_KEY not set, AI insights run in fallback mode")
	}

	r := router.SetupRouter(cfg, db, gen)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
