package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/status-im/market-aggregator/config"
	"github.com/status-im/market-aggregator/core"
)

func main() {
	configPath := "config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal("Error loading config:", err)
	}
	if err := cfg.Logging.Apply(); err != nil {
		log.Fatal("Error configuring logging:", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry, err := core.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to setup services:", err)
	}

	if err := registry.StartAll(ctx); err != nil {
		log.Fatal("Failed to start services:", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Received shutdown signal, stopping services...")
	cancel()
	registry.StopAll()
}
