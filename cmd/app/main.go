package main

import (
	"flag"
	"log"
	"os"

	"BtcPulse/internal/di"
	"BtcPulse/pkg/config"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "config/config.yaml", "config file path")
	flag.Parse()

	// Load config
	cfg, err := config.LoadWithEnv(*configPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	cfg.ApplyDefaults()

	log.Printf("env=%s coin=%s", cfg.Environment, cfg.CoinGecko.CoinID)

	// Wire DI: Initialize all dependencies
	app, err := di.InitializeApp(cfg)
	if err != nil {
		log.Fatalf("app initialization failed: %v", err)
	}

	if cfg.Kafka.Enabled {
		log.Printf("kafka: brokers=%v alerts_topic=%s", cfg.Kafka.Brokers, cfg.Kafka.AlertsTopic)
	}

	// Run application (blocks until signal)
	if err := app.Run(); err != nil {
		log.Printf("app error: %v", err)
		os.Exit(1)
	}
}
