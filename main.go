package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hopelesspoet/Conway-s-Game-of-Life/utils"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	flag.Parse()

	log := utils.NewLogger(os.Stderr, utils.LevelInfo)

	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		log.Warnf("using default configuration: %v", err)
		config = utils.DefaultConfig()
	}
	log.SetLevel(utils.LevelFromString(config.LogLevel))

	g, err := initializeGame(config, os.Stdout, log)
	if err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
	}
	g.displayGameInfo()

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = g.player.Start(config.IntervalMillis()); err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
	}

	if err = g.monitor(ctx); err != nil {
		log.Errorf("%+v", err)
	}
	g.player.Stop()

	stats := g.player.Stats()
	fmt.Printf("Final stats: %d generations in %.1f seconds\n",
		stats.TotalGenerations, stats.Runtime.Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
