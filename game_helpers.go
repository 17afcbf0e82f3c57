package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/hopelesspoet/Conway-s-Game-of-Life/model"
	"github.com/hopelesspoet/Conway-s-Game-of-Life/playback"
	"github.com/hopelesspoet/Conway-s-Game-of-Life/utils"
)

// game bundles the engine pieces the demo drives
type game struct {
	config   utils.Config
	board    *model.Board
	player   *playback.Controller
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	log      *utils.Logger
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, out io.Writer, log *utils.Logger) (*game, error) {
	opts := []model.BoardOption{model.WithLogger(log)}
	if config.Seed != 0 {
		opts = append(opts, model.WithSeed(config.Seed))
	}
	board, err := model.NewBoard(config.Width, config.Height, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to create board")
	}

	g := &game{
		config:   config,
		board:    board,
		renderer: &model.TerminalRenderer{Out: out},
		stats:    utils.NewStats(),
		log:      log,
	}
	g.player = playback.New(board, playback.WithLogger(log), playback.WithStats(g.stats))

	if err = board.SeedInterestingPatterns(config.FillPercent); err != nil {
		return nil, errors.Wrap(err, "[initializeGame] failed to seed board")
	}

	// Subscribe after seeding so the stamps do not each redraw.
	board.OnChange(func(f model.Frame) {
		g.renderer.Clear()
		g.displayGameStatus(f)
		if err := g.renderer.Display(f); err != nil {
			log.Errorf("[render] %v", err)
		}
	})
	return g, nil
}

// displayGameInfo shows the initial game information
func (g *game) displayGameInfo() {
	fmt.Fprintf(g.renderer.Out, "Grid: %dx%d | Initial living cells: %d | %d moves/sec\n",
		g.config.Width, g.config.Height, g.board.Population(), g.config.MovesPerSecond)
	fmt.Fprintln(g.renderer.Out, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(g.renderer.Out)
}

// displayGameStatus shows the current game status
func (g *game) displayGameStatus(f model.Frame) {
	stats := g.stats.Snapshot()

	livingCells := f.Cells.Len()
	density := 0.0
	if area := f.Viewport.Area(); area > 0 {
		density = float64(livingCells) / float64(area) * 100
	}

	status := "Active"
	if stats.Stagnant {
		status = "Stagnant"
	}
	if livingCells == 0 {
		status = "Extinct"
	}

	fmt.Fprintf(g.renderer.Out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		f.Generation, livingCells, density, status)
	fmt.Fprintf(g.renderer.Out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime.Seconds())
	fmt.Fprintln(g.renderer.Out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(stats utils.StatsSnapshot, stagnantCount int, config utils.Config) (bool, string) {
	if stats.TotalGenerations > 0 && stats.Population == 0 {
		return true, "extinction"
	}
	if config.StagnationThreshold > 0 && stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame stops playback, reseeds the board and resumes
func (g *game) restartGame(ctx context.Context, reason string) error {
	g.log.Infof("[restartGame] restarting due to %s", reason)

	g.player.Stop()
	g.board.Clear()
	if err := g.player.ResetHistory(ctx); err != nil {
		return errors.Wrap(err, "[restartGame] failed to reset history")
	}
	if err := g.board.SeedInterestingPatterns(g.config.FillPercent); err != nil {
		return errors.Wrap(err, "[restartGame] failed to seed board")
	}
	g.log.Infof("[restartGame] new patterns loaded, living cells: %d", g.board.Population())

	return g.player.Start(g.config.IntervalMillis())
}

// monitor polls playback statistics and restarts or stops the game until ctx
// is done or the generation limit is reached
func (g *game) monitor(ctx context.Context) error {
	interval := time.Duration(g.config.IntervalMillis()) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		stagnantCount  int
		lastGeneration int
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		stats := g.player.Stats()
		if stats.TotalGenerations == lastGeneration {
			continue
		}
		lastGeneration = stats.TotalGenerations

		if g.config.MaxGenerations > 0 && stats.TotalGenerations >= g.config.MaxGenerations {
			g.log.Infof("[monitor] reached maximum generations limit (%d)", g.config.MaxGenerations)
			return nil
		}

		if stats.Stagnant {
			stagnantCount++
		} else {
			stagnantCount = 0
		}

		shouldRestart, reason := checkRestartConditions(stats, stagnantCount, g.config)
		if !shouldRestart || !g.config.AutoRestart {
			continue
		}
		if err := g.restartGame(ctx, reason); err != nil {
			return err
		}
		stagnantCount, lastGeneration = 0, 0
	}
}
