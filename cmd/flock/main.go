// Package main runs headless neuroevolution against the flapping
// environment and writes per-generation telemetry.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/evo"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	generations := flag.Int("generations", 0, "Number of generations (0 = use config)")
	popSize := flag.Int("pop-size", 0, "Population size (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	isolated := flag.Bool("isolated", false, "Evaluate each genome in its own episode instead of one shared cohort")
	logStats := flag.Bool("log-stats", false, "Output per-episode stats via slog")
	targetScore := flag.Int("target-score", 0, "Stop once a generation reaches this score (0 = run all generations)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *generations > 0 {
		cfg.Evolution.Generations = *generations
	}
	if *popSize > 0 {
		cfg.Evolution.Population = *popSize
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pop := evo.NewPopulation(&cfg.Evolution, neural.DefaultNEATOptions(), rngSeed)

	slog.Info("starting evolution",
		"seed", rngSeed,
		"population", cfg.Evolution.Population,
		"generations", cfg.Evolution.Generations,
		"isolated", *isolated,
	)

	start := time.Now()
	for gen := 0; gen < cfg.Evolution.Generations; gen++ {
		// Each generation gets its own obstacle course, derived from the
		// run seed so the whole run replays.
		episodeSeed := rngSeed + int64(gen)

		var score int
		var ticks int32
		var aliveAtEnd int
		collector := telemetry.NewCollector()

		if *isolated {
			score, err = pop.EvaluateIsolated(ctx, cfg, episodeSeed)
		} else {
			score, ticks, aliveAtEnd, err = pop.EvaluateShared(ctx, cfg, episodeSeed, collector)
		}
		if err != nil {
			slog.Error("evaluation failed", "generation", gen, "error", err)
			os.Exit(1)
		}

		genStats := telemetry.NewGenerationStats(gen, score, pop.SpeciesCount(), pop.Fitnesses())
		if err := output.WriteGeneration(genStats); err != nil {
			slog.Error("failed to write generation stats", "error", err)
			os.Exit(1)
		}
		epStats := collector.Flush(gen, ticks, score, aliveAtEnd)
		if err := output.WriteEpisode(epStats); err != nil {
			slog.Error("failed to write episode stats", "error", err)
			os.Exit(1)
		}

		if *logStats {
			slog.Info("generation complete", "stats", genStats, "episode", epStats)
		}

		if *targetScore > 0 && score >= *targetScore {
			slog.Info("target score reached", "generation", gen, "score", score)
			break
		}

		if err := pop.Reproduce(); err != nil {
			slog.Error("reproduction failed", "generation", gen, "error", err)
			os.Exit(1)
		}
	}

	best := pop.Best()
	slog.Info("evolution finished",
		"generations", pop.Generation(),
		"best_fitness", best.Fitness,
		"best_genes", len(best.Genome.Genes),
		"best_nodes", len(best.Genome.Nodes),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}
