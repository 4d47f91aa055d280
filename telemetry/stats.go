package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// EpisodeStats summarizes one evaluation episode.
type EpisodeStats struct {
	Generation int   `csv:"generation"`
	Ticks      int32 `csv:"ticks"`
	Score      int   `csv:"score"`
	AliveAtEnd int   `csv:"alive_at_end"`

	Jumps          int `csv:"jumps"`
	Passes         int `csv:"passes"`
	Collisions     int `csv:"collisions"`
	OOBDeaths      int `csv:"oob_deaths"`
	DecisionErrors int `csv:"decision_errors"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s EpisodeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", int(s.Ticks)),
		slog.Int("score", s.Score),
		slog.Int("alive_at_end", s.AliveAtEnd),
		slog.Int("collisions", s.Collisions),
		slog.Int("oob_deaths", s.OOBDeaths),
		slog.Int("decision_errors", s.DecisionErrors),
	)
}

// GenerationStats summarizes one generation's fitness distribution.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Score      int `csv:"score"`
	Species    int `csv:"species"`

	FitnessBest float64 `csv:"fitness_best"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("score", s.Score),
		slog.Int("species", s.Species),
		slog.Float64("best", s.FitnessBest),
		slog.Float64("mean", s.FitnessMean),
		slog.Float64("std", s.FitnessStd),
		slog.Float64("p50", s.FitnessP50),
	)
}

// FitnessStats holds summary statistics of one fitness distribution.
type FitnessStats struct {
	Best, Mean, Std, P10, P50, P90 float64
}

// ComputeFitnessStats summarizes a fitness slice. The input is not
// modified. An empty slice yields zeros.
func ComputeFitnessStats(values []float64) FitnessStats {
	if len(values) == 0 {
		return FitnessStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	fs := FitnessStats{
		Best: sorted[len(sorted)-1],
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		fs.Std = stat.StdDev(sorted, nil)
	}
	return fs
}

// NewGenerationStats builds a GenerationStats record from a fitness
// distribution and episode outcome.
func NewGenerationStats(generation, score, species int, fitnesses []float64) GenerationStats {
	fs := ComputeFitnessStats(fitnesses)
	return GenerationStats{
		Generation:  generation,
		Score:       score,
		Species:     species,
		FitnessBest: fs.Best,
		FitnessMean: fs.Mean,
		FitnessStd:  fs.Std,
		FitnessP10:  fs.P10,
		FitnessP50:  fs.P50,
		FitnessP90:  fs.P90,
	}
}
