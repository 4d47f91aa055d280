package evo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
	"github.com/pthm-cable/flock/telemetry"
)

// Organism pairs a genome with its last evaluated fitness.
type Organism struct {
	Genome    *genetics.Genome
	Fitness   float64
	SpeciesID int
}

// Population is a speciated population of genomes evolved against the
// evaluation environment. All randomness flows from the construction
// seed, so a run replays exactly.
type Population struct {
	ec   *config.EvolutionConfig
	opts *neat.Options
	rng  *rand.Rand

	idGen      *neural.GenomeIDGenerator
	organisms  []*Organism
	species    *SpeciesManager
	generation int
}

// NewPopulation creates a population of minimal seed genomes.
func NewPopulation(ec *config.EvolutionConfig, opts *neat.Options, seed int64) *Population {
	p := &Population{
		ec:      ec,
		opts:    opts,
		rng:     rand.New(rand.NewSource(seed)),
		idGen:   neural.NewGenomeIDGenerator(),
		species: NewSpeciesManager(opts),
	}

	p.organisms = make([]*Organism, ec.Population)
	for i := range p.organisms {
		p.organisms[i] = &Organism{
			Genome: neural.CreateSeedGenome(p.idGen.NextID(), p.rng),
		}
	}
	p.speciate()

	return p
}

// speciate assigns every organism to a species.
func (p *Population) speciate() {
	for _, o := range p.organisms {
		o.SpeciesID = p.species.Assign(o.Genome)
	}
}

// BuildDeciders builds one phenotype decider per organism, in population
// order.
func (p *Population) BuildDeciders() ([]sim.Decider, error) {
	deciders := make([]sim.Decider, len(p.organisms))
	for i, o := range p.organisms {
		d, err := neural.NewGenomeDecider(o.Genome)
		if err != nil {
			return nil, fmt.Errorf("organism %d: %w", i, err)
		}
		deciders[i] = d
	}
	return deciders, nil
}

// AssignResults stores episode results back onto the organisms. Results
// arrive in cohort order, which matches population order.
func (p *Population) AssignResults(results []sim.Result) {
	for i, r := range results {
		if i >= len(p.organisms) {
			break
		}
		o := p.organisms[i]
		o.Fitness = r.Fitness
		p.species.RecordFitness(o.SpeciesID, r.Fitness)
	}
}

// EvaluateShared evaluates the whole population as one cohort in a
// single shared episode and assigns the resulting fitness values.
func (p *Population) EvaluateShared(ctx context.Context, cfg *config.Config, episodeSeed int64, collector *telemetry.Collector) (score int, ticks int32, aliveAtEnd int, err error) {
	deciders, err := p.BuildDeciders()
	if err != nil {
		return 0, 0, 0, err
	}

	episode, err := sim.NewEpisode(cfg, episodeSeed, deciders)
	if err != nil {
		return 0, 0, 0, err
	}
	episode.SetCollector(collector)

	if err := episode.Run(ctx); err != nil {
		return 0, 0, 0, err
	}

	p.AssignResults(episode.Results())
	return episode.Score(), episode.Tick(), episode.AliveCount(), nil
}

// Reproduce produces the next generation: elites survive unchanged, the
// rest are offspring of tournament-selected parents with crossover and
// mutation, then the new population is respeciated.
func (p *Population) Reproduce() error {
	ranked := make([]*Organism, len(p.organisms))
	copy(ranked, p.organisms)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Fitness > ranked[j].Fitness })

	next := make([]*Organism, 0, len(p.organisms))

	// Elites carry over as exact copies.
	for i := 0; i < p.ec.Elitism && i < len(ranked); i++ {
		clone, err := neural.CloneGenome(ranked[i].Genome, p.idGen.NextID())
		if err != nil {
			return fmt.Errorf("cloning elite %d: %w", i, err)
		}
		next = append(next, &Organism{Genome: clone})
	}

	for len(next) < len(p.organisms) {
		parent1 := p.tournamentSelect(ranked)

		var child *genetics.Genome
		var err error
		if p.rng.Float64() < p.ec.CrossoverProb {
			parent2 := p.tournamentSelect(ranked)
			child, err = neural.CrossoverGenomes(p.rng,
				parent1.Genome, parent2.Genome,
				parent1.Fitness, parent2.Fitness,
				p.idGen.NextID())
			if err != nil {
				return fmt.Errorf("crossover: %w", err)
			}
		} else {
			child, err = neural.CloneGenome(parent1.Genome, p.idGen.NextID())
			if err != nil {
				return fmt.Errorf("cloning parent: %w", err)
			}
		}

		if _, err := neural.MutateGenome(p.rng, child, p.opts, p.idGen); err != nil {
			return fmt.Errorf("mutation: %w", err)
		}

		next = append(next, &Organism{Genome: child})
	}

	p.organisms = next
	p.species.EndGeneration()
	p.speciate()
	p.generation++

	return nil
}

// tournamentSelect picks the fittest of a random tournament.
func (p *Population) tournamentSelect(ranked []*Organism) *Organism {
	best := ranked[p.rng.Intn(len(ranked))]
	for i := 1; i < p.ec.TournamentSize; i++ {
		challenger := ranked[p.rng.Intn(len(ranked))]
		if challenger.Fitness > best.Fitness {
			best = challenger
		}
	}
	return best
}

// Best returns the organism with the highest last-evaluated fitness.
func (p *Population) Best() *Organism {
	if len(p.organisms) == 0 {
		return nil
	}
	best := p.organisms[0]
	for _, o := range p.organisms[1:] {
		if o.Fitness > best.Fitness {
			best = o
		}
	}
	return best
}

// Fitnesses returns all fitness values in population order.
func (p *Population) Fitnesses() []float64 {
	out := make([]float64, len(p.organisms))
	for i, o := range p.organisms {
		out[i] = o.Fitness
	}
	return out
}

// Size returns the population size.
func (p *Population) Size() int { return len(p.organisms) }

// Generation returns the number of completed reproduction cycles.
func (p *Population) Generation() int { return p.generation }

// SpeciesCount returns the number of active species.
func (p *Population) SpeciesCount() int { return p.species.Count() }
