// Package evo implements the population-based optimizer that searches
// decision functions against the evaluation environment. The environment
// never imports this package; it consumes deciders through the sim
// interfaces and reads back fitness reports.
package evo

import (
	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"

	"github.com/pthm-cable/flock/neural"
)

// Species is a group of genetically similar organisms.
type Species struct {
	ID             int
	Representative *genetics.Genome // Used for compatibility comparisons
	Members        int
	BestFitness    float64
	Age            int // Generations since species was created
	Staleness      int // Generations without fitness improvement
}

// SpeciesManager assigns organisms to species by compatibility distance
// and retires species that stop improving.
type SpeciesManager struct {
	Species       []*Species
	opts          *neat.Options
	nextSpeciesID int
}

// NewSpeciesManager creates a new species manager.
func NewSpeciesManager(opts *neat.Options) *SpeciesManager {
	return &SpeciesManager{opts: opts, nextSpeciesID: 1}
}

// Assign finds a compatible species for the genome or creates a new one,
// and returns its ID.
func (sm *SpeciesManager) Assign(genome *genetics.Genome) int {
	for _, sp := range sm.Species {
		if sp.Representative == nil {
			continue
		}
		dist := neural.GenomeCompatibility(genome, sp.Representative, sm.opts)
		if dist < sm.opts.CompatThreshold {
			sp.Members++
			return sp.ID
		}
	}

	sp := &Species{
		ID:             sm.nextSpeciesID,
		Representative: genome,
		Members:        1,
	}
	sm.nextSpeciesID++
	sm.Species = append(sm.Species, sp)
	return sp.ID
}

// RecordFitness updates a species' best fitness and resets its staleness
// on improvement.
func (sm *SpeciesManager) RecordFitness(speciesID int, fitness float64) {
	for _, sp := range sm.Species {
		if sp.ID == speciesID {
			if fitness > sp.BestFitness {
				sp.BestFitness = fitness
				sp.Staleness = 0
			}
			return
		}
	}
}

// EndGeneration ages all species, removes stale or empty ones, and
// clears member counts for the next assignment pass.
func (sm *SpeciesManager) EndGeneration() {
	active := make([]*Species, 0, len(sm.Species))
	for _, sp := range sm.Species {
		sp.Age++
		sp.Staleness++
		if sp.Members > 0 && sp.Staleness < sm.opts.DropOffAge {
			sp.Members = 0
			active = append(active, sp)
		}
	}
	sm.Species = active
}

// Count returns the number of active species.
func (sm *SpeciesManager) Count() int {
	return len(sm.Species)
}
