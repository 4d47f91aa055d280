package neural

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"

	"github.com/pthm-cable/flock/sim"
)

// fallbackDepth is used when the network cannot report its own
// activation depth (e.g. it contains loops).
const fallbackDepth = 5

// GenomeDecider wraps a goNEAT genome's phenotype network as a decision
// function. One decider drives one agent for one episode.
type GenomeDecider struct {
	genome *genetics.Genome
	net    *network.Network
	depth  int
}

// NewGenomeDecider builds the phenotype network from a genome.
func NewGenomeDecider(genome *genetics.Genome) (*GenomeDecider, error) {
	phenotype, err := genome.Genesis(genome.Id)
	if err != nil {
		return nil, fmt.Errorf("building phenotype for genome %d: %w", genome.Id, err)
	}

	depth, err := phenotype.MaxActivationDepth()
	if err != nil || depth < 1 {
		depth = fallbackDepth
	}

	return &GenomeDecider{genome: genome, net: phenotype, depth: depth}, nil
}

// Genome returns the underlying genome.
func (d *GenomeDecider) Genome() *genetics.Genome {
	return d.genome
}

// Decide implements sim.Decider: it feeds the observation through the
// network and returns the jump output. The network is flushed afterwards
// so each decision is a pure function of its observation.
func (d *GenomeDecider) Decide(obs sim.Observation) (float64, error) {
	if err := d.net.LoadSensors([]float64{obs.Y, obs.TopDist, obs.BottomDist}); err != nil {
		return 0, fmt.Errorf("loading sensors: %w", err)
	}

	for i := 0; i < d.depth; i++ {
		if _, err := d.net.Activate(); err != nil {
			return 0, fmt.Errorf("activating network: %w", err)
		}
	}

	outputs := d.net.ReadOutputs()

	if _, err := d.net.Flush(); err != nil {
		return 0, fmt.Errorf("flushing network: %w", err)
	}

	if len(outputs) == 0 {
		return 0, fmt.Errorf("network produced no outputs")
	}
	return outputs[0], nil
}
