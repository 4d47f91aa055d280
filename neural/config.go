// Package neural adapts goNEAT genomes and networks to the environment's
// decision-function interface and provides the genome operators used by
// the optimizer.
package neural

import "github.com/yaricom/goNEAT/v4/neat"

// NetInputs is the number of sensory inputs: the agent's height and its
// vertical distances to the target gap's edges.
const NetInputs = 3

// NetOutputs is the number of network outputs: the jump signal.
const NetOutputs = 1

// DefaultNEATOptions returns NEAT options tuned for the flapping task.
func DefaultNEATOptions() *neat.Options {
	return &neat.Options{
		// Weight mutation
		WeightMutPower:        2.5,
		MutateLinkWeightsProb: 0.8,

		// Structural mutation rates
		MutateAddNodeProb:      0.05,
		MutateAddLinkProb:      0.10,
		MutateToggleEnableProb: 0.01,

		// Speciation
		CompatThreshold: 2.3,
		DisjointCoeff:   1.0,
		ExcessCoeff:     1.0,
		MutdiffCoeff:    0.4,

		// Species management
		DropOffAge:     15,
		SurvivalThresh: 0.2,

		// Reference population size; the actual size comes from the
		// evolution config.
		PopSize: 50,
	}
}
