package neural

import (
	"math/rand"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// CreateSeedGenome creates a minimal starting genome: the three sensors
// fully connected to a single tanh output with small random weights. All
// seed genomes share the same innovation numbering so crossover aligns.
func CreateSeedGenome(id int, rng *rand.Rand) *genetics.Genome {
	nodes := make([]*network.NNode, 0, NetInputs+NetOutputs)

	for i := 1; i <= NetInputs; i++ {
		node := network.NewNNode(i, network.InputNeuron)
		node.ActivationType = neatmath.LinearActivation
		nodes = append(nodes, node)
	}

	for i := 1; i <= NetOutputs; i++ {
		node := network.NewNNode(NetInputs+i, network.OutputNeuron)
		node.ActivationType = neatmath.TanhActivation
		nodes = append(nodes, node)
	}

	genes := make([]*genetics.Gene, 0, NetInputs*NetOutputs)
	innovNum := int64(1)
	for i := 0; i < NetInputs; i++ {
		for j := 0; j < NetOutputs; j++ {
			gene := genetics.NewGeneWithTrait(
				nil,
				rng.Float64()*2-1,
				nodes[i],
				nodes[NetInputs+j],
				false,
				innovNum,
				0,
			)
			genes = append(genes, gene)
			innovNum++
		}
	}

	return genetics.NewGenome(id, nil, nodes, genes)
}
