package evo

import (
	"context"
	"runtime"
	"sync"

	"github.com/pthm-cable/flock/config"
	"github.com/pthm-cable/flock/neural"
	"github.com/pthm-cable/flock/sim"
)

// EvaluateIsolated evaluates every organism in its own single-agent
// episode, fanned out over a worker pool. Each episode uses the same
// seed, so all genomes face an identical obstacle course and scores are
// directly comparable. Episodes share nothing; workers write only their
// own result slots, and species bookkeeping happens after the pool
// drains.
//
// It returns the best score across the population.
func (p *Population) EvaluateIsolated(ctx context.Context, cfg *config.Config, episodeSeed int64) (int, error) {
	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(p.organisms) {
		numWorkers = len(p.organisms)
	}

	jobs := make(chan int)
	fitnesses := make([]float64, len(p.organisms))
	scores := make([]int, len(p.organisms))

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	fail := func(err error) {
		once.Do(func() { firstErr = err })
	}

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				d, err := neural.NewGenomeDecider(p.organisms[i].Genome)
				if err != nil {
					fail(err)
					continue
				}

				episode, err := sim.NewEpisode(cfg, episodeSeed, []sim.Decider{d})
				if err != nil {
					fail(err)
					continue
				}
				if err := episode.Run(ctx); err != nil {
					fail(err)
					continue
				}

				fitnesses[i] = episode.Results()[0].Fitness
				scores[i] = episode.Score()
			}
		}()
	}

feed:
	for i := range p.organisms {
		select {
		case <-ctx.Done():
			fail(ctx.Err())
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return 0, firstErr
	}

	best := 0
	for i, o := range p.organisms {
		o.Fitness = fitnesses[i]
		p.species.RecordFitness(o.SpeciesID, o.Fitness)
		if scores[i] > best {
			best = scores[i]
		}
	}
	return best, nil
}
