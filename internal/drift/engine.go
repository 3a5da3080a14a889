package drift

import (
	"math/rand/v2"

	"github.com/seaguard/driftwatch/internal/models"
)

// Engine runs Monte Carlo drift simulations. Every Run draws from its own
// generator, so an Engine may be shared between goroutines.
type Engine struct {
	// HourlyCentroids computes predicted points per simulated hour index
	// across paths instead of chunking pooled samples in generation order.
	HourlyCentroids bool

	seeded bool
	seed   uint64
}

// NewEngine creates an engine whose runs use fresh random draws
func NewEngine() *Engine {
	return &Engine{}
}

// NewSeededEngine creates an engine whose runs are reproducible: every Run
// with the same inputs returns the same result.
func NewSeededEngine(seed uint64) *Engine {
	return &Engine{seeded: true, seed: seed}
}

func (e *Engine) newRand() *rand.Rand {
	if e.seeded {
		return rand.New(rand.NewPCG(e.seed, e.seed^0xda3e39cb94b95bdb))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Run samples numPaths independent paths of hours steps from start under
// weather and aggregates them. Range validation is the caller's job; zero
// paths or hours yield empty predicted points and heatmap.
func (e *Engine) Run(start models.Position, weather models.WeatherSample, hours, numPaths int) models.SimulationResult {
	sampler := NewSampler(e.newRand())

	paths := make([]models.DriftPath, 0, max(numPaths, 0))
	for i := 0; i < numPaths; i++ {
		paths = append(paths, sampler.SamplePath(start, weather, hours))
	}

	samples := PooledSamples(paths)

	var predicted []models.Position
	if e.HourlyCentroids {
		predicted = HourlyCentroids(paths, hours)
	} else {
		predicted = ChunkedCentroids(samples, hours)
	}

	return models.SimulationResult{
		PredictedPoints: predicted,
		HeatmapPoints:   BuildHeatmap(samples),
		DriftPaths:      paths,
	}
}

// PooledSamples flattens every non-initial position of every path, path by
// path, in generation order
func PooledSamples(paths []models.DriftPath) []models.Position {
	n := 0
	for _, p := range paths {
		if len(p) > 1 {
			n += len(p) - 1
		}
	}

	samples := make([]models.Position, 0, n)
	for _, p := range paths {
		if len(p) > 1 {
			samples = append(samples, p[1:]...)
		}
	}
	return samples
}
