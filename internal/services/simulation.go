package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gbm-go-api/internal/config"
	"gbm-go-api/internal/gbm"
	"gbm-go-api/internal/metrics"
	"gbm-go-api/internal/models"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"
)

// SimulationService runs GBM simulations and keeps recent results
// retrievable by id.
type SimulationService struct {
	config     *config.Config
	logger     *zap.Logger
	registry   *ResultRegistry
	workerPool chan struct{} // Semaphore for bounded concurrency
}

func NewSimulationService(cfg *config.Config, logger *zap.Logger) *SimulationService {
	return &SimulationService{
		config:     cfg,
		logger:     logger,
		registry:   NewResultRegistry(cfg.ResultTTL),
		workerPool: make(chan struct{}, cfg.MaxConcurrentPaths),
	}
}

// Run simulates a single path and registers the result. Parameter
// violations surface as gbm.ErrInvalidParameter for the boundary to map
// to a client error.
func (s *SimulationService) Run(ctx context.Context, req models.SimulateRequest) (*models.SimulateResponse, error) {
	start := time.Now()

	sim, err := newSimulator(req)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	path, err := sim.SimulatePath(req.Horizon, req.Steps)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	summary, err := summarize(path.Values)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("summarize path: %w", err)
	}

	resp := &models.SimulateResponse{
		ID:            uuid.NewString(),
		TValues:       path.Times,
		YValues:       path.Values,
		ResultSummary: summary,
		GeneratedAt:   time.Now(),
	}
	s.registry.Put(resp)

	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	metrics.SimulationSteps.Observe(float64(req.Steps))

	s.logger.Info("simulated path",
		zap.String("id", resp.ID),
		zap.Int("steps", req.Steps),
		zap.Float64("horizon", req.Horizon),
		zap.Bool("seeded", req.Seed != nil),
		zap.Duration("elapsed", time.Since(start)),
	)

	return resp, nil
}

// Result looks up a recent simulation by id.
func (s *SimulationService) Result(id string) (*models.SimulateResponse, bool) {
	return s.registry.Get(id)
}

// RunBatch simulates req.Paths independent paths with bounded concurrency
// and aggregates their terminal values. A seeded batch derives path i's
// seed as seed+i, keeping the whole batch reproducible.
func (s *SimulationService) RunBatch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	start := time.Now()

	if req.Paths < 1 {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, fmt.Errorf("%w: paths must be at least 1", gbm.ErrInvalidParameter)
	}

	sim, err := newSimulator(req.SimulateRequest)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	// Run the first path synchronously so parameter violations reject the
	// batch before any workers start.
	finals := make([]float64, req.Paths)
	first, err := s.simulateOne(sim, req, 0)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	finals[0] = first

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := 1; i < req.Paths; i++ {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			// Acquire worker slot (bounded concurrency)
			s.workerPool <- struct{}{}
			defer func() { <-s.workerPool }()

			if err := ctx.Err(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			final, err := s.simulateOne(sim, req, idx)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			finals[idx] = final
		}(i)
	}

	wg.Wait()

	if firstErr != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("batch simulation: %w", firstErr)
	}

	stat, err := finalValueStats(finals)
	if err != nil {
		metrics.SimulationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("aggregate batch: %w", err)
	}

	metrics.SimulationsTotal.WithLabelValues("ok").Inc()
	metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	metrics.SimulationSteps.Observe(float64(req.Steps))

	s.logger.Info("simulated batch",
		zap.Int("paths", req.Paths),
		zap.Int("steps", req.Steps),
		zap.Float64("horizon", req.Horizon),
		zap.Bool("seeded", req.Seed != nil),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &models.BatchResponse{
		ID:          uuid.NewString(),
		Paths:       req.Paths,
		FinalValues: stat,
		GeneratedAt: time.Now(),
	}, nil
}

func (s *SimulationService) simulateOne(sim *gbm.Simulator, req models.BatchRequest, idx int) (float64, error) {
	var (
		path gbm.Path
		err  error
	)
	if req.Seed != nil {
		path, err = sim.SimulatePathSeeded(req.Horizon, req.Steps, *req.Seed+int64(idx))
	} else {
		path, err = sim.SimulatePath(req.Horizon, req.Steps)
	}
	if err != nil {
		return 0, err
	}
	return path.Values[len(path.Values)-1], nil
}

func newSimulator(req models.SimulateRequest) (*gbm.Simulator, error) {
	var opts []gbm.Option
	if req.Seed != nil {
		opts = append(opts, gbm.WithSeed(*req.Seed))
	}
	return gbm.NewSimulator(req.InitialValue, req.Drift, req.Volatility, opts...)
}

// summarize formats the summary line derived from a path's values.
func summarize(values []float64) (string, error) {
	final := values[len(values)-1]
	mean, err := stats.Mean(values)
	if err != nil {
		return "", err
	}
	std, err := stats.StandardDeviation(values)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Final value: %.4f, mean: %.4f, std: %.4f", final, mean, std), nil
}

func finalValueStats(finals []float64) (models.FinalValueStat, error) {
	mean, err := stats.Mean(finals)
	if err != nil {
		return models.FinalValueStat{}, err
	}
	std, err := stats.StandardDeviation(finals)
	if err != nil {
		return models.FinalValueStat{}, err
	}
	min, err := stats.Min(finals)
	if err != nil {
		return models.FinalValueStat{}, err
	}
	max, err := stats.Max(finals)
	if err != nil {
		return models.FinalValueStat{}, err
	}

	var pct models.Percentiles
	for _, p := range []struct {
		q   float64
		dst *float64
	}{
		{5, &pct.P5},
		{50, &pct.P50},
		{95, &pct.P95},
	} {
		v, err := stats.Percentile(finals, p.q)
		if err != nil {
			return models.FinalValueStat{}, err
		}
		*p.dst = v
	}

	return models.FinalValueStat{
		Mean:        mean,
		StdDev:      std,
		Min:         min,
		Max:         max,
		Percentiles: pct,
	}, nil
}
