// Package gbm simulates sample paths of a Geometric Brownian Motion
// process:
//
//	dY_t = mu * Y_t * dt + sigma * Y_t * dW_t
//
// Paths are generated with the exact log-space discretization
//
//	Y(t_i) = Y(0) * exp((mu - sigma^2/2) * t_i + sigma * W(t_i))
//
// which keeps every sample strictly positive for any finite inputs,
// unlike a direct Euler-Maruyama step on Y.
package gbm

import "math"

// Path is one simulated trajectory: Times and Values are aligned
// index-for-index, with Times[0] == 0 and Values[0] equal to the
// simulator's initial value.
type Path struct {
	Times  []float64
	Values []float64
}

// Simulator produces GBM paths for one fixed parameter set. It is
// immutable after construction and safe for concurrent use.
type Simulator struct {
	initial    float64
	drift      float64
	volatility float64
	seed       *int64
	source     NormalSource
}

// Option configures a Simulator at construction time.
type Option func(*Simulator)

// WithSeed fixes a default seed, used whenever SimulatePath is called
// without a call-time seed. Paths become reproducible across processes.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		v := seed
		s.seed = &v
	}
}

// WithSource swaps the standard-normal source (tests inject fixed draws).
func WithSource(src NormalSource) Option {
	return func(s *Simulator) {
		s.source = src
	}
}

// NewSimulator validates the process parameters and returns a simulator.
// The initial value must be positive and volatility non-negative; drift
// is unconstrained.
func NewSimulator(initial, drift, volatility float64, opts ...Option) (*Simulator, error) {
	if initial <= 0 {
		return nil, invalidParameter("initial value must be positive")
	}
	if volatility < 0 {
		return nil, invalidParameter("volatility must be non-negative")
	}

	s := &Simulator{
		initial:    initial,
		drift:      drift,
		volatility: volatility,
		source:     Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Initial returns the process starting value.
func (s *Simulator) Initial() float64 { return s.initial }

// Drift returns mu.
func (s *Simulator) Drift() float64 { return s.drift }

// Volatility returns sigma.
func (s *Simulator) Volatility() float64 { return s.volatility }

// SimulatePath simulates one path over [0, horizon] using steps intervals
// (steps+1 sample points). Seeding falls back to the constructor default,
// then to system entropy.
func (s *Simulator) SimulatePath(horizon float64, steps int) (Path, error) {
	return s.simulate(horizon, steps, s.seed)
}

// SimulatePathSeeded is SimulatePath with a call-time seed that overrides
// any constructor default.
func (s *Simulator) SimulatePathSeeded(horizon float64, steps int, seed int64) (Path, error) {
	return s.simulate(horizon, steps, &seed)
}

func (s *Simulator) simulate(horizon float64, steps int, seed *int64) (Path, error) {
	if horizon <= 0 {
		return Path{}, invalidParameter("horizon must be positive")
	}
	if steps < 1 {
		return Path{}, invalidParameter("steps must be at least 1")
	}

	dt := horizon / float64(steps)

	times := make([]float64, steps+1)
	for i := range times {
		times[i] = float64(i) * dt
	}
	// Pin the endpoint so it equals the horizon exactly instead of
	// carrying rounding from float64(steps) * dt.
	times[steps] = horizon

	z := s.source.StandardNormals(steps, seed)

	driftTerm := s.drift - 0.5*s.volatility*s.volatility
	sqrtDt := math.Sqrt(dt)

	values := make([]float64, steps+1)
	values[0] = s.initial

	w := 0.0
	for i := 1; i <= steps; i++ {
		w += sqrtDt * z[i-1]
		values[i] = s.initial * math.Exp(driftTerm*times[i]+s.volatility*w)
	}

	return Path{Times: times, Values: values}, nil
}
