package models

import "time"

// SimulateRequest carries GBM parameters for one simulation. Field names
// follow the conventional process notation: y0 initial value, mu drift,
// sigma volatility, T horizon, N step count.
type SimulateRequest struct {
	InitialValue float64 `json:"y0"`
	Drift        float64 `json:"mu"`
	Volatility   float64 `json:"sigma"`
	Horizon      float64 `json:"T"`
	Steps        int     `json:"N"`
	Seed         *int64  `json:"seed,omitempty"`
}

// SimulateResponse is one simulated path plus a derived textual summary.
// TValues and YValues are aligned index-for-index and have Steps+1 entries.
type SimulateResponse struct {
	ID            string    `json:"id"`
	TValues       []float64 `json:"t_values"`
	YValues       []float64 `json:"y_values"`
	ResultSummary string    `json:"result_summary"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// BatchRequest runs Paths independent simulations of the same parameter
// set. When Seed is set, path i uses Seed+i so the whole batch is
// reproducible.
type BatchRequest struct {
	SimulateRequest
	Paths int `json:"paths"`
}

// BatchResponse aggregates the terminal values of a batch.
type BatchResponse struct {
	ID          string         `json:"id"`
	Paths       int            `json:"paths"`
	FinalValues FinalValueStat `json:"finalValues"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// FinalValueStat summarizes the distribution of terminal path values.
type FinalValueStat struct {
	Mean        float64     `json:"mean"`
	StdDev      float64     `json:"stdDev"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	Percentiles Percentiles `json:"percentiles"`
}

// Percentiles represents confidence intervals
type Percentiles struct {
	P5  float64 `json:"p5"`  // 5th percentile (worst case)
	P50 float64 `json:"p50"` // 50th percentile (expected)
	P95 float64 `json:"p95"` // 95th percentile (best case)
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
