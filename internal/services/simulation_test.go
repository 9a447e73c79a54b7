package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gbm-go-api/internal/config"
	"gbm-go-api/internal/gbm"
	"gbm-go-api/internal/models"

	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		ResultTTL:          time.Hour,
		MaxSteps:           1000000,
		MaxPaths:           10000,
		MaxConcurrentPaths: 4,
	}
}

func seedPtr(v int64) *int64 { return &v }

func validRequest() models.SimulateRequest {
	return models.SimulateRequest{
		InitialValue: 100.0,
		Drift:        0.05,
		Volatility:   0.2,
		Horizon:      1.0,
		Steps:        100,
		Seed:         seedPtr(42),
	}
}

func TestRunReturnsPathAndSummary(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	resp, err := svc.Run(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(resp.TValues) != 101 || len(resp.YValues) != 101 {
		t.Fatalf("got %d/%d points, want 101", len(resp.TValues), len(resp.YValues))
	}
	if resp.YValues[0] != 100.0 {
		t.Errorf("YValues[0] = %v, want 100.0", resp.YValues[0])
	}
	if !strings.HasPrefix(resp.ResultSummary, "Final value: ") {
		t.Errorf("unexpected summary: %q", resp.ResultSummary)
	}
	if resp.ID == "" {
		t.Error("response has no id")
	}

	stored, found := svc.Result(resp.ID)
	if !found {
		t.Fatal("result not retrievable by id")
	}
	if stored.ID != resp.ID {
		t.Errorf("stored id %q != %q", stored.ID, resp.ID)
	}
}

func TestRunSeededReproducible(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	a, err := svc.Run(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := svc.Run(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if a.ID == b.ID {
		t.Error("two runs minted the same id")
	}
	for i := range a.YValues {
		if a.YValues[i] != b.YValues[i] {
			t.Fatalf("value %d differs: %v vs %v", i, a.YValues[i], b.YValues[i])
		}
	}
}

func TestRunRejectsInvalidParameters(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	tests := []struct {
		name   string
		mutate func(*models.SimulateRequest)
	}{
		{"non-positive initial", func(r *models.SimulateRequest) { r.InitialValue = 0 }},
		{"negative volatility", func(r *models.SimulateRequest) { r.Volatility = -0.1 }},
		{"non-positive horizon", func(r *models.SimulateRequest) { r.Horizon = 0 }},
		{"zero steps", func(r *models.SimulateRequest) { r.Steps = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Run(context.Background(), req)
			if !errors.Is(err, gbm.ErrInvalidParameter) {
				t.Errorf("got %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestRunBatchStats(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	req := models.BatchRequest{
		SimulateRequest: validRequest(),
		Paths:           200,
	}

	resp, err := svc.RunBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	if resp.Paths != 200 {
		t.Errorf("Paths = %d, want 200", resp.Paths)
	}

	fv := resp.FinalValues
	if fv.Min <= 0 {
		t.Errorf("Min = %v, want positive", fv.Min)
	}
	ordered := fv.Min <= fv.Percentiles.P5 &&
		fv.Percentiles.P5 <= fv.Percentiles.P50 &&
		fv.Percentiles.P50 <= fv.Percentiles.P95 &&
		fv.Percentiles.P95 <= fv.Max
	if !ordered {
		t.Errorf("percentiles out of order: %+v", fv)
	}
	if fv.StdDev <= 0 {
		t.Errorf("StdDev = %v, want positive for sigma > 0", fv.StdDev)
	}
}

func TestRunBatchSeededReproducible(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	req := models.BatchRequest{
		SimulateRequest: validRequest(),
		Paths:           50,
	}

	a, err := svc.RunBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	b, err := svc.RunBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	if a.FinalValues != b.FinalValues {
		t.Errorf("seeded batches differ: %+v vs %+v", a.FinalValues, b.FinalValues)
	}
}

func TestRunBatchRejects(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	bad := models.BatchRequest{SimulateRequest: validRequest(), Paths: 0}
	if _, err := svc.RunBatch(context.Background(), bad); !errors.Is(err, gbm.ErrInvalidParameter) {
		t.Errorf("paths=0: got %v, want ErrInvalidParameter", err)
	}

	bad = models.BatchRequest{SimulateRequest: validRequest(), Paths: 10}
	bad.Volatility = -1
	if _, err := svc.RunBatch(context.Background(), bad); !errors.Is(err, gbm.ErrInvalidParameter) {
		t.Errorf("sigma<0: got %v, want ErrInvalidParameter", err)
	}
}

func TestRunBatchCancelledContext(t *testing.T) {
	svc := NewSimulationService(testConfig(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := models.BatchRequest{SimulateRequest: validRequest(), Paths: 16}
	if _, err := svc.RunBatch(ctx, req); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
