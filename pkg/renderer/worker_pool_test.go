package renderer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestWorkerPool_RendersEveryRowOnce(t *testing.T) {
	const rows = 50
	var calls atomic.Int64
	render := func(row int) ([]core.Vec3, int) {
		calls.Add(1)
		return []core.Vec3{core.NewVec3(float64(row), 0, 0)}, 1
	}

	pool := NewWorkerPool(4, rows, render)
	if pool.GetNumWorkers() != 4 {
		t.Errorf("Expected 4 workers, got %d", pool.GetNumWorkers())
	}
	pool.Start(context.Background())
	for y := 0; y < rows; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}
	pool.Stop()

	seen := make(map[int]bool)
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Err != nil {
			t.Fatalf("Unexpected error: %v", result.Err)
		}
		if seen[result.Row] {
			t.Fatalf("Row %d rendered twice", result.Row)
		}
		seen[result.Row] = true
		if result.Pixels[0].X != float64(result.Row) {
			t.Errorf("Row %d carries pixels of row %v", result.Row, result.Pixels[0].X)
		}
	}

	if len(seen) != rows || calls.Load() != rows {
		t.Errorf("Expected %d rows, got %d results and %d renders", rows, len(seen), calls.Load())
	}
}

func TestWorkerPool_DefaultsToCPUCount(t *testing.T) {
	pool := NewWorkerPool(0, 1, nil)
	if pool.GetNumWorkers() != DefaultNumWorkers() || pool.GetNumWorkers() < 1 {
		t.Errorf("Expected %d workers, got %d", DefaultNumWorkers(), pool.GetNumWorkers())
	}
}

func TestWorkerPool_CancelledContextSkipsRendering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	render := func(row int) ([]core.Vec3, int) {
		t.Error("render must not run after cancellation")
		return nil, 0
	}
	pool := NewWorkerPool(2, 5, render)
	pool.Start(ctx)
	for y := 0; y < 5; y++ {
		pool.SubmitTask(RowTask{Row: y})
	}
	pool.Stop()

	count := 0
	for result, ok := pool.GetResult(); ok; result, ok = pool.GetResult() {
		if !errors.Is(result.Err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", result.Err)
		}
		count++
	}
	if count != 5 {
		t.Errorf("Expected 5 results, got %d", count)
	}
}
