package workerpool

import (
	"errors"
	"testing"
)

func TestRunSequentialBelowGrainSize(t *testing.T) {
	cfg := Config{NumWorkers: 4, GrainSize: 100}
	results := Run(3, cfg, func(i int) (any, error) { return i * i, nil })
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for i, r := range results {
		if r.Index != i || r.Value != i*i {
			t.Errorf("results[%d] = %+v", i, r)
		}
	}
}

func TestRunParallelPreservesOrder(t *testing.T) {
	cfg := Config{NumWorkers: 4, GrainSize: 1}
	const n = 200
	results := Run(n, cfg, func(i int) (any, error) { return i, nil })
	if len(results) != n {
		t.Fatalf("len(results) = %d, want %d", len(results), n)
	}
	for i, r := range results {
		if r.Index != i || r.Value != i {
			t.Errorf("results[%d] = %+v, want Value=%d", i, r, i)
		}
	}
}

func TestRunCollectsPerItemErrors(t *testing.T) {
	cfg := Config{NumWorkers: 2, GrainSize: 1}
	boom := errors.New("boom")
	results := Run(4, cfg, func(i int) (any, error) {
		if i == 2 {
			return nil, boom
		}
		return i, nil
	})
	if results[2].Err != boom {
		t.Errorf("results[2].Err = %v, want boom", results[2].Err)
	}
	for _, i := range []int{0, 1, 3} {
		if results[i].Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, results[i].Err)
		}
	}
}
