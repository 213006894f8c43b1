package integrate

import (
	"context"
	"errors"
	"math"
	"testing"

	apperrors "github.com/agbru/trapcalc/internal/errors"
	"github.com/agbru/trapcalc/internal/race"
)

func allReducers() []Reducer {
	return []Reducer{
		NewSynchronizedReducer(nil),
		NewUnsynchronizedReducer(nil),
	}
}

func reduce(t *testing.T, r Reducer, iv Interval, n, workers int) float64 {
	t.Helper()
	var total float64
	if err := r.Reduce(context.Background(), iv, n, workers, &total); err != nil {
		t.Fatalf("%s.Reduce(n=%d, workers=%d): %v", r.Name(), n, workers, err)
	}
	return total
}

// TestReducers_SingleWorkerAgree verifies that with one worker there is no
// concurrency, so both reducers agree bit for bit across the sweep.
func TestReducers_SingleWorkerAgree(t *testing.T) {
	t.Parallel()
	synced := NewSynchronizedReducer(Square)
	hazard := NewUnsynchronizedReducer(Square)
	for n := 10; n <= 1000; n += 10 {
		s := reduce(t, synced, DefaultInterval, n, 1)
		u := reduce(t, hazard, DefaultInterval, n, 1)
		if math.Float64bits(s) != math.Float64bits(u) {
			t.Fatalf("n=%d: synchronized %v != unsynchronized %v", n, s, u)
		}
	}
}

// TestSynchronizedReducer_TwoWorkerScenario checks that splitting n=10
// across two workers yields the same estimate as a single worker.
func TestSynchronizedReducer_TwoWorkerScenario(t *testing.T) {
	t.Parallel()
	two := reduce(t, NewSynchronizedReducer(nil), DefaultInterval, 10, 2)
	one := reduce(t, NewUnsynchronizedReducer(nil), DefaultInterval, 10, 1)
	if two != one || two != 335000 {
		t.Errorf("synchronized(2) = %v, unsynchronized(1) = %v, want both 335000", two, one)
	}
}

// TestSynchronizedReducer_Deterministic runs the critical-section reducer
// repeatedly and requires the same bits every time.
func TestSynchronizedReducer_Deterministic(t *testing.T) {
	t.Parallel()
	r := NewSynchronizedReducer(nil)
	for _, workers := range []int{2, 3, 4, 8} {
		want := reduce(t, r, DefaultInterval, 960, workers)
		for trial := 0; trial < 200; trial++ {
			got := reduce(t, r, DefaultInterval, 960, workers)
			if math.Float64bits(got) != math.Float64bits(want) {
				t.Fatalf("workers=%d trial %d: got %v, want %v", workers, trial, got, want)
			}
		}
	}
}

// TestSynchronizedReducer_Golden compares against closed-form estimates.
func TestSynchronizedReducer_Golden(t *testing.T) {
	t.Parallel()
	golden := loadGolden(t)
	iv := Interval{A: golden.A, B: golden.B}
	r := NewSynchronizedReducer(Square)

	for _, workers := range []int{1, 2, 5, 10} {
		for _, e := range golden.Entries {
			got := reduce(t, r, iv, e.N, workers)
			if rel := math.Abs(got-e.Estimate) / e.Estimate; rel > 1e-9 {
				t.Errorf("workers=%d n=%d: got %v, want %v (rel err %g)", workers, e.N, got, e.Estimate, rel)
			}
		}
	}
}

// TestReducers_Accumulate verifies that Reduce adds into the caller's total
// rather than overwriting it.
func TestReducers_Accumulate(t *testing.T) {
	t.Parallel()
	for _, r := range allReducers() {
		total := 1.0
		if err := r.Reduce(context.Background(), DefaultInterval, 10, 1, &total); err != nil {
			t.Fatalf("%s: %v", r.Name(), err)
		}
		if total != 335001 {
			t.Errorf("%s: total = %v, want 335001", r.Name(), total)
		}
	}
}

func TestReducers_CustomIntegrand(t *testing.T) {
	t.Parallel()
	one := func(float64) float64 { return 1 }
	iv := Interval{A: -2, B: 6}
	for _, r := range []Reducer{NewSynchronizedReducer(one), NewUnsynchronizedReducer(one)} {
		got := reduce(t, r, iv, 16, 1)
		if got != 8 {
			t.Errorf("%s: ∫1 over [-2,6] = %v, want 8", r.Name(), got)
		}
	}
}

func TestReducers_Validation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		n, workers int
		field      string
	}{
		{"zero workers", 10, 0, "workers"},
		{"negative workers", 10, -1, "workers"},
		{"zero trapezoids", 0, 2, "n"},
	}
	for _, r := range allReducers() {
		for _, tt := range tests {
			var total float64
			err := r.Reduce(context.Background(), DefaultInterval, tt.n, tt.workers, &total)
			var verr apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("%s/%s: expected ValidationError, got %v", r.Name(), tt.name, err)
				continue
			}
			if verr.Field != tt.field {
				t.Errorf("%s/%s: field = %q, want %q", r.Name(), tt.name, verr.Field, tt.field)
			}
			if total != 0 {
				t.Errorf("%s/%s: total mutated to %v", r.Name(), tt.name, total)
			}
		}
	}
}

func TestReducers_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, r := range allReducers() {
		var total float64
		err := r.Reduce(ctx, DefaultInterval, 100, 4, &total)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("%s: expected context.Canceled, got %v", r.Name(), err)
		}
		if total != 0 {
			t.Errorf("%s: total = %v after canceled reduce, want 0", r.Name(), total)
		}
	}
}

// TestUnsynchronizedReducer_HazardBounds exercises the racy reducer with a
// real team. Lost updates can only drop positive partials, so the total can
// never exceed the race-free estimate.
func TestUnsynchronizedReducer_HazardBounds(t *testing.T) {
	if race.Enabled {
		t.Skip("hazard reducer races by design; run without -race")
	}
	t.Parallel()
	hazard := NewUnsynchronizedReducer(nil)
	want := reduce(t, NewSynchronizedReducer(nil), DefaultInterval, 1000, 8)
	for trial := 0; trial < 50; trial++ {
		got := reduce(t, hazard, DefaultInterval, 1000, 8)
		if got <= 0 || got > want*(1+1e-12) {
			t.Fatalf("trial %d: hazard total %v outside (0, %v]", trial, got, want)
		}
	}
}
