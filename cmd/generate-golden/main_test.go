package main

import (
	"encoding/json"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"testing"
)

// TestTrapSquare tests the oracle against hand-computed estimates.
func TestTrapSquare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     int64
		n        int
		expected *big.Rat
	}{
		{"one trapezoid", 0, 100, 1, big.NewRat(500000, 1)},
		{"n=10", 0, 100, 10, big.NewRat(335000, 1)},
		{"n=20", 0, 100, 20, big.NewRat(333750, 1)},
		{"unit interval n=2", 0, 1, 2, big.NewRat(3, 8)},
		{"shifted interval", 1, 3, 2, big.NewRat(9, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := trapSquare(tt.a, tt.b, tt.n)
			if got.Cmp(tt.expected) != 0 {
				t.Errorf("trapSquare(%d, %d, %d) = %s, want %s", tt.a, tt.b, tt.n, got.RatString(), tt.expected.RatString())
			}
		})
	}
}

// TestTrapSquare_ClosedForm checks T(n) = b³/3 + b³/(6n²) on [0, b].
func TestTrapSquare_ClosedForm(t *testing.T) {
	for _, n := range []int{10, 30, 70, 330, 1000} {
		want := new(big.Rat).Add(big.NewRat(1_000_000, 3), big.NewRat(1_000_000, int64(6*n*n)))
		if got := trapSquare(0, 100, n); got.Cmp(want) != 0 {
			t.Errorf("n=%d: got %s, want %s", n, got.RatString(), want.RatString())
		}
	}
}

func TestBuildGolden(t *testing.T) {
	g := buildGolden(0, 100, 10, 1000, 10)
	if len(g.Entries) != 100 {
		t.Fatalf("expected 100 entries, got %d", len(g.Entries))
	}
	if g.Entries[0].N != 10 || g.Entries[99].N != 1000 {
		t.Errorf("unexpected range %d..%d", g.Entries[0].N, g.Entries[99].N)
	}
	if math.Abs(g.Exact-1e6/3) > 1e-9 {
		t.Errorf("exact = %v", g.Exact)
	}
	for i := 1; i < len(g.Entries); i++ {
		if g.Entries[i].Estimate >= g.Entries[i-1].Estimate {
			t.Errorf("estimates should decrease toward the exact value at n=%d", g.Entries[i].N)
		}
	}
}

// TestCommittedGoldenIsUpToDate compares the checked-in table with a fresh
// generation.
func TestCommittedGoldenIsUpToDate(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "internal", "integrate", "testdata", "trapezoid_golden.json"))
	if err != nil {
		t.Skipf("golden file not available: %v", err)
	}
	var committed goldenFile
	if err := json.Unmarshal(data, &committed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	fresh := buildGolden(0, 100, 10, 1000, 10)
	if len(committed.Entries) != len(fresh.Entries) {
		t.Fatalf("entry count %d, want %d", len(committed.Entries), len(fresh.Entries))
	}
	for i, e := range fresh.Entries {
		c := committed.Entries[i]
		if c.N != e.N || math.Abs(c.Estimate-e.Estimate) > 1e-9*e.Estimate {
			t.Errorf("entry %d: committed {%d %v}, fresh {%d %v}", i, c.N, c.Estimate, e.N, e.Estimate)
		}
	}
}
