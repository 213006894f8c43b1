// Command generate-golden writes the trapezoid golden table used by the
// integrate package tests. Estimates are computed in exact rational
// arithmetic and rounded to float64 once.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

type goldenEntry struct {
	N        int     `json:"n"`
	Estimate float64 `json:"estimate"`
}

type goldenFile struct {
	A         float64       `json:"a"`
	B         float64       `json:"b"`
	Integrand string        `json:"integrand"`
	Exact     float64       `json:"exact"`
	Entries   []goldenEntry `json:"entries"`
}

func main() {
	out := flag.String("out", filepath.Join("internal", "integrate", "testdata", "trapezoid_golden.json"), "output file")
	start := flag.Int("start", 10, "first subdivision count")
	end := flag.Int("end", 1000, "last subdivision count")
	step := flag.Int("step", 10, "subdivision step")
	flag.Parse()

	if *start < 1 || *step < 1 || *end < *start {
		fmt.Fprintf(os.Stderr, "invalid range: start=%d end=%d step=%d\n", *start, *end, *step)
		os.Exit(2)
	}

	g := buildGolden(0, 100, *start, *end, *step)
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d entries to %s\n", len(g.Entries), *out)
}

func buildGolden(a, b int64, start, end, step int) goldenFile {
	exact := exactSquareIntegral(a, b)
	exactF, _ := exact.Float64()
	g := goldenFile{
		A:         float64(a),
		B:         float64(b),
		Integrand: "x^2",
		Exact:     exactF,
	}
	for n := start; n <= end; n += step {
		est, _ := trapSquare(a, b, n).Float64()
		g.Entries = append(g.Entries, goldenEntry{N: n, Estimate: est})
	}
	return g
}

// trapSquare is the composite trapezoidal estimate of ∫x² over [a, b] with n
// trapezoids, in exact arithmetic.
func trapSquare(a, b int64, n int) *big.Rat {
	ra := new(big.Rat).SetInt64(a)
	h := new(big.Rat).SetFrac64(b-a, int64(n))
	sq := func(x *big.Rat) *big.Rat { return new(big.Rat).Mul(x, x) }

	sum := new(big.Rat).Add(sq(ra), sq(new(big.Rat).SetInt64(b)))
	sum.Quo(sum, big.NewRat(2, 1))
	x := new(big.Rat)
	for i := 1; i < n; i++ {
		x.Mul(h, new(big.Rat).SetInt64(int64(i)))
		x.Add(x, ra)
		sum.Add(sum, sq(x))
	}
	return sum.Mul(sum, h)
}

// exactSquareIntegral returns (b³ - a³) / 3.
func exactSquareIntegral(a, b int64) *big.Rat {
	return big.NewRat(b*b*b-a*a*a, 3)
}
