package integrate

// Integrand is the function under integration. It must be a pure function:
// workers evaluate it concurrently.
type Integrand func(x float64) float64

// Square is f(x) = x², the integrand used by the trapcalc command.
func Square(x float64) float64 {
	return x * x
}

// Interval holds the integration bounds [A, B].
type Interval struct {
	A float64
	B float64
}

// DefaultInterval is the fixed [0, 100] range integrated by the command.
var DefaultInterval = Interval{A: 0, B: 100}

// LocalTrap computes the trapezoidal estimate of f over [localA, localB]
// using localN trapezoids of width h.
//
// The endpoint values are averaged, the localN-1 interior samples are added,
// and the running sum is scaled by h. localB is expected to equal
// localA + localN*h; it is passed separately so callers control the exact
// right endpoint.
func LocalTrap(f Integrand, localA, localB float64, localN int, h float64) float64 {
	result := (f(localA) + f(localB)) / 2.0
	for i := 1; i <= localN-1; i++ {
		x := localA + float64(i)*h
		result += f(x)
	}
	return result * h
}
