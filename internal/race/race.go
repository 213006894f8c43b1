//go:build !race

// Package race reports whether the binary was built with the race detector.
// Tests exercising the hazard reducer with more than one worker consult it
// and skip themselves, since the detector aborts on the intentional race.
package race

// Enabled is true when built with -race.
const Enabled = false
