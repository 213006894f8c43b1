// Package logging provides the structured logging interface used across
// trapcalc. Components depend on Logger; the backend is zerolog.
package logging
