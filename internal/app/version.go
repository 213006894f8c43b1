package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, set at link time:
//
//	go build -ldflags "-X github.com/agbru/trapcalc/internal/app.Version=v1.2.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args is exactly a version request.
func HasVersionFlag(args []string) bool {
	if len(args) != 1 {
		return false
	}
	switch args[0] {
	case "--version", "-version", "-V":
		return true
	}
	return false
}

// PrintVersion writes the build metadata.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "trapcalc %s (commit %s, built %s, %s %s/%s)\n",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
