// Package version exposes the release marker embedded at build time.
package version

import (
	_ "embed"
	"strings"
)

//go:embed VERSION.txt
var raw string

// Version returns the release marker, e.g. "1.2.0".
func Version() string {
	return strings.TrimSpace(raw)
}

// ProgramName is the identification string served by GET / and GET /info.
func ProgramName() string {
	return "PLU Webapp ver " + Version()
}
