package version

import (
	"strings"
	"testing"
)

func TestProgramName(t *testing.T) {
	v := Version()
	if v == "" || strings.ContainsAny(v, " \n") {
		t.Fatalf("unexpected version %q", v)
	}
	if got := ProgramName(); got != "PLU Webapp ver "+v {
		t.Fatalf("unexpected program name %q", got)
	}
}
