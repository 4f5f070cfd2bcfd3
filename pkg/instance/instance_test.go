package instance

import "testing"

func TestGetIDPrefersEnv(t *testing.T) {
	t.Setenv("PLU_INSTANCE_ID", "kasir-03")
	if got := GetID(); got != "kasir-03" {
		t.Fatalf("expected env instance id, got %q", got)
	}
}

func TestGetIDFallsBack(t *testing.T) {
	t.Setenv("PLU_INSTANCE_ID", "")
	if got := GetID(); got == "" {
		t.Fatal("expected a non-empty fallback id")
	}
}
