package enums

import "testing"

func TestParseYesNo(t *testing.T) {
	for _, raw := range []string{"Ya", "Tidak"} {
		v, err := ParseYesNo(raw)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
		if v.String() != raw || !v.IsValid() {
			t.Fatalf("round trip failed for %q", raw)
		}
	}
	if _, err := ParseYesNo("ya"); err == nil {
		t.Fatal("expected lowercase value to be rejected")
	}
}

func TestYesNoBool(t *testing.T) {
	if !Yes.Bool() || No.Bool() || YesNo("").Bool() {
		t.Fatal("unexpected Bool mapping")
	}
}
