package labels

import (
	"errors"
	"testing"
)

func TestFormat_WildTypePassthrough(t *testing.T) {
	got, err := Format("WT")
	if err != nil {
		t.Fatalf("Format(WT) returned error: %v", err)
	}
	if got != "WT" {
		t.Fatalf("Format(WT) = %q, want WT unchanged", got)
	}
}

func TestFormat_Mutants(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"H148P", "H¹⁴⁸P"},
		{"H148A", "H¹⁴⁸A"},
		{"W149R", "W¹⁴⁹R"},
		{"H148AW149A", "H¹⁴⁸AW¹⁴⁹A"},
		{"H148PW149R", "H¹⁴⁸PW¹⁴⁹R"},
		// letter runs longer than one character uppercase as a unit
		{"his148pro", "HIS¹⁴⁸PRO"},
	}
	for _, c := range cases {
		got, err := Format(c.raw)
		if err != nil {
			t.Fatalf("Format(%q) returned error: %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("Format(%q) = %q, want %q", c.raw, got, c.want)
		}
	}
}

func TestFormat_CasingIdempotent(t *testing.T) {
	// formatting a lowercased label and its uppercased form must agree
	lower, err := Format("h148aw149a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	upper, err := Format("H148AW149A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lower != upper {
		t.Fatalf("casing not idempotent: %q vs %q", lower, upper)
	}
}

func TestFormat_InvalidLabels(t *testing.T) {
	for _, raw := range []string{"", "148H", "123", "H-148P", "H 148", "H148.P", "Δ148"} {
		_, err := Format(raw)
		if err == nil {
			t.Fatalf("Format(%q) succeeded, want invalid-label error", raw)
		}
		var ie *InvalidLabelError
		if !errors.As(err, &ie) {
			t.Fatalf("Format(%q) error type %T, want *InvalidLabelError", raw, err)
		}
		if ie.Label != raw {
			t.Fatalf("error label = %q, want %q", ie.Label, raw)
		}
	}
}

func TestFormatAll_StopsOnInvalid(t *testing.T) {
	out, err := FormatAll([]string{"WT", "H148P", "148H"})
	if err == nil {
		t.Fatalf("FormatAll with invalid label succeeded, out=%v", out)
	}
	if out != nil {
		t.Fatalf("FormatAll should return nil slice on error, got %v", out)
	}
}

func TestFormatAll_Order(t *testing.T) {
	out, err := FormatAll([]string{"WT", "H148A", "W149R"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"WT", "H¹⁴⁸A", "W¹⁴⁹R"}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("FormatAll[%d] = %q, want %q", i, out[i], want[i])
		}
	}
}
