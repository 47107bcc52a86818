package analysis

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/lrmacha/Dynamics/src/measure"
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestSummarize_WildType(t *testing.T) {
	sums, err := Summarize(measure.DefaultGroups())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	wt := sums[0]
	if wt.Label != "WT" {
		t.Fatalf("first summary is %q, want WT", wt.Label)
	}
	if wt.N != 3 {
		t.Fatalf("WT n = %d, want 3", wt.N)
	}
	if !almostEqual(wt.Mean, -76.675, 1e-9) {
		t.Fatalf("WT mean = %v, want -76.675", wt.Mean)
	}
	// sample SD with n-1 divisor
	if !almostEqual(wt.StdDev, 13.928, 1e-9) {
		t.Fatalf("WT sd = %v, want 13.928", wt.StdDev)
	}
	// two-decimal display under Go float formatting
	if got := fmt.Sprintf("%.2f", wt.Mean); got != "-76.67" {
		t.Fatalf("WT mean displays as %q, want -76.67", got)
	}
	if got := fmt.Sprintf("%.2f", wt.StdDev); got != "13.93" {
		t.Fatalf("WT sd displays as %q, want 13.93", got)
	}
}

func TestSummarize_AllGroups(t *testing.T) {
	sums, err := Summarize(measure.DefaultGroups())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := []struct {
		label string
		mean  float64
		sd    float64
	}{
		{"WT", -76.675, 13.928},
		{"H148A", -71.5, 3.260368077},
		{"H148AW149A", -53.233333333, 4.285246006},
		{"H148P", -58.333333333, 3.458805189},
		{"H148PW149R", -47.4, 4.036087214},
		{"W149A", -65.133333333, 3.868246804},
		{"W149R", -63.2, 3.204684072},
	}
	if len(sums) != len(want) {
		t.Fatalf("got %d summaries, want %d", len(sums), len(want))
	}
	for i, w := range want {
		if sums[i].Label != w.label {
			t.Fatalf("summary %d is %q, want %q", i, sums[i].Label, w.label)
		}
		if !almostEqual(sums[i].Mean, w.mean, 1e-6) {
			t.Fatalf("%s mean = %v, want %v", w.label, sums[i].Mean, w.mean)
		}
		if !almostEqual(sums[i].StdDev, w.sd, 1e-6) {
			t.Fatalf("%s sd = %v, want %v", w.label, sums[i].StdDev, w.sd)
		}
	}
}

func TestOneWay_BuiltinDataset(t *testing.T) {
	res, err := OneWay(measure.DefaultGroups())
	if err != nil {
		t.Fatalf("OneWay: %v", err)
	}
	if res.DFBetween != 6 || res.DFWithin != 14 {
		t.Fatalf("df = (%d,%d), want (6,14)", res.DFBetween, res.DFWithin)
	}
	if !almostEqual(res.F, 7.849121471, 1e-6) {
		t.Fatalf("F = %v, want ~7.849121", res.F)
	}
	if !almostEqual(res.P, 0.000764247, 1e-7) {
		t.Fatalf("p = %v, want ~0.000764247", res.P)
	}
	// the four-decimal display value is the cross-implementation anchor
	if got := fmt.Sprintf("%.4f", res.P); got != "0.0008" {
		t.Fatalf("p displays as %q, want 0.0008", got)
	}
}

func TestOneWay_Deterministic(t *testing.T) {
	a, err := OneWay(measure.DefaultGroups())
	if err != nil {
		t.Fatalf("OneWay: %v", err)
	}
	b, err := OneWay(measure.DefaultGroups())
	if err != nil {
		t.Fatalf("OneWay: %v", err)
	}
	if a != b {
		t.Fatalf("repeated runs differ: %+v vs %+v", a, b)
	}
}

func TestOneWay_RejectsDegenerateInput(t *testing.T) {
	if _, err := OneWay([]measure.Group{{Label: "WT", Values: []float64{1, 2}}}); err == nil {
		t.Fatalf("single-group dataset accepted")
	}
	if _, err := OneWay([]measure.Group{
		{Label: "WT", Values: []float64{1, 2}},
		{Label: "H148A", Values: []float64{3}},
	}); err == nil {
		t.Fatalf("single-replicate group accepted")
	}
	_, err := OneWay([]measure.Group{
		{Label: "WT", Values: []float64{-5, -5}},
		{Label: "H148A", Values: []float64{-3, -3}},
	})
	if err == nil {
		t.Fatalf("zero within-group variance accepted")
	}
	if !strings.Contains(err.Error(), "zero within-group variance") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSummarize_RejectsInvalidDataset(t *testing.T) {
	if _, err := Summarize(nil); err == nil {
		t.Fatalf("empty dataset accepted")
	}
}
