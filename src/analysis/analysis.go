// Package analysis computes descriptive statistics and a one-way ANOVA over
// replicate binding free-energy groups. All functions are pure: they take a
// dataset and return derived values without touching global state.
package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lrmacha/Dynamics/src/measure"
)

// Summary holds per-group descriptive statistics. Mean and StdDev carry full
// float precision; rounding to two decimals happens only at display time.
type Summary struct {
	Label  string  `json:"label"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean_kcal_mol"`
	StdDev float64 `json:"stddev_kcal_mol"` // sample standard deviation (n-1 divisor)
}

// AnovaResult is the outcome of a one-way ANOVA across all groups.
type AnovaResult struct {
	F         float64 `json:"f_statistic"`
	P         float64 `json:"p_value"`
	DFBetween int     `json:"df_between"` // k-1
	DFWithin  int     `json:"df_within"`  // N-k
}

// Summarize computes mean and sample standard deviation per group, in the
// order the groups are given.
func Summarize(groups []measure.Group) ([]Summary, error) {
	if err := measure.Validate(groups); err != nil {
		return nil, err
	}
	out := make([]Summary, 0, len(groups))
	for _, g := range groups {
		out = append(out, Summary{
			Label:  g.Label,
			N:      g.N(),
			Mean:   stat.Mean(g.Values, nil),
			StdDev: stat.StdDev(g.Values, nil),
		})
	}
	return out, nil
}

// OneWay runs a standard one-way ANOVA on the raw replicate values: the
// between-group mean square over the within-group mean square, with degrees
// of freedom (k-1, N-k), and a p-value from the F distribution. Degenerate
// datasets (fewer than two groups, a group with fewer than two replicates,
// or zero within-group variance) are rejected with an error instead of
// propagating NaN into the report.
func OneWay(groups []measure.Group) (AnovaResult, error) {
	if err := measure.Validate(groups); err != nil {
		return AnovaResult{}, err
	}
	k := len(groups)
	total := 0
	grandSum := 0.0
	for _, g := range groups {
		total += g.N()
		for _, v := range g.Values {
			grandSum += v
		}
	}
	grandMean := grandSum / float64(total)

	var ssBetween, ssWithin float64
	for _, g := range groups {
		mean := stat.Mean(g.Values, nil)
		d := mean - grandMean
		ssBetween += float64(g.N()) * d * d
		for _, v := range g.Values {
			dv := v - mean
			ssWithin += dv * dv
		}
	}

	dfBetween := k - 1
	dfWithin := total - k
	if ssWithin == 0 {
		return AnovaResult{}, fmt.Errorf("anova: zero within-group variance across %d groups", k)
	}
	f := (ssBetween / float64(dfBetween)) / (ssWithin / float64(dfWithin))
	fdist := distuv.F{D1: float64(dfBetween), D2: float64(dfWithin)}
	p := 1 - fdist.CDF(f)
	return AnovaResult{F: f, P: p, DFBetween: dfBetween, DFWithin: dfWithin}, nil
}
