// Package measure holds the binding free-energy dataset model: replicate
// groups keyed by variant label, the built-in measurement set, and loading
// of the same shape from a JSONC file.
package measure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// WildType is the reference (unmutated) variant label.
const WildType = "WT"

// Group is one variant's ordered replicate ΔG measurements in kcal/mol.
// Groups are constructed once and never mutated.
type Group struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// N returns the replicate count.
func (g Group) N() int { return len(g.Values) }

// DefaultGroups returns the built-in dataset: wild type plus six point/double
// mutants of residues H148 and W149, three replicates each, in display order.
func DefaultGroups() []Group {
	groups := []Group{
		{Label: WildType, Values: []float64{-90.603, -76.675, -62.747}},
		{Label: "H148A", Values: []float64{-71.2, -68.4, -74.9}},
		{Label: "H148P", Values: []float64{-55.3, -62.1, -57.6}},
		{Label: "W149A", Values: []float64{-64.7, -69.2, -61.5}},
		{Label: "W149R", Values: []float64{-59.9, -66.3, -63.4}},
		{Label: "H148AW149A", Values: []float64{-52.6, -57.8, -49.3}},
		{Label: "H148PW149R", Values: []float64{-46.2, -51.9, -44.1}},
	}
	SortGroups(groups)
	return groups
}

// SortGroups orders groups for display: wild type first, the rest ascending
// by raw label. Sort is stable for equal labels, though Validate rejects
// duplicates anyway.
func SortGroups(groups []Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i].Label, groups[j].Label
		if a == WildType {
			return b != WildType
		}
		if b == WildType {
			return false
		}
		return a < b
	})
}

// Validate checks that a dataset is usable for summary statistics and a
// one-way ANOVA: at least two groups, unique non-empty labels, and at least
// two finite replicate values per group.
func Validate(groups []Group) error {
	if len(groups) == 0 {
		return fmt.Errorf("dataset is empty")
	}
	if len(groups) < 2 {
		return fmt.Errorf("dataset has a single group %q; at least two are required", groups[0].Label)
	}
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if strings.TrimSpace(g.Label) == "" {
			return fmt.Errorf("group with empty label")
		}
		if seen[g.Label] {
			return fmt.Errorf("duplicate group label %q", g.Label)
		}
		seen[g.Label] = true
		if len(g.Values) < 2 {
			return fmt.Errorf("group %q has %d replicate(s); at least 2 are required", g.Label, len(g.Values))
		}
		for i, v := range g.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("group %q replicate %d is not finite", g.Label, i+1)
			}
		}
	}
	return nil
}

// StripJSONC reads a JSONC file (full-line // comments and blank lines are
// ignored) and returns raw JSON bytes suitable for unmarshalling.
func StripJSONC(filename string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []byte
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		out = append(out, []byte(line+"\n")...)
	}
	return out, scanner.Err()
}

// LoadGroups reads a dataset from a JSONC file holding an object of
// label -> replicate values, e.g. {"WT": [-90.6, -76.7, -62.7], ...}.
// The result is validated and returned in display order.
func LoadGroups(path string) ([]Group, error) {
	b, err := StripJSONC(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	var raw map[string][]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	groups := make([]Group, 0, len(raw))
	for label, values := range raw {
		groups = append(groups, Group{Label: label, Values: values})
	}
	SortGroups(groups)
	if err := Validate(groups); err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	return groups, nil
}
