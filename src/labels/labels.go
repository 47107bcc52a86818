// Package labels converts raw mutant identifiers like "H148PW149R" into
// display form: amino-acid letter codes uppercased and residue positions
// rendered with superscript digits ("H¹⁴⁸PW¹⁴⁹R"). The wild-type label "WT"
// passes through unchanged.
package labels

import (
	"fmt"
	"strings"
)

// WildType is the label that is never transformed.
const WildType = "WT"

var superscripts = map[rune]rune{
	'0': '⁰',
	'1': '¹',
	'2': '²',
	'3': '³',
	'4': '⁴',
	'5': '⁵',
	'6': '⁶',
	'7': '⁷',
	'8': '⁸',
	'9': '⁹',
}

// InvalidLabelError reports a raw label that does not decompose into
// alternating letter/digit runs starting with letters.
type InvalidLabelError struct {
	Label  string
	Reason string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("invalid mutant label %q: %s", e.Label, e.Reason)
}

type tokenKind int

const (
	tokenLetters tokenKind = iota
	tokenDigits
)

type token struct {
	kind tokenKind
	text string
}

// tokenize splits s into maximal runs of letters or digits. Each token
// carries its kind so callers never have to infer it from run position.
func tokenize(s string) ([]token, error) {
	var toks []token
	var run []rune
	var kind tokenKind
	flush := func() {
		if len(run) > 0 {
			toks = append(toks, token{kind: kind, text: string(run)})
			run = nil
		}
	}
	for _, r := range s {
		var k tokenKind
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			k = tokenLetters
		case r >= '0' && r <= '9':
			k = tokenDigits
		default:
			return nil, fmt.Errorf("unexpected character %q", r)
		}
		if len(run) > 0 && k != kind {
			flush()
		}
		kind = k
		run = append(run, r)
	}
	flush()
	return toks, nil
}

// Format returns the display form of a raw mutant label. "WT" is returned
// as-is. Any other label must consist of alternating letter and digit runs
// beginning with a letter run; violations return an *InvalidLabelError
// rather than a silently mis-cased string.
func Format(raw string) (string, error) {
	if raw == WildType {
		return WildType, nil
	}
	if raw == "" {
		return "", &InvalidLabelError{Label: raw, Reason: "empty"}
	}
	toks, err := tokenize(raw)
	if err != nil {
		return "", &InvalidLabelError{Label: raw, Reason: err.Error()}
	}
	if toks[0].kind != tokenLetters {
		return "", &InvalidLabelError{Label: raw, Reason: "must start with a letter run"}
	}
	var b strings.Builder
	for _, t := range toks {
		switch t.kind {
		case tokenLetters:
			b.WriteString(strings.ToUpper(t.text))
		case tokenDigits:
			for _, d := range t.text {
				b.WriteRune(superscripts[d])
			}
		}
	}
	return b.String(), nil
}

// FormatAll formats a list of raw labels, stopping at the first invalid one.
func FormatAll(raws []string) ([]string, error) {
	out := make([]string, 0, len(raws))
	for _, r := range raws {
		s, err := Format(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
