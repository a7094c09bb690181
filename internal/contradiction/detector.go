// Package contradiction flags adjacent sentence pairs where a negated claim is
// immediately followed by a non-negated sentence sharing its opening words.
//
// The heuristic only looks at strictly adjacent sentences in document order.
// It misses contradictions separated by other sentences and can fire on
// coincidental word overlap.
package contradiction

import (
	"sort"
	"strings"

	"github.com/ppiankov/casebrief/internal/model"
)

// Detector applies the adjacency heuristic
type Detector struct {
	cues       []string
	leadTokens int
}

// NewDetector creates a detector with the given negation cues. leadTokens is
// how many opening words of the negated sentence are looked up in the next one.
func NewDetector(cues []string, leadTokens int) *Detector {
	lower := make([]string, 0, len(cues))
	for _, cue := range cues {
		if cue = strings.ToLower(cue); cue != "" {
			lower = append(lower, cue)
		}
	}
	return &Detector{cues: lower, leadTokens: leadTokens}
}

// Detect returns candidate pairs in the order their first sentence appears.
// Sentences are taken in Order; a pair is only formed when the second
// sentence immediately follows the first.
func (d *Detector) Detect(sentences []model.Sentence) []model.ContradictionPair {
	ordered := append([]model.Sentence(nil), sentences...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Order < ordered[j].Order })

	var pairs []model.ContradictionPair
	for i := 0; i+1 < len(ordered); i++ {
		first, second := ordered[i], ordered[i+1]
		if second.Order != first.Order+1 {
			continue
		}
		if d.Qualifies(first.Text, second.Text) {
			pairs = append(pairs, model.ContradictionPair{First: first, Second: second})
		}
	}
	return pairs
}

// Qualifies reports whether first is negated, second is not, and one of the
// leading words of first occurs as a substring of second
func (d *Detector) Qualifies(first, second string) bool {
	a := strings.ToLower(first)
	b := strings.ToLower(second)

	if !d.Negated(a) || d.Negated(b) {
		return false
	}

	lead := strings.Fields(a)
	if len(lead) > d.leadTokens {
		lead = lead[:d.leadTokens]
	}
	for _, word := range lead {
		if strings.Contains(b, word) {
			return true
		}
	}
	return false
}

// Negated reports whether lowercased text contains any negation cue as a
// substring ("no" also matches "know")
func (d *Detector) Negated(lower string) bool {
	for _, cue := range d.cues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
