package score

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ppiankov/casebrief/internal/model"
)

// termPattern matches words of two or more letters, digits or underscores
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// StopList reports whether a lowercased term is a stop word
type StopList interface {
	IsStop(word string) bool
}

// Importance scores sentences with TF-IDF, treating every sentence as its
// own document, and selects those scoring at least mean*margin
type Importance struct {
	stops  StopList
	margin float64
}

// Result holds every score and the selected sentences
type Result struct {
	Scores    []model.ScoredSentence // Aligned with the input sentences
	Threshold float64
	Selected  []model.ScoredSentence // Input order, not score order
}

// NewImportance creates a scorer
func NewImportance(stops StopList, margin float64) *Importance {
	return &Importance{stops: stops, margin: margin}
}

// Score computes every sentence score and applies the threshold.
// An empty input is an ErrEmptyCorpus failure.
func (s *Importance) Score(sentences []model.Sentence) (*Result, error) {
	if len(sentences) == 0 {
		return nil, fmt.Errorf("%w: no sentences to score", model.ErrEmptyCorpus)
	}

	docs := make([]map[string]float64, len(sentences))
	df := make(map[string]int)
	for i, sentence := range sentences {
		tf := s.termCounts(sentence.Text)
		for term := range tf {
			df[term]++
		}
		docs[i] = tf
	}

	// Smoothed IDF: ln((1+n)/(1+df)) + 1
	n := float64(len(sentences))
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log((1+n)/(1+float64(count))) + 1
	}

	res := &Result{Scores: make([]model.ScoredSentence, len(sentences))}
	values := make([]float64, len(sentences))
	for i, sentence := range sentences {
		values[i] = sentenceScore(docs[i], idf)
		res.Scores[i] = model.ScoredSentence{Sentence: sentence, Score: values[i]}
	}

	// Sorted so the mean does not depend on input order
	sort.Float64s(values)
	res.Threshold = stat.Mean(values, nil) * s.margin

	for _, scored := range res.Scores {
		if scored.Score >= res.Threshold {
			res.Selected = append(res.Selected, scored)
		}
	}
	return res, nil
}

// termCounts tokenises lowercased text and counts non-stop terms
func (s *Importance) termCounts(text string) map[string]float64 {
	counts := make(map[string]float64)
	for _, term := range termPattern.FindAllString(strings.ToLower(text), -1) {
		if s.stops != nil && s.stops.IsStop(term) {
			continue
		}
		counts[term]++
	}
	return counts
}

// sentenceScore sums the L2-normalised TF-IDF weights of one sentence
func sentenceScore(tf map[string]float64, idf map[string]float64) float64 {
	if len(tf) == 0 {
		return 0
	}

	terms := make([]string, 0, len(tf))
	for term := range tf {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	weights := make([]float64, len(terms))
	for i, term := range terms {
		weights[i] = tf[term] * idf[term]
	}

	norm := floats.Norm(weights, 2)
	if norm == 0 {
		return 0
	}
	floats.Scale(1/norm, weights)
	return floats.Sum(weights)
}
