package extract

import (
	"strings"

	"github.com/ppiankov/casebrief/internal/model"
)

// CaseCoreFilter selects sentences mentioning the case vocabulary
type CaseCoreFilter struct {
	terms []string
	lower []string
}

// NewCaseCoreFilter creates a filter over the given vocabulary
func NewCaseCoreFilter(terms []string) *CaseCoreFilter {
	lower := make([]string, len(terms))
	for i, term := range terms {
		lower[i] = strings.ToLower(term)
	}
	return &CaseCoreFilter{terms: terms, lower: lower}
}

// Filter keeps, in document order, every sentence containing a vocabulary
// term as a case-insensitive substring ("arrested" matches "arrest")
func (f *CaseCoreFilter) Filter(sentences []model.Sentence) []model.CaseCoreExcerpt {
	var core []model.CaseCoreExcerpt
	for _, sentence := range sentences {
		if term, ok := f.Match(sentence.Text); ok {
			core = append(core, model.CaseCoreExcerpt{
				Sentence: sentence,
				Term:     term,
			})
		}
	}
	return core
}

// Match returns the first vocabulary term found in text
func (f *CaseCoreFilter) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for i, term := range f.lower {
		if term != "" && strings.Contains(lower, term) {
			return f.terms[i], true
		}
	}
	return "", false
}
