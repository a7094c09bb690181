package nlp

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/ppiankov/casebrief/internal/model"
)

// Fake is a deterministic Model for tests. It splits sentences after
// '.', '!' or '?' followed by whitespace, tags every word with Tags[word]
// (default "NN"), and reports every occurrence of the configured entities.
type Fake struct {
	Tags     map[string]string
	Entities []model.Entity
	FailOn   string // Any text containing FailOn returns an error

	analyzeCalls atomic.Int64
	stopsOnce    sync.Once
	stops        map[string]struct{}
}

// ErrFake is returned for text containing Fake.FailOn
var ErrFake = errors.New("fake model failure")

// NewFake creates a fake model using the default stop list
func NewFake() *Fake {
	return &Fake{Tags: map[string]string{}, stops: defaultStopWords()}
}

// AnalyzeCalls reports how many times Analyze ran
func (f *Fake) AnalyzeCalls() int64 {
	return f.analyzeCalls.Load()
}

// Sentences splits on terminal punctuation
func (f *Fake) Sentences(ctx context.Context, text string) ([]string, error) {
	if f.FailOn != "" && strings.Contains(text, f.FailOn) {
		return nil, ErrFake
	}

	var sents []string
	var current strings.Builder
	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && (i+1 == len(runes) || unicode.IsSpace(runes[i+1])) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sents = append(sents, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sents = append(sents, s)
	}
	return sents, nil
}

// Analyze tags whitespace tokens and finds configured entities
func (f *Fake) Analyze(ctx context.Context, sentence string) (Analysis, error) {
	f.analyzeCalls.Add(1)
	if f.FailOn != "" && strings.Contains(sentence, f.FailOn) {
		return Analysis{}, ErrFake
	}

	var a Analysis
	for _, field := range strings.Fields(sentence) {
		word := strings.TrimFunc(field, unicode.IsPunct)
		if word == "" {
			continue
		}
		tag, ok := f.Tags[word]
		if !ok {
			tag = "NN"
		}
		a.Tokens = append(a.Tokens, Token{Text: word, Tag: tag, Stop: f.IsStop(strings.ToLower(word))})
	}

	type hit struct {
		at  int
		ent model.Entity
	}
	var hits []hit
	for _, ent := range f.Entities {
		from := 0
		for {
			idx := strings.Index(sentence[from:], ent.Text)
			if idx < 0 || ent.Text == "" {
				break
			}
			hits = append(hits, hit{at: from + idx, ent: ent})
			from += idx + len(ent.Text)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })
	for _, h := range hits {
		a.Entities = append(a.Entities, h.ent)
	}
	return a, nil
}

// IsStop reports whether word is in the English stop list
func (f *Fake) IsStop(word string) bool {
	f.stopsOnce.Do(func() {
		if f.stops == nil {
			f.stops = defaultStopWords()
		}
	})
	_, ok := f.stops[word]
	return ok
}
