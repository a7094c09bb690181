package extract

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/nlp"
	"github.com/ppiankov/casebrief/internal/worker"
)

// Segmentation is the sentence view of a document
type Segmentation struct {
	// Sentences are the records long enough to analyse, in document order
	Sentences []model.Sentence
	// PageSentences holds every trimmed sentence of each page, unfiltered,
	// aligned with the input pages
	PageSentences [][]string
}

// Segmenter splits pages into sentence records
type Segmenter struct {
	lang      nlp.Model
	minLength int
	workers   int
}

// NewSegmenter creates a segmenter. Sentences shorter than minLength
// characters are discarded from the records.
func NewSegmenter(lang nlp.Model, minLength, workers int) *Segmenter {
	return &Segmenter{lang: lang, minLength: minLength, workers: workers}
}

// Segment splits every page and numbers the kept sentences across the whole
// document. Pages may be segmented in parallel; order is always page order.
func (s *Segmenter) Segment(ctx context.Context, pages []model.Page) (*Segmentation, error) {
	perPage := make([][]string, len(pages))

	err := worker.ForEach(ctx, s.workers, len(pages), func(ctx context.Context, i int) error {
		sents, err := s.lang.Sentences(ctx, pages[i].Text)
		if err != nil {
			return fmt.Errorf("page %d: %w", pages[i].Number, err)
		}

		clean := make([]string, 0, len(sents))
		for _, sent := range sents {
			if t := strings.TrimSpace(sent); t != "" {
				clean = append(clean, t)
			}
		}
		perPage[i] = clean
		return nil
	})
	if err != nil {
		return nil, err
	}

	seg := &Segmentation{PageSentences: perPage}
	for i, sents := range perPage {
		for _, text := range sents {
			if utf8.RuneCountInString(text) < s.minLength {
				continue
			}
			seg.Sentences = append(seg.Sentences, model.Sentence{
				Page:  pages[i].Number,
				Text:  text,
				Order: len(seg.Sentences),
			})
		}
	}

	return seg, nil
}
