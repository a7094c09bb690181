package extract

import (
	"strings"

	"github.com/ppiankov/casebrief/internal/model"
)

// PageSummarizer builds extractive page summaries from leading sentences
type PageSummarizer struct {
	maxSentences int
}

// NewPageSummarizer creates a summarizer keeping up to maxSentences per page
func NewPageSummarizer(maxSentences int) *PageSummarizer {
	return &PageSummarizer{maxSentences: maxSentences}
}

// Summarize returns one summary per page. pageSentences must be aligned with
// pages; a page without sentences gets an empty summary.
func (s *PageSummarizer) Summarize(pages []model.Page, pageSentences [][]string) []model.PageSummary {
	summaries := make([]model.PageSummary, 0, len(pages))
	for i, page := range pages {
		var sents []string
		if i < len(pageSentences) {
			sents = pageSentences[i]
		}
		if len(sents) > s.maxSentences {
			sents = sents[:s.maxSentences]
		}
		summaries = append(summaries, model.PageSummary{
			Page: page.Number,
			Text: strings.Join(sents, " "),
		})
	}
	return summaries
}
