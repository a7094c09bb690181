package extract

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/nlp"
	"github.com/ppiankov/casebrief/internal/worker"
)

// InsightExtractor derives keywords and named entities from sentences
type InsightExtractor struct {
	lang        nlp.Model
	maxKeywords int
	minLength   int
	workers     int
}

// NewInsightExtractor creates an extractor keeping at most maxKeywords nouns
// of at least minLength characters per sentence
func NewInsightExtractor(lang nlp.Model, maxKeywords, minLength, workers int) *InsightExtractor {
	return &InsightExtractor{
		lang:        lang,
		maxKeywords: maxKeywords,
		minLength:   minLength,
		workers:     workers,
	}
}

// Insight analyses one sentence
func (e *InsightExtractor) Insight(ctx context.Context, sentence string) (model.SentenceInsight, error) {
	a, err := e.lang.Analyze(ctx, sentence)
	if err != nil {
		return model.SentenceInsight{}, err
	}
	return model.SentenceInsight{
		Keywords: e.keywords(a.Tokens),
		Entities: a.Entities,
	}, nil
}

// Important attaches keywords and entities to each scored sentence
func (e *InsightExtractor) Important(ctx context.Context, selected []model.ScoredSentence) ([]model.ImportantSentence, error) {
	out := make([]model.ImportantSentence, len(selected))
	err := worker.ForEach(ctx, e.workers, len(selected), func(ctx context.Context, i int) error {
		insight, err := e.Insight(ctx, selected[i].Text)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", selected[i].Order, err)
		}
		out[i] = model.ImportantSentence{ScoredSentence: selected[i], SentenceInsight: insight}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Mentions flattens every entity of every sentence into one row per mention,
// in document order and in the order the language model reports them
func (e *InsightExtractor) Mentions(ctx context.Context, sentences []model.Sentence) ([]model.EntityMention, error) {
	perSentence := make([][]model.Entity, len(sentences))
	err := worker.ForEach(ctx, e.workers, len(sentences), func(ctx context.Context, i int) error {
		a, err := e.lang.Analyze(ctx, sentences[i].Text)
		if err != nil {
			return fmt.Errorf("sentence %d: %w", sentences[i].Order, err)
		}
		perSentence[i] = a.Entities
		return nil
	})
	if err != nil {
		return nil, err
	}

	var mentions []model.EntityMention
	for i, ents := range perSentence {
		for _, ent := range ents {
			mentions = append(mentions, model.EntityMention{
				Page:     sentences[i].Page,
				Sentence: sentences[i].Text,
				Entity:   ent,
			})
		}
	}
	return mentions, nil
}

// keywords keeps non-stop nouns, first occurrence only, capped
func (e *InsightExtractor) keywords(tokens []nlp.Token) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if len(keywords) == e.maxKeywords {
			break
		}
		if !tok.IsNoun() || tok.Stop || utf8.RuneCountInString(tok.Text) < e.minLength {
			continue
		}
		if seen[tok.Text] {
			continue
		}
		seen[tok.Text] = true
		keywords = append(keywords, tok.Text)
	}
	return keywords
}
