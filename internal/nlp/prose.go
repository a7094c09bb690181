package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/ppiankov/casebrief/internal/model"
)

// ProseModel implements Model with the prose pretrained English models.
// The tagger and entity classifier are loaded once and shared by every call.
type ProseModel struct {
	model *prose.Model
	stops map[string]struct{}
}

// loadProseModel builds the tagger and classifier from the embedded data
var loadProseModel = func() *prose.Model {
	return prose.ModelFromData("en")
}

// NewProseModel loads the pretrained language model
func NewProseModel() *ProseModel {
	return &ProseModel{
		model: loadProseModel(),
		stops: defaultStopWords(),
	}
}

// Sentences segments text without tagging or extraction
func (m *ProseModel) Sentences(ctx context.Context, text string) (sents []string, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prose segmentation panicked: %v", r)
		}
	}()

	doc, err := prose.NewDocument(text,
		prose.UsingModel(m.model),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("segment: %w", err)
	}

	for _, s := range doc.Sentences() {
		sents = append(sents, s.Text)
	}
	return sents, nil
}

// Analyze tags a single sentence
func (m *ProseModel) Analyze(ctx context.Context, sentence string) (a Analysis, err error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("prose analysis panicked: %v", r)
		}
	}()

	doc, err := prose.NewDocument(sentence,
		prose.UsingModel(m.model),
		prose.WithSegmentation(false))
	if err != nil {
		return Analysis{}, fmt.Errorf("analyze: %w", err)
	}

	for _, tok := range doc.Tokens() {
		a.Tokens = append(a.Tokens, Token{
			Text: tok.Text,
			Tag:  tok.Tag,
			Stop: m.IsStop(strings.ToLower(tok.Text)),
		})
	}
	for _, ent := range doc.Entities() {
		a.Entities = append(a.Entities, model.Entity{Text: ent.Text, Label: ent.Label})
	}
	return a, nil
}

// IsStop reports whether word is in the English stop list
func (m *ProseModel) IsStop(word string) bool {
	_, ok := m.stops[word]
	return ok
}
