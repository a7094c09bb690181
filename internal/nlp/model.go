// Package nlp is the language capability: sentence segmentation, part-of-speech
// tagging with stop-word flags, and named-entity recognition.
package nlp

import (
	"context"

	"github.com/ppiankov/casebrief/internal/model"
)

// Token is a tagged token
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`  // Penn Treebank tag
	Stop bool   `json:"stop"` // Whether the lowercased text is a stop word
}

// IsNoun reports whether the token is a common or proper noun
func (t Token) IsNoun() bool {
	switch t.Tag {
	case "NN", "NNS", "NNP", "NNPS":
		return true
	}
	return false
}

// Analysis is the tagged form of one sentence
type Analysis struct {
	Tokens   []Token        `json:"tokens"`
	Entities []model.Entity `json:"entities"`
}

// Model is the language capability used by every stage that needs one.
// It is constructed once per process and passed explicitly.
type Model interface {
	// Sentences splits text into sentences in reading order
	Sentences(ctx context.Context, text string) ([]string, error)

	// Analyze tags the tokens and entities of one sentence
	Analyze(ctx context.Context, sentence string) (Analysis, error)

	// IsStop reports whether a lowercased word is a stop word
	IsStop(word string) bool
}
