package model

// Page is the raw text of one physical page of the source document
type Page struct {
	Number int    `json:"number"` // 1-based physical page number
	Text   string `json:"text"`
}

// Sentence is one segmented sentence in document order
type Sentence struct {
	Page  int    `json:"page"`
	Text  string `json:"text"`
	Order int    `json:"order"` // Position in the flattened, page-ordered sequence (0-based, unique)
}

// ScoredSentence is a sentence with its importance score
type ScoredSentence struct {
	Sentence
	Score float64 `json:"score"`
}

// CaseCoreExcerpt is a sentence matched by the case-core vocabulary
type CaseCoreExcerpt struct {
	Sentence
	Term string `json:"term"` // First vocabulary term that matched
}

// ContradictionPair holds two adjacent sentences where the first is negated
// and the second restates it without negation. Second.Order == First.Order+1.
type ContradictionPair struct {
	First  Sentence `json:"first"`
	Second Sentence `json:"second"`
}

// PageSummary is the extractive summary of a single page
type PageSummary struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// Entity is a named-entity span as returned by the language capability
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// EntityMention is one entity found in one sentence
type EntityMention struct {
	Page     int    `json:"page"`
	Sentence string `json:"sentence"`
	Entity
}

// SentenceInsight holds the keywords and entities recomputed for a sentence
type SentenceInsight struct {
	Keywords []string `json:"keywords"`
	Entities []Entity `json:"entities"`
}

// ImportantSentence is a selected sentence with its keywords and entities
type ImportantSentence struct {
	ScoredSentence
	SentenceInsight
}
