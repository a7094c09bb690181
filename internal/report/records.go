// Package report exports a Brief as five CSV tables with fixed columns.
package report

import (
	"github.com/ppiankov/casebrief/internal/model"
)

// Table file names
const (
	ImportantFile      = "important_sentences.csv"
	CaseCoreFile       = "case_core_points.csv"
	ContradictionsFile = "contradictions.csv"
	SummaryFile        = "page_wise_summary.csv"
	EntitiesFile       = "all_entities.csv"
)

// ImportantRecord is one row of important_sentences
type ImportantRecord struct {
	Page     int      `csv:"Page"`
	Sentence string   `csv:"Important Sentence"`
	Score    Score    `csv:"Score"`
	Keywords Keywords `csv:"Keywords"`
	Entities Entities `csv:"Entities"`
}

// CaseCoreRecord is one row of case_core_points
type CaseCoreRecord struct {
	Page     int    `csv:"Page"`
	Sentence string `csv:"Relevant Sentence"`
}

// ContradictionRecord is one row of contradictions
type ContradictionRecord struct {
	Page1      int    `csv:"Page1"`
	Statement1 string `csv:"Statement1"`
	Page2      int    `csv:"Page2"`
	Statement2 string `csv:"Statement2"`
}

// SummaryRecord is one row of page_wise_summary
type SummaryRecord struct {
	Page    int    `csv:"Page"`
	Summary string `csv:"Summary"`
}

// EntityRecord is one row of all_entities: one entity mention
type EntityRecord struct {
	Page     int    `csv:"Page"`
	Sentence string `csv:"Sentence"`
	Entity   string `csv:"Entity"`
	Type     string `csv:"Type"`
}

// ImportantRecords converts selected sentences to rows
func ImportantRecords(important []model.ImportantSentence) []ImportantRecord {
	rows := make([]ImportantRecord, 0, len(important))
	for _, s := range important {
		rows = append(rows, ImportantRecord{
			Page:     s.Page,
			Sentence: s.Text,
			Score:    Score(s.Score),
			Keywords: Keywords(s.Keywords),
			Entities: Entities(s.Entities),
		})
	}
	return rows
}

// CaseCoreRecords converts case-core excerpts to rows
func CaseCoreRecords(core []model.CaseCoreExcerpt) []CaseCoreRecord {
	rows := make([]CaseCoreRecord, 0, len(core))
	for _, c := range core {
		rows = append(rows, CaseCoreRecord{Page: c.Page, Sentence: c.Text})
	}
	return rows
}

// ContradictionRecords converts pairs to rows
func ContradictionRecords(pairs []model.ContradictionPair) []ContradictionRecord {
	rows := make([]ContradictionRecord, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, ContradictionRecord{
			Page1:      p.First.Page,
			Statement1: p.First.Text,
			Page2:      p.Second.Page,
			Statement2: p.Second.Text,
		})
	}
	return rows
}

// SummaryRecords converts page summaries to rows
func SummaryRecords(summaries []model.PageSummary) []SummaryRecord {
	rows := make([]SummaryRecord, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, SummaryRecord{Page: s.Page, Summary: s.Text})
	}
	return rows
}

// EntityRecords converts mentions to rows
func EntityRecords(mentions []model.EntityMention) []EntityRecord {
	rows := make([]EntityRecord, 0, len(mentions))
	for _, m := range mentions {
		rows = append(rows, EntityRecord{
			Page:     m.Page,
			Sentence: m.Sentence,
			Entity:   m.Text,
			Type:     m.Label,
		})
	}
	return rows
}
