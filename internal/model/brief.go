package model

import "time"

// Brief is the complete in-memory result of one pipeline run over one document
type Brief struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	OutputDir string    `json:"output_dir,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Stages    StageConfig `json:"stages"`
	PageCount int         `json:"page_count"`
	Sentences []Sentence  `json:"sentences"`

	Scores         []ScoredSentence    `json:"scores,omitempty"`
	Threshold      float64             `json:"threshold,omitempty"`
	Important      []ImportantSentence `json:"important,omitempty"`
	CaseCore       []CaseCoreExcerpt   `json:"case_core,omitempty"`
	Contradictions []ContradictionPair `json:"contradictions,omitempty"`
	Summaries      []PageSummary       `json:"summaries,omitempty"`
	Entities       []EntityMention     `json:"entities,omitempty"`

	Files []string `json:"files,omitempty"` // Exported table paths
}
