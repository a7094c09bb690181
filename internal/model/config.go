package model

import "time"

// Config holds all casebrief settings
type Config struct {
	Stages        StageConfig         `yaml:"stages" mapstructure:"stages"`
	Segment       SegmentConfig       `yaml:"segment" mapstructure:"segment"`
	Importance    ImportanceConfig    `yaml:"importance" mapstructure:"importance"`
	CaseCore      CaseCoreConfig      `yaml:"case_core" mapstructure:"case_core"`
	Contradiction ContradictionConfig `yaml:"contradiction" mapstructure:"contradiction"`
	Summary       SummaryConfig       `yaml:"summary" mapstructure:"summary"`
	Keywords      KeywordConfig       `yaml:"keywords" mapstructure:"keywords"`
	Concurrency   ConcurrencyConfig   `yaml:"concurrency" mapstructure:"concurrency"`
	Cache         CacheConfig         `yaml:"cache" mapstructure:"cache"`
	Output        OutputConfig        `yaml:"output" mapstructure:"output"`
}

// StageConfig toggles pipeline stages. A disabled stage produces no table.
type StageConfig struct {
	Importance     bool `yaml:"importance" mapstructure:"importance"`
	CaseCore       bool `yaml:"case_core" mapstructure:"case_core"`
	Contradictions bool `yaml:"contradictions" mapstructure:"contradictions"`
	Summaries      bool `yaml:"summaries" mapstructure:"summaries"`
	Entities       bool `yaml:"entities" mapstructure:"entities"`
}

// SegmentConfig controls sentence record filtering
type SegmentConfig struct {
	MinLength int `yaml:"min_length" mapstructure:"min_length"` // Minimum characters after trimming
}

// ImportanceConfig controls important-sentence selection
type ImportanceConfig struct {
	Margin float64 `yaml:"margin" mapstructure:"margin"` // threshold = mean * Margin
}

// CaseCoreConfig holds the domain vocabulary
type CaseCoreConfig struct {
	Terms []string `yaml:"terms" mapstructure:"terms"`
}

// ContradictionConfig controls the adjacency heuristic
type ContradictionConfig struct {
	NegationCues []string `yaml:"negation_cues" mapstructure:"negation_cues"`
	LeadTokens   int      `yaml:"lead_tokens" mapstructure:"lead_tokens"`
}

// SummaryConfig controls page summaries
type SummaryConfig struct {
	MaxSentences int `yaml:"max_sentences" mapstructure:"max_sentences"`
}

// KeywordConfig controls keyword extraction
type KeywordConfig struct {
	MaxKeywords int `yaml:"max_keywords" mapstructure:"max_keywords"`
	MinLength   int `yaml:"min_length" mapstructure:"min_length"`
}

// ConcurrencyConfig controls optional fan-out of language calls
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // 1 = strictly sequential
}

// CacheConfig controls memoisation of per-sentence analysis within a run
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig controls reporting
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultCaseCoreTerms is the fixed case-core vocabulary
var DefaultCaseCoreTerms = []string{
	"FIR", "allegation", "accused", "charge", "offence", "offense",
	"victim", "statement", "witness", "testimony", "evidence",
	"crime", "injury", "recovered", "weapon", "motive", "arrest",
}

// DefaultNegationCues are the lexical markers used by the contradiction heuristic
var DefaultNegationCues = []string{"not", "never", "no", "didn't", "don't", "cannot"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Stages: StageConfig{
			Importance:     true,
			CaseCore:       true,
			Contradictions: true,
			Summaries:      true,
			Entities:       true,
		},
		Segment:    SegmentConfig{MinLength: 13},
		Importance: ImportanceConfig{Margin: 1.12},
		CaseCore: CaseCoreConfig{
			Terms: append([]string(nil), DefaultCaseCoreTerms...),
		},
		Contradiction: ContradictionConfig{
			NegationCues: append([]string(nil), DefaultNegationCues...),
			LeadTokens:   5,
		},
		Summary:     SummaryConfig{MaxSentences: 4},
		Keywords:    KeywordConfig{MaxKeywords: 7, MinLength: 4},
		Concurrency: ConcurrencyConfig{Workers: 1},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Output: OutputConfig{Dir: "./casebrief-report"},
	}
}

// Normalize replaces zero or invalid values with defaults
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Segment.MinLength <= 0 {
		c.Segment.MinLength = def.Segment.MinLength
	}
	if c.Importance.Margin <= 0 {
		c.Importance.Margin = def.Importance.Margin
	}
	if len(c.CaseCore.Terms) == 0 {
		c.CaseCore.Terms = def.CaseCore.Terms
	}
	if len(c.Contradiction.NegationCues) == 0 {
		c.Contradiction.NegationCues = def.Contradiction.NegationCues
	}
	if c.Contradiction.LeadTokens <= 0 {
		c.Contradiction.LeadTokens = def.Contradiction.LeadTokens
	}
	if c.Summary.MaxSentences <= 0 {
		c.Summary.MaxSentences = def.Summary.MaxSentences
	}
	if c.Keywords.MaxKeywords <= 0 {
		c.Keywords.MaxKeywords = def.Keywords.MaxKeywords
	}
	if c.Keywords.MinLength <= 0 {
		c.Keywords.MinLength = def.Keywords.MinLength
	}
	if c.Concurrency.Workers <= 0 {
		c.Concurrency.Workers = def.Concurrency.Workers
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = def.Cache.TTL
	}
	if c.Output.Dir == "" {
		c.Output.Dir = def.Output.Dir
	}
}

// StageNames lists the toggle names accepted by --only
var StageNames = []string{"importance", "case-core", "contradictions", "summaries", "entities"}

// EnableOnly disables every stage not named. Unknown names are returned.
func (s *StageConfig) EnableOnly(names []string) []string {
	*s = StageConfig{}
	var unknown []string
	for _, name := range names {
		switch name {
		case "importance":
			s.Importance = true
		case "case-core", "case_core":
			s.CaseCore = true
		case "contradictions":
			s.Contradictions = true
		case "summaries":
			s.Summaries = true
		case "entities":
			s.Entities = true
		default:
			unknown = append(unknown, name)
		}
	}
	return unknown
}
