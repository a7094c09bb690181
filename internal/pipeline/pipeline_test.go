package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/nlp"
	"github.com/ppiankov/casebrief/internal/report"
)

const caseText = `He did not go to the market. He went to the market according to the clerk. FIR number 112 was registered against the accused. Ok.` +
	"\f" + `The weather was clear that evening. Ravi recovered the weapon near the river bank. Ravi gave a statement to the police. The witness saw Ravi in Delhi. Delhi police filed the chargesheet later.`

func newTestPipeline(t *testing.T, cfg *model.Config) (*Pipeline, *nlp.Fake) {
	t.Helper()
	lang := nlp.NewFake()
	lang.Entities = []model.Entity{{Text: "Ravi", Label: "PERSON"}, {Text: "Delhi", Label: "GPE"}}
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	return NewPipeline(cfg, lang, zap.NewNop()), lang
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestPipeline_AnalyzeFile(t *testing.T) {
	p, _ := newTestPipeline(t, nil)
	out := filepath.Join(t.TempDir(), "report")

	brief, err := p.AnalyzeFile(context.Background(), writeDoc(t, caseText), out)
	require.NoError(t, err)

	assert.Equal(t, 2, brief.PageCount)
	assert.Len(t, brief.Sentences, 8, "\"Ok.\" is too short to keep")
	assert.Len(t, brief.Files, 5)
	assert.NotEmpty(t, brief.RunID)

	require.Len(t, brief.Contradictions, 1)
	assert.Equal(t, 1, brief.Contradictions[0].First.Page)
	assert.Equal(t, 1, brief.Contradictions[0].Second.Page)

	var coreTexts []string
	for _, c := range brief.CaseCore {
		coreTexts = append(coreTexts, c.Text)
	}
	assert.Contains(t, coreTexts, "FIR number 112 was registered against the accused.")
	assert.NotContains(t, coreTexts, "The weather was clear that evening.")

	require.Len(t, brief.Summaries, 2)
	assert.Equal(t, "He did not go to the market. He went to the market according to the clerk. FIR number 112 was registered against the accused. Ok.", brief.Summaries[0].Text)
	assert.Equal(t, "The weather was clear that evening. Ravi recovered the weapon near the river bank. Ravi gave a statement to the police. The witness saw Ravi in Delhi.", brief.Summaries[1].Text)

	var sum float64
	for _, s := range brief.Scores {
		sum += s.Score
	}
	assert.InDelta(t, sum/float64(len(brief.Scores))*1.12, brief.Threshold, 1e-9)
	for _, imp := range brief.Important {
		assert.GreaterOrEqual(t, imp.Score, brief.Threshold)
		assert.LessOrEqual(t, len(imp.Keywords), 7)
	}

	rows, err := report.ReadTable[report.EntityRecord](filepath.Join(out, report.EntitiesFile))
	require.NoError(t, err)
	assert.Len(t, rows, len(brief.Entities))
	assert.Len(t, brief.Entities, 5, "one row per mention: Ravi x3, Delhi x2")

	important, err := report.ReadTable[report.ImportantRecord](filepath.Join(out, report.ImportantFile))
	require.NoError(t, err)
	require.Len(t, important, len(brief.Important))
	for i, row := range important {
		assert.Equal(t, brief.Important[i].Text, row.Sentence)
		assert.InDelta(t, report.Round4(brief.Important[i].Score), float64(row.Score), 1e-9)
	}
}

func TestPipeline_MarketScenario(t *testing.T) {
	p, _ := newTestPipeline(t, nil)
	pages := []model.Page{{Number: 1, Text: "He did not go to the market. He went to the market according to the clerk."}}

	brief, err := p.Analyze(context.Background(), pages)
	require.NoError(t, err)

	require.Len(t, brief.Contradictions, 1)
	pair := brief.Contradictions[0]
	assert.Equal(t, 1, pair.First.Page)
	assert.Equal(t, 1, pair.Second.Page)
	assert.Equal(t, pair.First.Order+1, pair.Second.Order)
}

func TestPipeline_EmptyDocument(t *testing.T) {
	p, _ := newTestPipeline(t, nil)
	out := filepath.Join(t.TempDir(), "report")

	_, err := p.AnalyzeFile(context.Background(), writeDoc(t, " \f \n"), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyCorpus)

	var se *model.StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, StageExtract, se.Stage)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output is created")
}

func TestPipeline_NoSentencesReachScorer(t *testing.T) {
	p, _ := newTestPipeline(t, nil)

	_, err := p.Analyze(context.Background(), []model.Page{{Number: 1, Text: "Too short."}})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrEmptyCorpus)
	assert.Contains(t, err.Error(), StageImportance)
}

func TestPipeline_MissingDocument(t *testing.T) {
	p, _ := newTestPipeline(t, nil)

	_, err := p.AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), t.TempDir())
	assert.ErrorIs(t, err, model.ErrInput)
}

func TestPipeline_LanguageFailureAbortsWithoutOutput(t *testing.T) {
	p, lang := newTestPipeline(t, nil)
	lang.FailOn = "weapon"
	out := filepath.Join(t.TempDir(), "report")

	_, err := p.AnalyzeFile(context.Background(), writeDoc(t, caseText), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrExternalCapability)
	assert.ErrorIs(t, err, nlp.ErrFake)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestPipeline_StageToggles(t *testing.T) {
	cfg := model.DefaultConfig()
	unknown := cfg.Stages.EnableOnly([]string{"case-core", "summaries"})
	require.Empty(t, unknown)

	p, lang := newTestPipeline(t, cfg)
	out := t.TempDir()

	brief, err := p.AnalyzeFile(context.Background(), writeDoc(t, caseText), out)
	require.NoError(t, err)

	assert.Empty(t, brief.Important)
	assert.Empty(t, brief.Contradictions)
	assert.Empty(t, brief.Entities)
	assert.NotEmpty(t, brief.CaseCore)
	assert.Len(t, brief.Summaries, 2)
	assert.Equal(t, int64(0), lang.AnalyzeCalls(), "disabled stages make no language calls")

	assert.ElementsMatch(t, []string{
		filepath.Join(out, report.CaseCoreFile),
		filepath.Join(out, report.SummaryFile),
	}, brief.Files)
}

func TestPipeline_ParallelMatchesSequential(t *testing.T) {
	seqCfg := model.DefaultConfig()
	parCfg := model.DefaultConfig()
	parCfg.Concurrency.Workers = 4

	pages := []model.Page{
		{Number: 1, Text: "He did not go to the market. He went to the market according to the clerk."},
		{Number: 2, Text: "Ravi recovered the weapon near the river bank. The witness saw Ravi in Delhi."},
		{Number: 4, Text: "Delhi police filed the chargesheet later. The accused never met Ravi. The accused met Ravi twice."},
	}

	seqP, _ := newTestPipeline(t, seqCfg)
	parP, _ := newTestPipeline(t, parCfg)

	a, err := seqP.Analyze(context.Background(), pages)
	require.NoError(t, err)
	b, err := parP.Analyze(context.Background(), pages)
	require.NoError(t, err)

	assert.Equal(t, a.Sentences, b.Sentences)
	assert.Equal(t, a.Scores, b.Scores)
	assert.Equal(t, a.Important, b.Important)
	assert.Equal(t, a.Contradictions, b.Contradictions)
	assert.Equal(t, a.Summaries, b.Summaries)
	assert.Equal(t, a.Entities, b.Entities)
}

type stubSource struct {
	pages []model.Page
	err   error
}

func (s *stubSource) Pages(ctx context.Context, path string) ([]model.Page, error) {
	return s.pages, s.err
}

func TestPipeline_WithSource(t *testing.T) {
	p, _ := newTestPipeline(t, nil)
	p.WithSource(&stubSource{err: errors.New("boom")})

	_, err := p.AnalyzeFile(context.Background(), "anything.pdf", t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInput)
	assert.Contains(t, err.Error(), "extract: ")
}
