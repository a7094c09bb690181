package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/casebrief/internal/contradiction"
	"github.com/ppiankov/casebrief/internal/extract"
	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/nlp"
	"github.com/ppiankov/casebrief/internal/report"
	"github.com/ppiankov/casebrief/internal/score"
	"github.com/ppiankov/casebrief/internal/source"
)

// Stage names used in errors and logs
const (
	StageExtract        = "extract"
	StageSegment        = "segment"
	StageImportance     = "importance"
	StageCaseCore       = "case-core"
	StageContradictions = "contradictions"
	StageSummaries      = "summaries"
	StageEntities       = "entities"
	StageExport         = "export"
)

// PageSource supplies the pages of a document
type PageSource interface {
	Pages(ctx context.Context, path string) ([]model.Page, error)
}

// Pipeline orchestrates the complete analysis of one document
type Pipeline struct {
	source     PageSource
	segmenter  *extract.Segmenter
	scorer     *score.Importance
	caseCore   *extract.CaseCoreFilter
	detector   *contradiction.Detector
	summarizer *extract.PageSummarizer
	insights   *extract.InsightExtractor
	exporter   *report.Exporter
	config     *model.Config
	logger     *zap.Logger
}

// NewPipeline creates a pipeline. lang is the process-wide language model,
// built once by the caller and shared by every stage that needs it.
func NewPipeline(cfg *model.Config, lang nlp.Model, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Normalize()
	workers := cfg.Concurrency.Workers

	return &Pipeline{
		source:     source.NewExtractor(logger),
		segmenter:  extract.NewSegmenter(lang, cfg.Segment.MinLength, workers),
		scorer:     score.NewImportance(lang, cfg.Importance.Margin),
		caseCore:   extract.NewCaseCoreFilter(cfg.CaseCore.Terms),
		detector:   contradiction.NewDetector(cfg.Contradiction.NegationCues, cfg.Contradiction.LeadTokens),
		summarizer: extract.NewPageSummarizer(cfg.Summary.MaxSentences),
		insights:   extract.NewInsightExtractor(lang, cfg.Keywords.MaxKeywords, cfg.Keywords.MinLength, workers),
		exporter:   report.NewExporter(logger),
		config:     cfg,
		logger:     logger,
	}
}

// WithSource replaces the page source
func (p *Pipeline) WithSource(src PageSource) *Pipeline {
	p.source = src
	return p
}

// AnalyzeFile extracts, analyses and exports one document. Either every
// enabled table is written or none is.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path, outDir string) (*model.Brief, error) {
	// 1. Extract pages
	pages, err := p.source.Pages(ctx, path)
	if err != nil {
		return nil, stageError(StageExtract, model.ErrInput, err)
	}

	brief, err := p.Analyze(ctx, pages)
	if err != nil {
		return nil, err
	}
	brief.Source = path

	// 8. Export tables
	files, err := p.exporter.Export(brief, outDir)
	if err != nil {
		return nil, stageError(StageExport, model.ErrIO, err)
	}
	brief.OutputDir = outDir
	brief.Files = files

	return brief, nil
}

// Analyze runs every enabled stage over already extracted pages
func (p *Pipeline) Analyze(ctx context.Context, pages []model.Page) (*model.Brief, error) {
	if len(pages) == 0 {
		return nil, model.NewStageError(StageExtract, model.ErrEmptyCorpus, errors.New("no extractable pages"))
	}

	stages := p.config.Stages
	brief := &model.Brief{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Stages:    stages,
		PageCount: len(pages),
	}
	log := p.logger.With(zap.String("run_id", brief.RunID))

	// 2. Segment pages into sentences
	seg, err := p.segmenter.Segment(ctx, pages)
	if err != nil {
		return nil, stageError(StageSegment, model.ErrExternalCapability, err)
	}
	brief.Sentences = seg.Sentences
	log.Debug("segmented", zap.Int("pages", len(pages)), zap.Int("sentences", len(seg.Sentences)))

	// 3. Score and select important sentences
	if stages.Importance {
		res, err := p.scorer.Score(seg.Sentences)
		if err != nil {
			return nil, stageError(StageImportance, model.ErrEmptyCorpus, err)
		}
		brief.Scores = res.Scores
		brief.Threshold = res.Threshold

		brief.Important, err = p.insights.Important(ctx, res.Selected)
		if err != nil {
			return nil, stageError(StageImportance, model.ErrExternalCapability, err)
		}
		log.Debug("scored",
			zap.Float64("threshold", res.Threshold),
			zap.Int("selected", len(res.Selected)))
	}

	// 4. Case-core excerpts
	if stages.CaseCore {
		brief.CaseCore = p.caseCore.Filter(seg.Sentences)
		log.Debug("case core", zap.Int("excerpts", len(brief.CaseCore)))
	}

	// 5. Adjacent contradictions
	if stages.Contradictions {
		brief.Contradictions = p.detector.Detect(seg.Sentences)
		log.Debug("contradictions", zap.Int("pairs", len(brief.Contradictions)))
	}

	// 6. Page summaries
	if stages.Summaries {
		brief.Summaries = p.summarizer.Summarize(pages, seg.PageSentences)
	}

	// 7. Entity mentions
	if stages.Entities {
		brief.Entities, err = p.insights.Mentions(ctx, seg.Sentences)
		if err != nil {
			return nil, stageError(StageEntities, model.ErrExternalCapability, err)
		}
		log.Debug("entities", zap.Int("mentions", len(brief.Entities)))
	}

	return brief, nil
}

// stageError tags err with its stage. A kind already carried by err wins
// over the fallback.
func stageError(stage string, fallback error, err error) error {
	var se *model.StageError
	if errors.As(err, &se) {
		return err
	}
	for _, kind := range []error{model.ErrInput, model.ErrEmptyCorpus, model.ErrExternalCapability, model.ErrIO} {
		if errors.Is(err, kind) {
			return model.NewStageError(stage, kind, err)
		}
	}
	return model.NewStageError(stage, fallback, err)
}

// Summary is a one-line description of a brief for terminal output
func Summary(b *model.Brief) string {
	return fmt.Sprintf("%d pages, %d sentences, %d important, %d case-core, %d contradictions, %d entity mentions",
		b.PageCount, len(b.Sentences), len(b.Important), len(b.CaseCore), len(b.Contradictions), len(b.Entities))
}
