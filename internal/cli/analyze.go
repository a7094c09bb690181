package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/pipeline"
)

var (
	outputDir string
	only      []string
	workers   int
	noCache   bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <document>",
	Short: "Analyse one case document and write its evidence tables",
	Long: `Analyze reads a PDF, plain-text (form feed separated pages) or HTML
document and writes five CSV tables into the output directory:

  important_sentences.csv   Page, Important Sentence, Score, Keywords, Entities
  case_core_points.csv      Page, Relevant Sentence
  contradictions.csv        Page1, Statement1, Page2, Statement2
  page_wise_summary.csv     Page, Summary
  all_entities.csv          Page, Sentence, Entity, Type

All tables are written together or not at all.

Example:
  casebrief analyze report.pdf
  casebrief analyze report.pdf -o ./case-112
  casebrief analyze report.pdf --only case-core,summaries`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (default from config: ./casebrief-report)")
	addStageFlags(analyzeCmd)
}

// addStageFlags registers the flags shared by analyze and batch
func addStageFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&only, "only", nil, "run only these stages: "+strings.Join(model.StageNames, ", "))
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel language-model calls per document (1 = sequential)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable memoisation of sentence analysis")
}

// resolveConfig applies command flags on top of the loaded configuration
func resolveConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if len(only) > 0 {
		if unknown := cfg.Stages.EnableOnly(only); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: unknown stage(s) %s (valid: %s)",
				model.ErrInput, strings.Join(unknown, ", "), strings.Join(model.StageNames, ", "))
		}
	}
	if cmd.Flags().Changed("workers") {
		cfg.Concurrency.Workers = workers
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	cfg.Normalize()
	return cfg, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Output:    %s\n", cfg.Output.Dir)
		fmt.Fprintf(os.Stderr, "Workers:   %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "⚙️  Running pipeline...\n")
	}

	p := pipeline.NewPipeline(cfg, newLanguageModel(cfg), logger)

	brief, err := p.AnalyzeFile(context.Background(), path, cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ %s\n", pipeline.Summary(brief))
	for _, file := range brief.Files {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", file)
	}
	return nil
}
