package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/casebrief/internal/pipeline"
	"github.com/ppiankov/casebrief/internal/worker"
)

var (
	concurrency  int
	batchOutDir  string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list-file>",
	Short: "Analyse every document listed in a file",
	Long: `Batch analyses several documents, each on its own:
- Read document paths from the list file (one per line, # comments)
- Analyse documents in parallel with a configurable worker count
- Write each document's tables into <output-dir>/<document-name>/

Documents are never analysed together. A failed document is reported and
does not stop the others.

Example:
  casebrief batch cases.txt
  casebrief batch cases.txt --concurrency 4 --output-dir ./briefs`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of documents analysed at once")
	batchCmd.Flags().StringVar(&batchOutDir, "output-dir", "./casebrief-reports", "parent directory for per-document reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "total timeout for the batch (0 = none)")
	addStageFlags(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	if batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, batchTimeout)
		defer cancel()
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Casebrief Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", batchOutDir)
	fmt.Fprintf(os.Stderr, "\n")

	// One language model for every document
	p := pipeline.NewPipeline(cfg, newLanguageModel(cfg), logger)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file, batchOutDir)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s -> %s (%s)\n", result.Path, result.OutDir, pipeline.Summary(result.Brief))
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d documents\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", batchOutDir)
	fmt.Fprintf(os.Stderr, "\n")

	if failureCount > 0 {
		return fmt.Errorf("%d of %d documents failed", failureCount, len(results))
	}
	return nil
}
