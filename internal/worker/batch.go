package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ppiankov/casebrief/internal/model"
)

// Analyzer analyses one document and exports its tables into outDir
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path, outDir string) (*model.Brief, error)
}

// DocumentJob represents one document analysis in a batch
type DocumentJob struct {
	Index    int
	Path     string
	OutDir   string
	Analyzer Analyzer
}

// Execute runs the analysis
func (j *DocumentJob) Execute(ctx context.Context) Result {
	brief, err := j.Analyzer.AnalyzeFile(ctx, j.Path, j.OutDir)
	return &DocumentResult{
		Index:  j.Index,
		Path:   j.Path,
		OutDir: j.OutDir,
		Brief:  brief,
		Error:  err,
	}
}

// DocumentResult represents the result of a document job
type DocumentResult struct {
	Index  int
	Path   string
	OutDir string
	Brief  *model.Brief
	Error  error
}

// GetError returns the error from the document result
func (r *DocumentResult) GetError() error {
	return r.Error
}

// BatchProcessor analyses multiple documents, each independently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessDocuments analyses every path into its own directory under outputDir.
// Results are returned in input order; a failed document does not stop the others.
func (b *BatchProcessor) ProcessDocuments(ctx context.Context, paths []string, outputDir string) []*DocumentResult {
	if len(paths) == 0 {
		return []*DocumentResult{}
	}

	dirs := OutputDirs(paths, outputDir)
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &DocumentJob{
			Index:    i,
			Path:     path,
			OutDir:   dirs[i],
			Analyzer: b.analyzer,
		}
	}

	pool := NewPool(ctx, b.concurrency)
	defer pool.Shutdown()
	results := pool.Run(jobs)

	ordered := make([]*DocumentResult, len(paths))
	for _, result := range results {
		r := result.(*DocumentResult)
		ordered[r.Index] = r
	}
	for i, r := range ordered {
		if r == nil {
			ordered[i] = &DocumentResult{Index: i, Path: paths[i], OutDir: dirs[i], Error: fmt.Errorf("not processed: %w", ctx.Err())}
		}
	}

	return ordered
}

// ProcessFile reads document paths from a list file and analyses them
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath, outputDir string) ([]*DocumentResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read document list: %w", err)
	}

	return b.ProcessDocuments(ctx, paths, outputDir), nil
}

// ReadPathsFromFile reads document paths from a file (one per line).
// Relative paths are resolved against the list file's directory.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(listPath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}

// OutputDirs assigns each document a distinct directory named after its file.
// Collisions get the first free "-N" suffix.
func OutputDirs(paths []string, outputDir string) []string {
	dirs := make([]string, len(paths))
	taken := make(map[string]bool)
	for i, path := range paths {
		base := SanitizeFilename(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
		slug := base
		for n := 2; taken[slug]; n++ {
			slug = base + "-" + strconv.Itoa(n)
		}
		taken[slug] = true
		dirs[i] = filepath.Join(outputDir, slug)
	}
	return dirs
}

// maxSlugRunes caps the length of a document directory name
const maxSlugRunes = 100

// SanitizeFilename makes s safe for use as a single path element
func SanitizeFilename(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "-",
	)
	s = replacer.Replace(strings.TrimSpace(s))
	s = strings.Trim(s, ".")

	if s == "" {
		s = "document"
	}
	if r := []rune(s); len(r) > maxSlugRunes {
		s = string(r[:maxSlugRunes])
	}
	return s
}
