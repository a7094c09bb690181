// Package source is the page-text extraction capability: it turns a document
// path into ordered pages of raw text.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/casebrief/internal/model"
)

// ErrUnsupported is returned for extensions no loader handles
var ErrUnsupported = errors.New("unsupported document type")

// Loader extracts pages from one document format
type Loader interface {
	// Load returns non-blank pages in ascending page order
	Load(ctx context.Context, path string) ([]model.Page, error)
}

// Extractor selects a Loader by file extension
type Extractor struct {
	loaders map[string]Loader
	logger  *zap.Logger
}

// NewExtractor creates an extractor with the PDF, text and HTML loaders
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	text := &TextLoader{}
	html := &HTMLLoader{}
	return &Extractor{
		loaders: map[string]Loader{
			".pdf":  &PDFLoader{logger: logger},
			".txt":  text,
			".text": text,
			".html": html,
			".htm":  html,
		},
		logger: logger,
	}
}

// Register adds or replaces the loader for ext (including the leading dot)
func (e *Extractor) Register(ext string, l Loader) {
	e.loaders[strings.ToLower(ext)] = l
}

// Pages extracts the pages of the document at path. Failure to open or
// read the document is an input error; a document with no text yields no
// pages and no error.
func (e *Extractor) Pages(ctx context.Context, path string) ([]model.Page, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInput, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", model.ErrInput, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	loader, ok := e.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %w %q", model.ErrInput, ErrUnsupported, ext)
	}

	pages, err := loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInput, err)
	}

	e.logger.Debug("extracted pages",
		zap.String("path", path),
		zap.String("format", ext),
		zap.Int("pages", len(pages)))
	return pages, nil
}

// appendPage keeps pages with visible text
func appendPage(pages []model.Page, number int, text string) []model.Page {
	if strings.TrimSpace(text) == "" {
		return pages
	}
	return append(pages, model.Page{Number: number, Text: text})
}
