package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/casebrief/internal/model"
)

// pageBreak separates pages in pdftotext output
const pageBreak = "\f"

// TextLoader reads plain text. Form feeds separate pages; a file without
// any is a single page.
type TextLoader struct{}

// Load splits the file on form feeds, numbering pages by physical position
func (l *TextLoader) Load(ctx context.Context, path string) ([]model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	var pages []model.Page
	for i, text := range strings.Split(string(data), pageBreak) {
		pages = appendPage(pages, i+1, text)
	}
	return pages, nil
}
