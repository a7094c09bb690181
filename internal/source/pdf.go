package source

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/ppiankov/casebrief/internal/model"
)

// PDFLoader extracts the plain text of each PDF page
type PDFLoader struct {
	logger *zap.Logger
}

// Load reads every page. A page that fails to decode is logged and dropped.
func (l *PDFLoader) Load(ctx context.Context, path string) (pages []model.Page, err error) {
	// The decoder panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := l.pageText(r, i)
		if err != nil {
			l.logger.Warn("dropping unreadable page", zap.Int("page", i), zap.Error(err))
			continue
		}
		pages = appendPage(pages, i, text)
	}

	return pages, nil
}

func (l *PDFLoader) pageText(r *pdf.Reader, i int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("decode page: %v", rec)
		}
	}()

	p := r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}
