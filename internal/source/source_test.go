package source

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
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestExtractor_TextPages(t *testing.T) {
	path := writeFile(t, "report.txt", "Page one text.\f   \n\fPage three text.")

	pages, err := NewExtractor(zap.NewNop()).Pages(context.Background(), path)
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Equal(t, model.Page{Number: 1, Text: "Page one text."}, pages[0])
	assert.Equal(t, 3, pages[1].Number, "blank pages keep physical numbering")
}

func TestExtractor_TextWithoutFormFeedIsOnePage(t *testing.T) {
	path := writeFile(t, "report.txt", "Only one page here.\nStill the same page.")

	pages, err := NewExtractor(nil).Pages(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, 1, pages[0].Number)
}

func TestExtractor_EmptyTextYieldsNoPages(t *testing.T) {
	path := writeFile(t, "empty.txt", "  \n\f\n")

	pages, err := NewExtractor(nil).Pages(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestExtractor_HTMLVisibleText(t *testing.T) {
	path := writeFile(t, "report.html", `<html><head><title>x</title><style>p{}</style></head>
<body><p>The accused was arrested.</p><script>var a = 1;</script><p>The witness gave a statement.</p></body></html>`)

	pages, err := NewExtractor(nil).Pages(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Contains(t, pages[0].Text, "The accused was arrested.")
	assert.Contains(t, pages[0].Text, "The witness gave a statement.")
	assert.NotContains(t, pages[0].Text, "var a")
	assert.NotContains(t, pages[0].Text, "p{}")
}

func TestExtractor_InputErrors(t *testing.T) {
	e := NewExtractor(nil)

	_, err := e.Pages(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.ErrorIs(t, err, model.ErrInput)

	_, err = e.Pages(context.Background(), writeFile(t, "report.docx", "x"))
	assert.ErrorIs(t, err, model.ErrInput)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = e.Pages(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, model.ErrInput)

	_, err = e.Pages(context.Background(), writeFile(t, "broken.pdf", "not a pdf"))
	assert.ErrorIs(t, err, model.ErrInput)
}

type stubLoader struct {
	pages []model.Page
	err   error
}

func (s *stubLoader) Load(ctx context.Context, path string) ([]model.Page, error) {
	return s.pages, s.err
}

func TestExtractor_Register(t *testing.T) {
	e := NewExtractor(nil)
	e.Register(".RTF", &stubLoader{pages: []model.Page{{Number: 1, Text: "x"}}})

	pages, err := e.Pages(context.Background(), writeFile(t, "a.rtf", "x"))
	require.NoError(t, err)
	assert.Len(t, pages, 1)

	e.Register(".rtf", &stubLoader{err: errors.New("decode")})
	_, err = e.Pages(context.Background(), writeFile(t, "b.rtf", "x"))
	assert.ErrorIs(t, err, model.ErrInput)
}
