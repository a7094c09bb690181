package report

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteTable writes rows as CSV with a header taken from T's csv tags.
// An empty table still gets its header.
func WriteTable[T any](path string, rows []T) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	if rows == nil {
		rows = []T{}
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}

// ReadTable parses a table written by WriteTable
func ReadTable[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
