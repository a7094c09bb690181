package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ppiankov/casebrief/internal/model"
)

const stagingPrefix = ".casebrief-"

// renameFile is os.Rename; tests replace it to fail a single move
var renameFile = os.Rename

// Exporter writes the tables of a Brief. Tables are written into a staging
// directory and moved into place only when all of them succeeded.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates an exporter
func NewExporter(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

type table struct {
	name  string
	write func(path string) error
}

// tables lists the tables of the enabled stages in fixed order
func tables(b *model.Brief) []table {
	var out []table
	if b.Stages.Importance {
		rows := ImportantRecords(b.Important)
		out = append(out, table{ImportantFile, func(p string) error { return WriteTable(p, rows) }})
	}
	if b.Stages.CaseCore {
		rows := CaseCoreRecords(b.CaseCore)
		out = append(out, table{CaseCoreFile, func(p string) error { return WriteTable(p, rows) }})
	}
	if b.Stages.Contradictions {
		rows := ContradictionRecords(b.Contradictions)
		out = append(out, table{ContradictionsFile, func(p string) error { return WriteTable(p, rows) }})
	}
	if b.Stages.Summaries {
		rows := SummaryRecords(b.Summaries)
		out = append(out, table{SummaryFile, func(p string) error { return WriteTable(p, rows) }})
	}
	if b.Stages.Entities {
		rows := EntityRecords(b.Entities)
		out = append(out, table{EntitiesFile, func(p string) error { return WriteTable(p, rows) }})
	}
	return out
}

// Export writes every enabled table into outDir, creating it if needed, and
// returns the final paths. An unusable outDir is an ErrInput failure; a
// failed write is an ErrIO failure and leaves no new table behind.
func (e *Exporter) Export(b *model.Brief, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create output directory: %v", model.ErrInput, err)
	}

	runID := b.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	staging, err := os.MkdirTemp(outDir, stagingPrefix+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("%w: output directory not writable: %v", model.ErrInput, err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	list := tables(b)
	for _, t := range list {
		if err := t.write(filepath.Join(staging, t.name)); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
		}
		e.logger.Debug("staged table", zap.String("table", t.name))
	}

	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.name
	}
	paths, err := commit(staging, outDir, names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrIO, err)
	}

	e.logger.Info("exported tables",
		zap.String("run_id", runID),
		zap.String("dir", outDir),
		zap.Int("tables", len(paths)))
	return paths, nil
}

// commit moves the staged tables into outDir. Existing tables are parked in
// the staging directory first so a failed move can put them back; on error
// outDir holds exactly what it held before.
func commit(staging, outDir string, names []string) ([]string, error) {
	for _, name := range names {
		info, err := os.Lstat(filepath.Join(outDir, name))
		if err == nil && !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%s exists and is not a regular file", name)
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("inspect %s: %v", name, err)
		}
	}

	previous := filepath.Join(staging, "previous")
	if err := os.Mkdir(previous, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %v", err)
	}

	var moved, parked []string
	rollback := func() {
		for _, name := range moved {
			_ = os.Remove(filepath.Join(outDir, name))
		}
		for _, name := range parked {
			_ = renameFile(filepath.Join(previous, name), filepath.Join(outDir, name))
		}
	}

	for _, name := range names {
		final := filepath.Join(outDir, name)
		if _, err := os.Lstat(final); err == nil {
			if err := renameFile(final, filepath.Join(previous, name)); err != nil {
				rollback()
				return nil, fmt.Errorf("set aside existing %s: %v", name, err)
			}
			parked = append(parked, name)
		}
		if err := renameFile(filepath.Join(staging, name), final); err != nil {
			rollback()
			return nil, fmt.Errorf("move %s into place: %v", name, err)
		}
		moved = append(moved, name)
	}

	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(outDir, name)
	}
	return paths, nil
}
