package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/casebrief/internal/model"
)

const (
	keywordSep = ", "
	entitySep  = "; "
	labelSep   = ":"
)

// Score is an importance score written with four decimals
type Score float64

// Round4 rounds half away from zero at four decimals
func Round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

// MarshalCSV implements gocsv.TypeMarshaller
func (s Score) MarshalCSV() (string, error) {
	return strconv.FormatFloat(Round4(float64(s)), 'f', 4, 64), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (s *Score) UnmarshalCSV(field string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return fmt.Errorf("parse score %q: %w", field, err)
	}
	*s = Score(v)
	return nil
}

// Keywords is written comma-joined
type Keywords []string

// MarshalCSV implements gocsv.TypeMarshaller
func (k Keywords) MarshalCSV() (string, error) {
	return strings.Join(k, keywordSep), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (k *Keywords) UnmarshalCSV(field string) error {
	if field == "" {
		*k = nil
		return nil
	}
	*k = strings.Split(field, keywordSep)
	return nil
}

// Entities is written as "text:LABEL" pairs joined by "; "
type Entities []model.Entity

// MarshalCSV implements gocsv.TypeMarshaller
func (e Entities) MarshalCSV() (string, error) {
	parts := make([]string, 0, len(e))
	for _, ent := range e {
		if strings.Contains(ent.Label, labelSep) {
			return "", fmt.Errorf("entity label %q contains %q", ent.Label, labelSep)
		}
		parts = append(parts, ent.Text+labelSep+ent.Label)
	}
	return strings.Join(parts, entitySep), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. Each pair splits on its
// last ':' since labels never contain one.
func (e *Entities) UnmarshalCSV(field string) error {
	if field == "" {
		*e = nil
		return nil
	}

	var out Entities
	for _, part := range strings.Split(field, entitySep) {
		idx := strings.LastIndex(part, labelSep)
		if idx < 0 {
			return fmt.Errorf("entity %q has no label", part)
		}
		out = append(out, model.Entity{Text: part[:idx], Label: part[idx+1:]})
	}
	*e = out
	return nil
}
