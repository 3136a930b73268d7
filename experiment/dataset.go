package experiment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/featmap/featmap/table"
)

// Dataset is a loaded tabular dataset: numeric feature columns aligned
// with a parallel label vector.
type Dataset struct {
	Name     string
	Features []table.Feature
	Labels   []string
}

// RowError records a skipped CSV row. Bad rows are reported, not fatal.
type RowError struct {
	Line int
	Err  string
}

// LoadCSV reads a CSV file with a header row into column-major feature
// vectors plus the label column. Malformed rows (wrong column count,
// non-numeric feature values) are skipped and reported, never fatal.
func LoadCSV(path, labelColumn string) (*Dataset, []RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	// Column-count mismatches are reported per row below instead of
	// aborting the read loop.
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}

	labelIdx := -1
	for i, col := range header {
		if col == labelColumn {
			labelIdx = i
			break
		}
	}
	if labelIdx < 0 {
		return nil, nil, fmt.Errorf("label column %q not found in header", labelColumn)
	}

	ds := &Dataset{Name: datasetName(path)}
	for i, col := range header {
		if i != labelIdx {
			ds.Features = append(ds.Features, table.Feature{Name: col})
		}
	}

	var rowErrs []RowError
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err.Error()})
			continue
		}

		if len(record) != len(header) {
			rowErrs = append(rowErrs, RowError{Line: line, Err: "wrong column count"})
			continue
		}

		values := make([]float64, 0, len(ds.Features))
		bad := false
		for i, cell := range record {
			if i == labelIdx {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				rowErrs = append(rowErrs, RowError{Line: line, Err: err.Error()})
				bad = true
				break
			}
			values = append(values, v)
		}
		if bad {
			continue
		}

		for i := range ds.Features {
			ds.Features[i].Values = append(ds.Features[i].Values, values[i])
		}
		ds.Labels = append(ds.Labels, strings.TrimSpace(record[labelIdx]))
	}

	if len(ds.Labels) == 0 {
		return nil, rowErrs, fmt.Errorf("dataset %s has no usable rows", path)
	}
	return ds, rowErrs, nil
}

func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Subset extracts the given rows from every feature column.
func Subset(features []table.Feature, rows []int) []table.Feature {
	out := make([]table.Feature, len(features))
	for i, f := range features {
		values := make([]float64, len(rows))
		for j, r := range rows {
			values[j] = f.Values[r]
		}
		out[i] = table.Feature{Name: f.Name, Values: values}
	}
	return out
}

// SubsetLabels extracts the given rows from the label vector.
func SubsetLabels(labels []string, rows []int) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = labels[r]
	}
	return out
}
