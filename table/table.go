// Package table builds class-pairwise distance tables for the feature
// columns of a labeled dataset. For every feature it computes a C×C
// matrix of distances between the feature's class-conditional value
// distributions, then stacks the row-major flattened matrices into the
// N×C² table consumed by the diffusion-map embedder.
package table

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/featmap/featmap/distance"
)

// Feature is a named column of a tabular dataset, aligned row-for-row
// with the dataset's label vector.
type Feature struct {
	Name   string
	Values []float64
}

// Table holds the distance table for one (dataset, metric) pair.
type Table struct {
	// Flat is the N×C² flattened distance table. Row order matches the
	// order of the input features; every row is one feature's C×C
	// class-pair matrix flattened row-major.
	Flat [][]float64

	// ByFeature retains the unflattened per-feature matrices, keyed by
	// feature name, for consumers that want the class-pair structure.
	ByFeature map[string]*mat.SymDense

	// Classes is the ordered class set the matrix axes refer to.
	Classes []string
}

// ErrShapeMismatch is returned when a feature column and the label
// vector disagree on row count.
var ErrShapeMismatch = errors.New("table: feature length does not match label vector")

// Classes returns the unique labels in order of first appearance. The
// same ordered set must be threaded through every distance computation
// for a dataset so that matrix axes stay comparable.
func Classes(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	var classes []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			classes = append(classes, l)
		}
	}
	return classes
}

// Build computes the class-pair distance matrix for every feature and
// aggregates the flattened rows into a Table. It is a pure function of
// its inputs; identical inputs yield identical tables.
func Build(features []Feature, labels []string, metric distance.Metric) (*Table, error) {
	classes := Classes(labels)
	t := &Table{
		Flat:      make([][]float64, 0, len(features)),
		ByFeature: make(map[string]*mat.SymDense, len(features)),
		Classes:   classes,
	}

	for i, f := range features {
		if len(f.Values) != len(labels) {
			return nil, fmt.Errorf("%w: feature %d (%s) has %d values for %d labels",
				ErrShapeMismatch, i, f.Name, len(f.Values), len(labels))
		}
		m := ClassMatrix(f.Values, labels, classes, metric)
		t.ByFeature[f.Name] = m
		t.Flat = append(t.Flat, flatten(m))
	}
	return t, nil
}

// ClassMatrix computes the C×C matrix of metric distances between the
// class-conditional distributions of one feature column. The matrix is
// symmetric by construction: each unordered pair is computed once and
// mirrored. The diagonal is 0 regardless of the metric's output, and a
// class absent from the labels contributes 0 distances.
func ClassMatrix(values []float64, labels []string, classes []string, metric distance.Metric) *mat.SymDense {
	byClass := make(map[string][]float64, len(classes))
	n := min(len(values), len(labels))
	for i := 0; i < n; i++ {
		byClass[labels[i]] = append(byClass[labels[i]], values[i])
	}

	c := len(classes)
	m := mat.NewSymDense(c, nil)
	for i := 0; i < c; i++ {
		for j := i + 1; j < c; j++ {
			d := metric.Distance(byClass[classes[i]], byClass[classes[j]])
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				d = 0
			}
			m.SetSym(i, j, d)
		}
	}
	return m
}

func flatten(m *mat.SymDense) []float64 {
	c := m.SymmetricDim()
	row := make([]float64, 0, c*c)
	for i := 0; i < c; i++ {
		for j := 0; j < c; j++ {
			row = append(row, m.At(i, j))
		}
	}
	return row
}
