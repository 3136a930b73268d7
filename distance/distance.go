// Package distance provides statistical distances between the empirical
// class-conditional distributions of a single feature.
//
// Every metric is symmetric, non-negative, and pure. Inputs with fewer
// than two samples on either side yield a distance of 0 so that sparse
// class subsets never abort a selection run.
package distance

import (
	"errors"
	"fmt"
)

// Metric identifies one of the supported class-separability distances.
type Metric int

const (
	// Wasserstein is the 1-D earth-mover distance between two samples.
	Wasserstein Metric = iota
	// Bhattacharyya is -ln of the Bhattacharyya coefficient over a
	// shared histogram support.
	Bhattacharyya
	// Hellinger is the Hellinger distance over the same shared support.
	Hellinger
	// JeffriesMatusita is the bounded JM transform of Bhattacharyya.
	JeffriesMatusita
)

// ErrUnknownMetric is returned by ParseMetric for unsupported names.
var ErrUnknownMetric = errors.New("distance: unknown metric")

// ParseMetric resolves a metric name from configuration.
func ParseMetric(name string) (Metric, error) {
	switch name {
	case "wasserstein":
		return Wasserstein, nil
	case "bhattacharyya":
		return Bhattacharyya, nil
	case "hellinger":
		return Hellinger, nil
	case "jm", "jeffries-matusita":
		return JeffriesMatusita, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// Names lists the canonical metric names accepted by ParseMetric.
func Names() []string {
	return []string{"wasserstein", "bhattacharyya", "hellinger", "jm"}
}

func (m Metric) String() string {
	switch m {
	case Wasserstein:
		return "wasserstein"
	case Bhattacharyya:
		return "bhattacharyya"
	case Hellinger:
		return "hellinger"
	case JeffriesMatusita:
		return "jm"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Distance computes the metric between two samples of one feature, one
// per class. Either sample having fewer than two values returns 0.
func (m Metric) Distance(a, b []float64) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	switch m {
	case Wasserstein:
		return wasserstein(a, b)
	case Bhattacharyya:
		return bhattacharyya(a, b)
	case Hellinger:
		return hellinger(a, b)
	case JeffriesMatusita:
		return jeffriesMatusita(a, b)
	}
	return 0
}
