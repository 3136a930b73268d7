package distance

import (
	"math"
	"testing"
)

var allMetrics = []Metric{Wasserstein, Bhattacharyya, Hellinger, JeffriesMatusita}

func TestSymmetry(t *testing.T) {
	a := []float64{0.1, 0.4, 0.35, 0.8, 1.2, 0.05}
	b := []float64{2.1, 1.9, 2.4, 2.2, 1.7}

	for _, m := range allMetrics {
		ab := m.Distance(a, b)
		ba := m.Distance(b, a)
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("%s: distance(a,b)=%v != distance(b,a)=%v", m, ab, ba)
		}
		if ab < 0 {
			t.Errorf("%s: negative distance %v", m, ab)
		}
	}
}

func TestSelfDistanceZero(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}

	for _, m := range allMetrics {
		d := m.Distance(a, a)
		if math.Abs(d) > 1e-9 {
			t.Errorf("%s: distance(a,a)=%v, want 0", m, d)
		}
	}
}

func TestSparseInputs(t *testing.T) {
	cases := [][2][]float64{
		{nil, nil},
		{{1.0}, {2.0}},
		{nil, {1, 2, 3}},
		{{5.0}, {1, 2, 3}},
	}

	for _, m := range allMetrics {
		for _, c := range cases {
			d := m.Distance(c[0], c[1])
			if d != 0 {
				t.Errorf("%s: sparse inputs %v/%v gave %v, want 0", m, c[0], c[1], d)
			}
		}
	}
}

func TestConstantFeature(t *testing.T) {
	// A feature with one repeated value in both classes must produce a
	// finite distance without panicking.
	a := []float64{3, 3, 3, 3}
	b := []float64{3, 3, 3}

	for _, m := range allMetrics {
		d := m.Distance(a, b)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Errorf("%s: constant feature gave non-finite %v", m, d)
		}
	}
}

func TestDisjointSupportsFinite(t *testing.T) {
	a := []float64{0, 0.1, 0.2, 0.1}
	b := []float64{100, 100.2, 100.1, 99.9}

	for _, m := range allMetrics {
		d := m.Distance(a, b)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Errorf("%s: disjoint supports gave non-finite %v", m, d)
		}
		if d <= 0 {
			t.Errorf("%s: disjoint supports gave %v, want > 0", m, d)
		}
	}
}

func TestWassersteinShift(t *testing.T) {
	// Shifting a sample by c moves the 1-D earth mover distance by c.
	a := []float64{1, 2, 3, 4}
	b := []float64{3, 4, 5, 6}

	d := Wasserstein.Distance(a, b)
	if math.Abs(d-2.0) > 1e-9 {
		t.Errorf("expected shift distance 2.0, got %v", d)
	}
}

func TestJMTransform(t *testing.T) {
	a := []float64{0.1, 0.2, 0.5, 0.9, 0.3}
	b := []float64{1.5, 1.2, 1.8, 1.1, 1.9}

	bd := Bhattacharyya.Distance(a, b)
	jm := JeffriesMatusita.Distance(a, b)
	want := math.Sqrt(2 * (1 - math.Exp(-bd)))

	if math.Abs(jm-want) > 1e-12 {
		t.Errorf("jm=%v, want sqrt(2*(1-exp(-%v)))=%v", jm, bd, want)
	}
	if jm > math.Sqrt2+1e-12 {
		t.Errorf("jm=%v exceeds sqrt(2) bound", jm)
	}
}

func TestParseMetric(t *testing.T) {
	for _, name := range Names() {
		m, err := ParseMetric(name)
		if err != nil {
			t.Errorf("ParseMetric(%q) failed: %v", name, err)
			continue
		}
		if m.String() != name {
			t.Errorf("ParseMetric(%q).String() = %q", name, m.String())
		}
	}

	if _, err := ParseMetric("euclidean"); err == nil {
		t.Error("expected error for unsupported metric name")
	}
}
