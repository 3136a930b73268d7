// Package featmap selects small, informative feature subsets from
// labeled tabular data. Features are embedded into a low-dimensional
// space via a diffusion map over pairwise class-conditional statistical
// distances, and representatives are picked from that embedding.
//
// Basic usage:
//
//	p := featmap.New(featmap.DefaultConfig())
//	res, err := p.SelectFeatures(features, labels, 10)
package featmap

import (
	"fmt"

	"github.com/featmap/featmap/distance"
	"github.com/featmap/featmap/embed"
	"github.com/featmap/featmap/selector"
	"github.com/featmap/featmap/table"
)

// Config configures one selection pipeline.
type Config struct {
	// Metric is the class-separability distance between per-feature
	// class-conditional distributions.
	// Default: wasserstein
	Metric distance.Metric

	// Strategy picks representatives from the embedding coordinates.
	// Default: kmedoids
	Strategy selector.Strategy

	// Dim is the embedding dimension.
	// Default: 2
	Dim int

	// Alpha is the anisotropic kernel normalization exponent in [0,1].
	// Default: 1
	Alpha float64

	// Eps selects the kernel bandwidth strategy.
	// Default: maxmin
	Eps embed.EpsStrategy

	// EpsFactor scales the maxmin bandwidth (or is the fixed
	// bandwidth under EpsFixed).
	// Default: 100
	EpsFactor float64

	// Seed drives the clustering strategies. A fixed seed makes every
	// selection reproducible.
	// Default: 0
	Seed int64
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Metric:    distance.Wasserstein,
		Strategy:  selector.KMedoids,
		Dim:       2,
		Alpha:     1,
		Eps:       embed.EpsMaxMin,
		EpsFactor: 100,
		Seed:      0,
	}
}

// Result carries the selected features along with the intermediate
// artifacts, for callers that score subsets or inspect coordinates.
// Nothing in it is persisted; every run recomputes from scratch.
type Result struct {
	// Indices are positions into the input feature slice. The
	// clustering strategies may return fewer than the requested k when
	// the embedding holds fewer distinct clusters.
	Indices []int

	// Names are the corresponding feature names.
	Names []string

	// Embedding is the diffusion-map embedding the selection ran on.
	Embedding *embed.Embedding

	// Table is the class-pair distance table behind the embedding.
	Table *table.Table
}

// Pipeline wires distance table construction, diffusion-map embedding
// and feature selection. It is stateless: every call is a pure
// function of its inputs and the configured seed, so a single Pipeline
// is safe to share across concurrently running experiment combinations.
type Pipeline struct {
	Config Config
}

// New creates a pipeline with the given configuration.
func New(config Config) *Pipeline {
	return &Pipeline{Config: config}
}

// SelectFeatures selects k features from the labeled columns. k must
// satisfy 1 <= k < len(features); degenerate counts are rejected here
// so that callers skip the combination instead of computing a useless
// embedding.
func (p *Pipeline) SelectFeatures(features []table.Feature, labels []string, k int) (*Result, error) {
	n := len(features)
	if k < 1 || k >= n {
		return nil, fmt.Errorf("%w: k=%d with %d features", selector.ErrInvalidCount, k, n)
	}

	tbl, err := table.Build(features, labels, p.Config.Metric)
	if err != nil {
		return nil, fmt.Errorf("building distance table: %w", err)
	}

	emb, err := embed.Map(tbl.Flat, embed.Config{
		Alpha:     p.Config.Alpha,
		Eps:       p.Config.Eps,
		EpsFactor: p.Config.EpsFactor,
		Dim:       p.Config.Dim,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding distance table: %w", err)
	}

	indices, err := selector.Select(emb, k, p.Config.Strategy, p.Config.Seed)
	if err != nil {
		return nil, fmt.Errorf("selecting features: %w", err)
	}

	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = features[idx].Name
	}
	return &Result{Indices: indices, Names: names, Embedding: emb, Table: tbl}, nil
}
