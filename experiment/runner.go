package experiment

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"

	"github.com/featmap/featmap/distance"
	"github.com/featmap/featmap/embed"
	"github.com/featmap/featmap/internal/parallel"
	"github.com/featmap/featmap/selector"
	"github.com/featmap/featmap/table"
)

// Runner executes one experiment sweep over a dataset: every
// (percentage × dimension × metric × bandwidth) combination, each
// cross-validated and scored per strategy plus the random and fisher
// baselines. Combinations are independent and run in parallel.
type Runner struct {
	Config Config
	Log    zerolog.Logger
	Store  *Store // optional; nil disables persistence
}

type combination struct {
	percentage float64
	k          int
	dim        int
	metric     distance.Metric
	epsFactor  float64
}

func (c combination) String() string {
	return fmt.Sprintf("pct=%v k=%d dim=%d metric=%s eps=%v",
		c.percentage, c.k, c.dim, c.metric, c.epsFactor)
}

// SweepResult aggregates fold accuracies per strategy across the whole
// sweep, with a Welch t-test of each strategy against the random
// baseline.
type SweepResult struct {
	Accuracies   map[string][]float64
	Significance map[string]TTest
	Skipped      int
	Failed       int
}

// Run executes the sweep. Only configuration problems abort it; a
// numerical failure in one combination logs a warning and the sweep
// moves on.
func (r *Runner) Run(ds *Dataset) (*SweepResult, error) {
	cfg := r.Config
	eps, err := embed.ParseEpsStrategy(cfg.EpsType)
	if err != nil {
		return nil, err
	}
	strategies := make([]selector.Strategy, len(cfg.Strategies))
	for i, name := range cfg.Strategies {
		if strategies[i], err = selector.ParseStrategy(name); err != nil {
			return nil, err
		}
	}
	metrics := make([]distance.Metric, len(cfg.Metrics))
	for i, name := range cfg.Metrics {
		if metrics[i], err = distance.ParseMetric(name); err != nil {
			return nil, err
		}
	}

	folds, err := KFolds(len(ds.Labels), cfg.KFolds, cfg.Seed)
	if err != nil {
		return nil, err
	}

	n := len(ds.Features)
	result := &SweepResult{
		Accuracies:   make(map[string][]float64),
		Significance: make(map[string]TTest),
	}

	var combos []combination
	for _, pct := range cfg.Percentages {
		k := int(math.Round(pct * float64(n)))
		if k < 1 || k >= n {
			r.Log.Warn().Float64("percentage", pct).Int("k", k).Int("features", n).
				Msg("skipping degenerate feature count")
			result.Skipped++
			continue
		}
		for _, dim := range cfg.Dims {
			if dim >= n {
				r.Log.Warn().Int("dim", dim).Int("features", n).
					Msg("skipping embedding dimension at or above feature count")
				result.Skipped++
				continue
			}
			for _, metric := range metrics {
				for _, factor := range cfg.EpsFactors {
					combos = append(combos, combination{
						percentage: pct, k: k, dim: dim,
						metric: metric, epsFactor: factor,
					})
				}
			}
		}
	}

	r.Log.Info().Int("combinations", len(combos)).Int("folds", len(folds)).
		Int("features", n).Int("rows", len(ds.Labels)).Msg("starting sweep")

	workers := cfg.Workers
	if workers <= 0 {
		workers = parallel.NumWorkers()
	}

	var mu sync.Mutex
	record := func(strategy string, acc float64) {
		mu.Lock()
		result.Accuracies[strategy] = append(result.Accuracies[strategy], acc)
		mu.Unlock()
	}
	fail := func() {
		mu.Lock()
		result.Failed++
		mu.Unlock()
	}

	parallel.ForEach(len(combos), workers, func(i int) {
		r.runCombination(ds, folds, combos[i], eps, strategies, record, fail)
	})

	random := result.Accuracies["random"]
	for name, accs := range result.Accuracies {
		if name == "random" {
			continue
		}
		tt := WelchTTest(accs, random)
		result.Significance[name] = tt
		r.Log.Info().Str("strategy", name).
			Float64("mean_accuracy", stat.Mean(accs, nil)).
			Float64("t", tt.T).Float64("p", tt.P).
			Msg("sweep summary vs random baseline")
	}
	return result, nil
}

func (r *Runner) runCombination(ds *Dataset, folds []Fold, c combination,
	eps embed.EpsStrategy, strategies []selector.Strategy,
	record func(string, float64), fail func()) {

	cfg := r.Config
	log := r.Log.With().Str("combination", c.String()).Logger()

	for fi, fold := range folds {
		trainF := Subset(ds.Features, fold.Train)
		trainL := SubsetLabels(ds.Labels, fold.Train)
		valF := Subset(ds.Features, fold.Val)
		valL := SubsetLabels(ds.Labels, fold.Val)

		tbl, err := table.Build(trainF, trainL, c.metric)
		if err != nil {
			log.Warn().Err(err).Int("fold", fi).Msg("distance table failed; skipping fold")
			fail()
			continue
		}
		emb, err := embed.Map(tbl.Flat, embed.Config{
			Alpha: cfg.Alpha, Eps: eps, EpsFactor: c.epsFactor, Dim: c.dim,
		})
		if err != nil {
			log.Warn().Err(err).Int("fold", fi).Msg("embedding failed; skipping fold")
			fail()
			continue
		}

		for _, strategy := range strategies {
			start := time.Now()
			selected, err := selector.Select(emb, c.k, strategy, cfg.Seed)
			if err != nil {
				log.Warn().Err(err).Stringer("strategy", strategy).Msg("selection failed")
				fail()
				continue
			}
			if len(selected) < c.k {
				log.Info().Stringer("strategy", strategy).
					Int("requested", c.k).Int("selected", len(selected)).
					Msg("partial selection")
			}
			scores := EvaluateKNN(trainF, trainL, valF, valL, selected, cfg.Neighbors)
			r.persist(c, fi, strategy.String(), len(selected), scores, time.Since(start), ds.Name, log)
			record(strategy.String(), scores.Accuracy)
		}

		// Baselines, scored on the same fold for comparability.
		start := time.Now()
		randomIdx := RandomSelect(len(trainF), c.k, cfg.Seed)
		scores := EvaluateKNN(trainF, trainL, valF, valL, randomIdx, cfg.Neighbors)
		r.persist(c, fi, "random", len(randomIdx), scores, time.Since(start), ds.Name, log)
		record("random", scores.Accuracy)

		start = time.Now()
		fisherIdx := FisherSelect(trainF, trainL, c.k)
		scores = EvaluateKNN(trainF, trainL, valF, valL, fisherIdx, cfg.Neighbors)
		r.persist(c, fi, "fisher", len(fisherIdx), scores, time.Since(start), ds.Name, log)
		record("fisher", scores.Accuracy)
	}
}

func (r *Runner) persist(c combination, fold int, strategy string, selected int,
	scores Scores, elapsed time.Duration, dataset string, log zerolog.Logger) {

	if r.Store == nil {
		return
	}
	err := r.Store.Insert(Record{
		Dataset:    dataset,
		Metric:     c.metric.String(),
		Strategy:   strategy,
		Percentage: c.percentage,
		Dim:        c.dim,
		EpsFactor:  c.epsFactor,
		Fold:       fold,
		Requested:  c.k,
		Selected:   selected,
		Accuracy:   scores.Accuracy,
		MacroF1:    scores.MacroF1,
		ElapsedMS:  elapsed.Milliseconds(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to persist result")
	}
}
