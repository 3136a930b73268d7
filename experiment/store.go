package experiment

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// Record is one scored (combination, fold, strategy) cell of a sweep.
type Record struct {
	Dataset    string
	Metric     string
	Strategy   string
	Percentage float64
	Dim        int
	EpsFactor  float64
	Fold       int
	Requested  int
	Selected   int
	Accuracy   float64
	MacroF1    float64
	ElapsedMS  int64
}

// Store persists sweep records to SQLite. Combination workers insert
// concurrently; a mutex serializes the single writer connection.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS results (
	dataset     TEXT NOT NULL,
	metric      TEXT NOT NULL,
	strategy    TEXT NOT NULL,
	percentage  REAL NOT NULL,
	dim         INTEGER NOT NULL,
	eps_factor  REAL NOT NULL,
	fold        INTEGER NOT NULL,
	requested   INTEGER NOT NULL,
	selected    INTEGER NOT NULL,
	accuracy    REAL NOT NULL,
	macro_f1    REAL NOT NULL,
	elapsed_ms  INTEGER NOT NULL,
	created_at  TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS results_by_strategy
	ON results (dataset, strategy, metric);
`

// OpenStore opens (and initializes) a results database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing results schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Insert appends one record.
func (s *Store) Insert(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO results (dataset, metric, strategy, percentage, dim,
			eps_factor, fold, requested, selected, accuracy, macro_f1, elapsed_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Dataset, r.Metric, r.Strategy, r.Percentage, r.Dim,
		r.EpsFactor, r.Fold, r.Requested, r.Selected, r.Accuracy, r.MacroF1, r.ElapsedMS)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// StrategyAccuracies returns every stored accuracy per strategy for a
// dataset, the input to the end-of-sweep significance comparison.
func (s *Store) StrategyAccuracies(dataset string) (map[string][]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT strategy, accuracy FROM results WHERE dataset = ?`, dataset)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]float64)
	for rows.Next() {
		var strategy string
		var acc float64
		if err := rows.Scan(&strategy, &acc); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out[strategy] = append(out[strategy], acc)
	}
	return out, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
