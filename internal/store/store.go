// Package store persists analysis results to the SQLite lab notebook.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cwbudde/algo-relax/relax/analysis"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrInvalidResult reports an attempt to save a result that was not
// analysed successfully.
var ErrInvalidResult = errors.New("store: result is not valid")

// Metadata defaults applied when a field is empty.
const (
	DefaultMaterial    = "Unknown"
	DefaultComposition = "None"
	DefaultVerdict     = "Pending"
)

// Metadata describes the sample behind a saved result.
type Metadata struct {
	MaterialClass string
	MaterialType  string
	Composition   string
	Chemistry     string
	Verdict       string
}

func (m Metadata) withDefaults() Metadata {
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&m.MaterialClass, DefaultMaterial)
	fill(&m.MaterialType, DefaultMaterial)
	fill(&m.Composition, DefaultComposition)
	fill(&m.Chemistry, DefaultMaterial)
	fill(&m.Verdict, DefaultVerdict)
	return m
}

// Experiment is one saved row.
type Experiment struct {
	ID          int64
	Timestamp   time.Time
	Filename    string
	Temperature float64
	BestModel   string
	R2          float64
	Tau         float64
	Quality     float64
	Assessment  string
	BadData     bool
	Metadata
}

// Store wraps SQLite access for experiment records.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// columns added after the first schema, with their definitions.
var lateColumns = []struct{ name, def string }{
	{"bad_data", "INTEGER NOT NULL DEFAULT 0"},
	{"material_class", "TEXT NOT NULL DEFAULT 'Unknown'"},
	{"material_type", "TEXT NOT NULL DEFAULT 'Unknown'"},
	{"composition", "TEXT NOT NULL DEFAULT 'None'"},
	{"chemistry", "TEXT NOT NULL DEFAULT 'Unknown'"},
	{"verdict", "TEXT NOT NULL DEFAULT 'Pending'"},
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS experiments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp TEXT NOT NULL,
			filename TEXT NOT NULL,
			temperature REAL NOT NULL,
			best_model TEXT NOT NULL,
			r2 REAL NOT NULL,
			tau REAL NOT NULL,
			quality REAL NOT NULL,
			explanation TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_experiments_temperature ON experiments(temperature);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}

	existing, err := s.columns()
	if err != nil {
		return err
	}
	for _, col := range lateColumns {
		if existing[col.name] {
			continue
		}
		if _, err := s.db.Exec(fmt.Sprintf("ALTER TABLE experiments ADD COLUMN %s %s", col.name, col.def)); err != nil {
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	return nil
}

func (s *Store) columns() (cols map[string]bool, err error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info('experiments')`)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()
	cols = map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Save stores one analysed result and returns its id. Invalid results are
// rejected with ErrInvalidResult.
func (s *Store) Save(ctx context.Context, filename string, res analysis.Result, meta Metadata) (int64, error) {
	return s.insert(ctx, s.db, filename, res, meta)
}

// SaveAll stores every valid result in one transaction and returns the new
// ids. Invalid results are skipped.
func (s *Store) SaveAll(ctx context.Context, filename string, results []analysis.Result, meta Metadata) (ids []int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	for _, res := range results {
		if !res.Valid {
			continue
		}
		id, ierr := s.insert(ctx, tx, filename, res, meta)
		if ierr != nil {
			return nil, ierr
		}
		ids = append(ids, id)
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) insert(ctx context.Context, ex execer, filename string, res analysis.Result, meta Metadata) (int64, error) {
	if !res.Valid {
		return 0, fmt.Errorf("%w: %s", ErrInvalidResult, res.Reason)
	}
	var r2, tau float64
	if fit, ok := res.BestFit(); ok && fit.OK {
		r2 = fit.R2
	}
	if v, ok := res.CharacteristicTime(); ok {
		tau = v
	}
	meta = meta.withDefaults()

	out, err := ex.ExecContext(ctx,
		`INSERT INTO experiments (timestamp, filename, temperature, best_model, r2, tau, quality, explanation,
			bad_data, material_class, material_type, composition, chemistry, verdict)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano),
		filename,
		res.Temperature,
		res.Best,
		r2,
		tau,
		res.Quality,
		res.Assessment,
		meta.MaterialClass,
		meta.MaterialType,
		meta.Composition,
		meta.Chemistry,
		meta.Verdict,
	)
	if err != nil {
		return 0, err
	}
	return out.LastInsertId()
}

// History returns all experiments, newest first.
func (s *Store) History(ctx context.Context) (out []Experiment, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, filename, temperature, best_model, r2, tau, quality, explanation,
			bad_data, material_class, material_type, composition, chemistry, verdict
		 FROM experiments ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	for rows.Next() {
		var (
			e  Experiment
			ts string
		)
		if err := rows.Scan(&e.ID, &ts, &e.Filename, &e.Temperature, &e.BestModel, &e.R2, &e.Tau, &e.Quality,
			&e.Assessment, &e.BadData, &e.MaterialClass, &e.MaterialType, &e.Composition, &e.Chemistry,
			&e.Verdict); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("experiment %d: bad timestamp %q: %w", e.ID, ts, err)
		}
		e.Timestamp = parsed
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateVerdict sets the verdict on the given experiments and returns the
// number of rows changed.
func (s *Store) UpdateVerdict(ctx context.Context, ids []int64, verdict string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := inClause(`UPDATE experiments SET verdict = ? WHERE id IN (%s)`, ids)
	res, err := s.db.ExecContext(ctx, query, append([]any{verdict}, args...)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes the given experiments and returns the number deleted.
func (s *Store) Delete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args := inClause(`DELETE FROM experiments WHERE id IN (%s)`, ids)
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func inClause(format string, ids []int64) (string, []any) {
	marks := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		marks[i] = "?"
		args[i] = id
	}
	return fmt.Sprintf(format, strings.Join(marks, ", ")), args
}
