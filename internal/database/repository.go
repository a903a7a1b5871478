package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ZanzyTHEbar/function-o-meter/internal/encoding"
	"github.com/ZanzyTHEbar/function-o-meter/internal/typology"
)

var (
	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("run not found")
	// ErrRunCompleted is returned when a completed run would be changed.
	ErrRunCompleted = errors.New("run already completed")
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

const (
	stmtInsertRun   = "insert_run"
	stmtGetRun      = "get_run"
	stmtCompleteRun = "complete_run"
	stmtListRuns    = "list_runs"
	stmtDeleteRun   = "delete_run"
	stmtCountRuns   = "count_runs"
)

var typeColumns = map[typology.Scheme]string{
	typology.SchemeStack: "stack_type",
	typology.SchemeAxis:  "axis_type",
	typology.SchemeMyers: "myers_type",
}

func typeCountStatement(scheme typology.Scheme) string {
	return "type_counts_" + string(scheme)
}

// Repository handles database operations
type Repository struct {
	db *DB
}

// NewRepository creates a new repository
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run                        Run
		scenarioIDs, responses, sc string
		stack, axis, myers, status string
		completedAt                sql.NullTime
	)
	err := row.Scan(
		&run.ID, &run.Mode, &run.Seed, &run.Source, &run.SelectionSource,
		&scenarioIDs, &responses, &sc,
		&stack, &axis, &myers, &run.Resolved, &run.Ignored, &status,
		&run.CreatedAt, &run.UpdatedAt, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := encoding.ScanColumn(scenarioIDs, &run.ScenarioIDs); err != nil {
		return nil, fmt.Errorf("run %s scenario_ids: %w", run.ID, err)
	}
	if err := encoding.ScanColumn(responses, &run.Responses); err != nil {
		return nil, fmt.Errorf("run %s responses: %w", run.ID, err)
	}
	if err := encoding.ScanColumn(sc, &run.Scores); err != nil {
		return nil, fmt.Errorf("run %s scores: %w", run.ID, err)
	}
	run.Types = typology.Types{StackType: stack, AxisType: axis, MyersType: myers}
	run.Status = RunStatus(status)
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return &run, nil
}

// Create inserts a new run.
func (r *Repository) Create(ctx context.Context, run *Run) error {
	stmt, err := r.db.GetPreparedStatement(stmtInsertRun)
	if err != nil {
		return err
	}

	scenarioIDs, err := encoding.Column(run.ScenarioIDs)
	if err != nil {
		return err
	}
	responses, err := encoding.Column(run.Responses)
	if err != nil {
		return err
	}
	scores, err := encoding.Column(run.Scores)
	if err != nil {
		return err
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.UTC()
	}

	_, err = stmt.ExecContext(ctx,
		run.ID, run.Mode, run.Seed, run.Source, run.SelectionSource,
		scenarioIDs, responses, scores,
		run.Types.StackType, run.Types.AxisType, run.Types.MyersType,
		run.Resolved, run.Ignored, string(run.Status),
		run.CreatedAt.UTC(), run.UpdatedAt.UTC(), completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// Get loads one run.
func (r *Repository) Get(ctx context.Context, id string) (*Run, error) {
	stmt, err := r.db.GetPreparedStatement(stmtGetRun)
	if err != nil {
		return nil, err
	}

	run, err := scanRun(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// Complete stores responses, scores and types and marks the run completed.
// Only pending runs can be completed.
func (r *Repository) Complete(ctx context.Context, run *Run) error {
	stmt, err := r.db.GetPreparedStatement(stmtCompleteRun)
	if err != nil {
		return err
	}

	responses, err := encoding.Column(run.Responses)
	if err != nil {
		return err
	}
	scores, err := encoding.Column(run.Scores)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	res, err := stmt.ExecContext(ctx,
		responses, scores, run.Types.StackType, run.Types.AxisType, run.Types.MyersType,
		run.Resolved, run.Ignored, string(RunCompleted), now, now,
		run.ID, string(RunPending),
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	if n == 0 {
		existing, err := r.Get(ctx, run.ID)
		if err != nil {
			return err
		}
		if existing.IsCompleted() {
			return fmt.Errorf("%w: %s", ErrRunCompleted, run.ID)
		}
		return fmt.Errorf("failed to complete run %s", run.ID)
	}

	run.Status = RunCompleted
	run.UpdatedAt = now
	run.CompletedAt = &now
	return nil
}

// List returns the most recent runs first.
func (r *Repository) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	stmt, err := r.db.GetPreparedStatement(stmtListRuns)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Delete removes a run.
func (r *Repository) Delete(ctx context.Context, id string) error {
	stmt, err := r.db.GetPreparedStatement(stmtDeleteRun)
	if err != nil {
		return err
	}

	res, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// Count returns the number of stored and completed runs.
func (r *Repository) Count(ctx context.Context) (total, completed int, err error) {
	stmt, err := r.db.GetPreparedStatement(stmtCountRuns)
	if err != nil {
		return 0, 0, err
	}
	if err := stmt.QueryRowContext(ctx, string(RunCompleted)).Scan(&total, &completed); err != nil {
		return 0, 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return total, completed, nil
}

// StoreStats summarises the run store for the health endpoint.
type StoreStats struct {
	Runs      int       `json:"runs"`
	Completed int       `json:"completed"`
	Pool      PoolStats `json:"pool"`
}

// Stats returns run counts and connection pool figures.
func (r *Repository) Stats(ctx context.Context) (StoreStats, error) {
	total, completed, err := r.Count(ctx)
	if err != nil {
		return StoreStats{}, err
	}
	return StoreStats{Runs: total, Completed: completed, Pool: r.db.PoolStats()}, nil
}

// TypeCounts aggregates completed runs by the type code derived under
// scheme, most frequent first.
func (r *Repository) TypeCounts(ctx context.Context, scheme typology.Scheme) ([]TypeCount, error) {
	if _, ok := typeColumns[scheme]; !ok {
		return nil, fmt.Errorf("unknown scheme %q", scheme)
	}

	stmt, err := r.db.GetPreparedStatement(typeCountStatement(scheme))
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, string(RunCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to count types: %w", err)
	}
	defer rows.Close()

	counts := make([]TypeCount, 0)
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Code, &tc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan type count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}
