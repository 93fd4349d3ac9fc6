package store

import (
	"time"

	"github.com/roshansmehta/MLB-salary-predictor/pkg/errors"
)

// Run is one completed analysis.
type Run struct {
	ID          int64
	CreatedAt   time.Time
	DataPath    string
	RowsKept    int
	RowsDropped int
	Winner      string
	Metrics     []Metric
}

// Metric is one model's held-out result within a run. TunedValue and
// TunedLabel describe the selected tuning knob, such as a penalty
// weight or a component count.
type Metric struct {
	Model      string
	TestMSE    float64
	TunedValue float64
	TunedLabel string
}

// InsertRun records a completed run and its per-model metrics.
func (s *Store) InsertRun(run *Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (created_at, data_path, rows_kept, rows_dropped, winner)
		VALUES (?, ?, ?, ?, ?)`,
		run.CreatedAt.Format(time.RFC3339),
		run.DataPath,
		run.RowsKept,
		run.RowsDropped,
		run.Winner,
	)
	if err != nil {
		return 0, errors.Wrap(err, "inserting run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading run id")
	}

	for _, m := range run.Metrics {
		_, err := tx.Exec(`
			INSERT INTO run_metrics (run_id, model, test_mse, tuned_value, tuned_label)
			VALUES (?, ?, ?, ?, ?)`,
			id, m.Model, m.TestMSE, m.TunedValue, m.TunedLabel,
		)
		if err != nil {
			return 0, errors.Wrapf(err, "inserting metric for %s", m.Model)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing run")
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, with their
// metrics attached.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, data_path, rows_kept, rows_dropped, winner
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "listing runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.DataPath, &r.RowsKept, &r.RowsDropped, &r.Winner); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, errors.Wrap(err, "parsing run timestamp")
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating runs")
	}

	for i := range runs {
		metrics, err := s.runMetrics(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Metrics = metrics
	}
	return runs, nil
}

func (s *Store) runMetrics(runID int64) ([]Metric, error) {
	rows, err := s.db.Query(`
		SELECT model, test_mse, tuned_value, tuned_label
		FROM run_metrics WHERE run_id = ? ORDER BY model`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "listing run metrics")
	}
	defer rows.Close()

	var metrics []Metric
	for rows.Next() {
		var m Metric
		if err := rows.Scan(&m.Model, &m.TestMSE, &m.TunedValue, &m.TunedLabel); err != nil {
			return nil, errors.Wrap(err, "scanning metric")
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
