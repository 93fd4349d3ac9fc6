package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    data_path TEXT NOT NULL,
    rows_kept INTEGER NOT NULL,
    rows_dropped INTEGER NOT NULL,
    winner TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_metrics (
    run_id INTEGER NOT NULL,
    model TEXT NOT NULL,
    test_mse REAL NOT NULL,
    tuned_value REAL,
    tuned_label TEXT,
    PRIMARY KEY (run_id, model),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_metrics_run ON run_metrics(run_id);
`
