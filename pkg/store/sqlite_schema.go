package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the database schema.
// Timestamps are stored as Unix nanoseconds.
const Schema = `
-- Ingest runs
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    revision TEXT,
    status TEXT NOT NULL,
    started_at INTEGER NOT NULL,
    finished_at INTEGER,

    dumps INTEGER NOT NULL DEFAULT 0,
    objects INTEGER NOT NULL DEFAULT 0,
    aut_nums INTEGER NOT NULL DEFAULT 0,
    imports INTEGER NOT NULL DEFAULT 0,
    failed INTEGER NOT NULL DEFAULT 0,

    error TEXT
);

-- One row per import attribute
CREATE TABLE IF NOT EXISTS records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    aut_num TEXT NOT NULL,
    dump TEXT NOT NULL,
    attribute TEXT NOT NULL,
    line INTEGER NOT NULL,
    value TEXT NOT NULL,

    tree TEXT,

    error_kind TEXT,
    error TEXT,
    error_offset INTEGER
);

-- Schema version table
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
CREATE INDEX IF NOT EXISTS idx_records_run_aut_num ON records(run_id, aut_num COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_records_run_error_kind ON records(run_id, error_kind);
`

// InsertSchemaVersion inserts the schema version into the schema_version table.
const InsertSchemaVersion = `
INSERT INTO schema_version (version, applied_at)
VALUES (?, datetime('now'))
ON CONFLICT(version) DO NOTHING;
`

// GetSchemaVersion retrieves the current schema version from the database.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1;
`

const runColumns = `id, source, revision, status, started_at, finished_at,
    dumps, objects, aut_nums, imports, failed, error`

const recordColumns = `run_id, aut_num, dump, attribute, line, value,
    tree, error_kind, error, error_offset`
