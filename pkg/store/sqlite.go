package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig contains configuration for the SQLite store.
type SQLiteConfig struct {
	// Path is the database file path. ":memory:" keeps the database in
	// memory for the lifetime of the store.
	Path string

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:        "data/rpsl-policy.db",
		WALMode:     true,
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store on a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens (creating if needed) the database and its schema.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}
	if config.Path == "" {
		return nil, NewStorageError("sqlite", "open", fmt.Errorf("db path cannot be empty"))
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = 5 * time.Second
	}

	logger := slog.Default().With("component", "store.sqlite")

	if config.Path != ":memory:" {
		if dir := filepath.Dir(config.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, NewStorageError("sqlite", "open", err)
			}
		}
	}

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	// One connection: SQLite has a single writer, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite store initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

// initialize sets pragmas, creates the schema and checks its version.
func (s *SQLiteStore) initialize() error {
	if s.config.WALMode && s.config.Path != ":memory:" {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return NewStorageError("sqlite", "enable_wal", err)
		}
		s.logger.Debug("WAL mode enabled")
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return NewStorageError("sqlite", "set_busy_timeout", err)
	}

	if _, err := s.db.Exec(Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.Exec(InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRow(GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}
	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("schema version verified", "version", version)
	return nil
}

// CreateRun implements Store.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *Run) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs ("+runColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Source, nullString(run.Revision), string(run.Status),
		run.StartedAt.UnixNano(), nullTime(run.FinishedAt),
		run.Dumps, run.Objects, run.AutNums, run.Imports, run.Failed,
		nullString(run.Error),
	)
	if err != nil {
		return NewStorageError("sqlite", "create_run", err)
	}
	return nil
}

// FinishRun implements Store.
func (s *SQLiteStore) FinishRun(ctx context.Context, run *Run) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			revision = ?, status = ?, finished_at = ?,
			dumps = ?, objects = ?, aut_nums = ?, imports = ?, failed = ?,
			error = ?
		WHERE id = ?`,
		nullString(run.Revision), string(run.Status), nullTime(run.FinishedAt),
		run.Dumps, run.Objects, run.AutNums, run.Imports, run.Failed,
		nullString(run.Error),
		run.ID,
	)
	if err != nil {
		return NewStorageError("sqlite", "finish_run", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return NewStorageError("sqlite", "finish_run", err)
	}
	if n == 0 {
		return NewStorageError("sqlite", "finish_run", fmt.Errorf("run %s: %w", run.ID, ErrNotFound))
	}
	return nil
}

// GetRun implements Store.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, NewStorageError("sqlite", "get_run", err)
	}
	return run, nil
}

// ListRuns implements Store.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, id ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, NewStorageError("sqlite", "list_runs", err)
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "list_runs", err)
	}
	return runs, nil
}

// AddRecords implements Store. All records are written in one
// transaction.
func (s *SQLiteStore) AddRecords(ctx context.Context, records []*Record) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return NewStorageError("sqlite", "add_records", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO records ("+recordColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return NewStorageError("sqlite", "add_records", err)
	}
	defer stmt.Close()

	for _, r := range records {
		var offset any
		if !r.OK() {
			offset = r.ErrorOffset
		}
		_, err := stmt.ExecContext(ctx,
			r.RunID, r.AutNum, r.Dump, r.Attribute, r.Line, r.Value,
			nullString(r.Tree), nullString(r.ErrorKind), nullString(r.Error), offset,
		)
		if err != nil {
			return NewStorageError("sqlite", "add_records", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return NewStorageError("sqlite", "add_records", err)
	}
	return nil
}

// QueryRecords implements Store.
func (s *SQLiteStore) QueryRecords(ctx context.Context, q *Query) ([]*Record, error) {
	whereClause, args := buildWhereClause(q)

	query := "SELECT " + recordColumns + " FROM records"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY id ASC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	} else if q.Offset > 0 {
		query += " LIMIT -1"
	}
	if q.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", q.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	defer rows.Close()

	records := []*Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, NewStorageError("sqlite", "scan", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query", err)
	}
	return records, nil
}

// CountRecords implements Store.
func (s *SQLiteStore) CountRecords(ctx context.Context, q *Query) (int64, error) {
	whereClause, args := buildWhereClause(q)

	query := "SELECT COUNT(*) FROM records"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, NewStorageError("sqlite", "count", err)
	}
	return count, nil
}

// DeleteRuns implements Store.
func (s *SQLiteStore) DeleteRuns(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_runs", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE run_id IN ("+placeholders+")", args...); err != nil {
		return 0, NewStorageError("sqlite", "delete_runs", err)
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_runs", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete_runs", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, NewStorageError("sqlite", "delete_runs", err)
	}
	return deleted, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite store closed")
	return nil
}

// buildWhereClause builds a SQL WHERE clause from query filters.
// Returns the WHERE clause (without "WHERE" keyword) and the query arguments.
func buildWhereClause(q *Query) (string, []any) {
	var conditions []string
	var args []any

	if q.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, q.RunID)
	}
	if q.AutNum != "" {
		conditions = append(conditions, "aut_num = ? COLLATE NOCASE")
		args = append(args, q.AutNum)
	}
	if q.Attribute != "" {
		conditions = append(conditions, "attribute = ?")
		args = append(args, q.Attribute)
	}
	if q.ErrorKind != "" {
		conditions = append(conditions, "error_kind = ?")
		args = append(args, q.ErrorKind)
	}
	if q.OnlyErrors {
		conditions = append(conditions, "(error_kind IS NOT NULL OR error IS NOT NULL)")
	}

	return strings.Join(conditions, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run               Run
		status            string
		revision, errText sql.NullString
		startedAt         int64
		finishedAt        sql.NullInt64
	)
	err := row.Scan(
		&run.ID, &run.Source, &revision, &status, &startedAt, &finishedAt,
		&run.Dumps, &run.Objects, &run.AutNums, &run.Imports, &run.Failed,
		&errText,
	)
	if err != nil {
		return nil, err
	}
	run.Status = RunStatus(status)
	run.Revision = revision.String
	run.Error = errText.String
	run.StartedAt = time.Unix(0, startedAt).UTC()
	if finishedAt.Valid {
		run.FinishedAt = time.Unix(0, finishedAt.Int64).UTC()
	}
	return &run, nil
}

func scanRecord(row scanner) (*Record, error) {
	var (
		r                   Record
		tree, kind, message sql.NullString
		offset              sql.NullInt64
	)
	err := row.Scan(
		&r.RunID, &r.AutNum, &r.Dump, &r.Attribute, &r.Line, &r.Value,
		&tree, &kind, &message, &offset,
	)
	if err != nil {
		return nil, err
	}
	r.Tree = tree.String
	r.ErrorKind = kind.String
	r.Error = message.String
	r.ErrorOffset = int(offset.Int64)
	return &r, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UnixNano()
}
