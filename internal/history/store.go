package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"telecine/internal/encode"
	"telecine/internal/queue"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound indicates the requested job was never archived.
var ErrNotFound = errors.New("history: job not found")

// Entry is one archived job plus the transcript captured at its terminal
// transition.
type Entry struct {
	Job        queue.Job
	Transcript []string
	ArchivedAt time.Time
}

// Store persists terminal jobs in a SQLite database. It implements
// queue.Archiver.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database under dir.
func Open(dir string) (*Store, error) {
	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Archive records a terminal job. Re-archiving the same id overwrites the
// previous row, so a retried archive is harmless.
func (s *Store) Archive(job queue.Job, transcript []string) error {
	requestJSON, err := json.Marshal(job.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	_, err = s.db.ExecContext(
		context.Background(),
		`INSERT OR REPLACE INTO history_jobs (
            id, status, input, output, error_message, progress,
            source_size, output_size, created_at, started_at, finished_at,
            archived_at, request_json, transcript
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID,
		string(job.Status),
		job.Request.Input,
		job.Request.Output,
		nullableString(job.ErrorMessage),
		job.Progress,
		job.SourceSize,
		job.OutputSize,
		job.CreatedAt.UTC().Format(time.RFC3339Nano),
		nullableTime(job.StartedAt),
		nullableTime(job.FinishedAt),
		time.Now().UTC().Format(time.RFC3339Nano),
		string(requestJSON),
		nullableString(strings.Join(transcript, "\n")),
	)
	if err != nil {
		return fmt.Errorf("insert history row: %w", err)
	}
	return nil
}

// Recent returns archived jobs newest first, at most limit of them.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		selectColumns+` FROM history_jobs ORDER BY archived_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Get returns a single archived job by id.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		selectColumns+` FROM history_jobs WHERE id = ?`,
		id,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

const selectColumns = `SELECT id, status, error_message, progress,
    source_size, output_size, created_at, started_at, finished_at,
    archived_at, request_json, transcript`

func scanEntry(scanner interface{ Scan(dest ...any) error }) (*Entry, error) {
	var (
		entry        Entry
		status       string
		errorMessage sql.NullString
		createdAt    string
		startedAt    sql.NullString
		finishedAt   sql.NullString
		archivedAt   string
		requestJSON  string
		transcript   sql.NullString
	)
	err := scanner.Scan(
		&entry.Job.ID,
		&status,
		&errorMessage,
		&entry.Job.Progress,
		&entry.Job.SourceSize,
		&entry.Job.OutputSize,
		&createdAt,
		&startedAt,
		&finishedAt,
		&archivedAt,
		&requestJSON,
		&transcript,
	)
	if err != nil {
		return nil, err
	}

	parsed, ok := queue.ParseStatus(status)
	if !ok {
		return nil, fmt.Errorf("unknown archived status %q", status)
	}
	entry.Job.Status = parsed
	entry.Job.ErrorMessage = errorMessage.String

	var request encode.Request
	if err := json.Unmarshal([]byte(requestJSON), &request); err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	entry.Job.Request = request

	if entry.Job.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if startedAt.Valid {
		if entry.Job.StartedAt, err = parseTimestamp(startedAt.String); err != nil {
			return nil, err
		}
	}
	if finishedAt.Valid {
		if entry.Job.FinishedAt, err = parseTimestamp(finishedAt.String); err != nil {
			return nil, err
		}
	}
	if entry.ArchivedAt, err = parseTimestamp(archivedAt); err != nil {
		return nil, err
	}
	if transcript.Valid && transcript.String != "" {
		entry.Transcript = strings.Split(transcript.String, "\n")
	}
	return &entry, nil
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return ts, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}
