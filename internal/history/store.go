// Package history persists diagnosis runs in a SQLite database so score
// trends can be inspected across runs.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"codehunter/internal/diagnosis"
	"codehunter/internal/health"
	"codehunter/internal/slogutil"
)

// DefaultPath is the database location relative to the project root.
const DefaultPath = ".codehunter/history.db"

// timeLayout has fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// Run summarizes one recorded diagnosis.
type Run struct {
	ID        string        `json:"id"`
	Root      string        `json:"root"`
	CreatedAt time.Time     `json:"createdAt"`
	Findings  int           `json:"findings"`
	Critical  int           `json:"critical"`
	Warnings  int           `json:"warnings"`
	Info      int           `json:"info"`
	Score     int           `json:"score"`
	Status    health.Status `json:"status"`
}

// Store provides persistence for diagnosis runs.
type Store struct {
	conn    *sql.DB
	logger  *slog.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	now     func() time.Time
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	logger = slogutil.OrDiscard(logger)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create compressor: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create decompressor: %w", err)
	}

	store := &Store{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
		now:     time.Now,
	}

	if !dbExists {
		logger.Info("Creating history database", "path", dbPath)
	}
	if err := store.initializeSchema(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return store, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			root TEXT NOT NULL,
			created_at TEXT NOT NULL,
			findings INTEGER NOT NULL,
			critical INTEGER NOT NULL,
			warnings INTEGER NOT NULL,
			info INTEGER NOT NULL,
			score INTEGER NOT NULL,
			status TEXT NOT NULL,
			report BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.decoder != nil {
		s.decoder.Close()
	}
	if s.encoder != nil {
		_ = s.encoder.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Record stores a report and returns the new run ID. The full report is
// kept as zstd-compressed JSON.
func (s *Store) Record(report *diagnosis.Report) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	blob := s.encoder.EncodeAll(data, nil)

	id := uuid.New().String()
	_, err = s.conn.Exec(`
		INSERT INTO runs (id, root, created_at, findings, critical, warnings, info, score, status, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		report.Root,
		s.now().UTC().Format(timeLayout),
		len(report.Findings),
		report.Critical,
		report.Warnings,
		report.Info,
		report.Score,
		string(report.Status),
		blob,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	s.logger.Debug("Recorded run",
		"id", id,
		"score", report.Score,
		"bytes", len(data),
		"compressed", len(blob),
	)
	return id, nil
}

// List returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (s *Store) List(limit int) ([]Run, error) {
	query := `
		SELECT id, root, created_at, findings, critical, warnings, info, score, status
		FROM runs
		ORDER BY created_at DESC, rowid DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt, status string
		if err := rows.Scan(&r.ID, &r.Root, &createdAt, &r.Findings, &r.Critical,
			&r.Warnings, &r.Info, &r.Score, &status); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		r.Status = health.Status(status)
		if t, err := time.Parse(timeLayout, createdAt); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the full report of a recorded run.
func (s *Store) Get(id string) (*diagnosis.Report, error) {
	var root string
	var blob []byte
	err := s.conn.QueryRow(`SELECT root, report FROM runs WHERE id = ?`, id).Scan(&root, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	data, err := s.decoder.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress report: %w", err)
	}
	var report diagnosis.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	report.Root = root
	return &report, nil
}

// Prune deletes all but the newest keep runs and returns how many were
// removed.
func (s *Store) Prune(keep int) (int64, error) {
	result, err := s.conn.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	return result.RowsAffected()
}
