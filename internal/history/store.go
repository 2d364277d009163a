// Package history persists diff reports so earlier runs can be listed and
// replayed. Reports live in a SQLite database under the snapdiff config
// directory; serialized report payloads are zstd-compressed.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"snapdiff/internal/diffengine"
	"snapdiff/internal/logging"
)

// DBFileName is the history database filename
const DBFileName = "history.db"

const currentSchemaVersion = 1

// Entry is one stored diff run
type Entry struct {
	ID          string           `json:"id"`
	CreatedAt   time.Time        `json:"createdAt"`
	DocumentID  string           `json:"documentId"`
	BeforeLabel string           `json:"beforeLabel"`
	AfterLabel  string           `json:"afterLabel"`
	Stats       diffengine.Stats `json:"stats"`
}

// Store is the report history database
type Store struct {
	conn    *sql.DB
	logger  *logging.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens or creates the history database inside dir.
func Open(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFileName)
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
			conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		conn.Close()
		return nil, err
	}

	s := &Store{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if !dbExists {
		logger.Info("Creating new history database", map[string]interface{}{
			"path": dbPath,
		})
		if err := s.initializeSchema(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to initialize schema: %w", err)
		}
		if err := writeDescriptor(dir); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return s, nil
}

// Close releases the database connection
func (s *Store) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	return s.conn.Close()
}

// WithTx runs fn inside a transaction, rolling back on error
func (s *Store) WithTx(fn func(*sql.Tx) error) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("failed to rollback transaction", map[string]interface{}{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}
	return tx.Commit()
}

func (s *Store) initializeSchema() error {
	return s.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER NOT NULL
			)`); err != nil {
			return fmt.Errorf("failed to create schema_version table: %w", err)
		}
		if _, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS reports (
				id TEXT PRIMARY KEY,
				created_at TEXT NOT NULL,
				document_id TEXT NOT NULL,
				before_label TEXT NOT NULL,
				after_label TEXT NOT NULL,
				meta_changed INTEGER NOT NULL,
				candidates_removed INTEGER NOT NULL,
				candidates_edited INTEGER NOT NULL,
				candidates_added INTEGER NOT NULL,
				payload BLOB NOT NULL
			)`); err != nil {
			return fmt.Errorf("failed to create reports table: %w", err)
		}
		if _, err := tx.Exec(`
			CREATE INDEX IF NOT EXISTS idx_reports_created_at
			ON reports(created_at DESC)`); err != nil {
			return fmt.Errorf("failed to create reports index: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
			return fmt.Errorf("failed to set schema version: %w", err)
		}
		s.logger.Debug("History schema initialized", map[string]interface{}{
			"version": currentSchemaVersion,
		})
		return nil
	})
}

// Save records a report and returns its generated id.
func (s *Store) Save(documentID, beforeLabel, afterLabel string, report []byte, stats diffengine.Stats) (string, error) {
	id := uuid.New().String()
	payload := s.encoder.EncodeAll(report, nil)

	err := s.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO reports (
				id, created_at, document_id, before_label, after_label,
				meta_changed, candidates_removed, candidates_edited, candidates_added,
				payload
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			time.Now().UTC().Format(time.RFC3339Nano),
			documentID,
			beforeLabel,
			afterLabel,
			stats.MetaChanged,
			stats.CandidatesRemoved,
			stats.CandidatesEdited,
			stats.CandidatesAdded,
			payload,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Debug("Report saved", map[string]interface{}{
		"id":       id,
		"document": documentID,
	})
	return id, nil
}

// List returns the most recent entries, newest first. limit <= 0 means all.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, created_at, document_id, before_label, after_label,
		       meta_changed, candidates_removed, candidates_edited, candidates_added
		FROM reports
		ORDER BY created_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(
			&e.ID, &createdAt, &e.DocumentID, &e.BeforeLabel, &e.AfterLabel,
			&e.Stats.MetaChanged, &e.Stats.CandidatesRemoved,
			&e.Stats.CandidatesEdited, &e.Stats.CandidatesAdded,
		); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns a stored entry and its decompressed report payload.
func (s *Store) Get(id string) (*Entry, []byte, error) {
	var e Entry
	var createdAt string
	var payload []byte

	err := s.conn.QueryRow(`
		SELECT id, created_at, document_id, before_label, after_label,
		       meta_changed, candidates_removed, candidates_edited, candidates_added,
		       payload
		FROM reports WHERE id = ?`, id).Scan(
		&e.ID, &createdAt, &e.DocumentID, &e.BeforeLabel, &e.AfterLabel,
		&e.Stats.MetaChanged, &e.Stats.CandidatesRemoved,
		&e.Stats.CandidatesEdited, &e.Stats.CandidatesAdded,
		&payload,
	)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("report %s not found", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load report: %w", err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

	report, err := s.decoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decompress report: %w", err)
	}
	return &e, report, nil
}

// Prune deletes all but the newest keep entries, returning how many rows
// were removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var pruned int
	err := s.WithTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			DELETE FROM reports WHERE id NOT IN (
				SELECT id FROM reports ORDER BY created_at DESC LIMIT ?
			)`, keep)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		pruned = int(n)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune reports: %w", err)
	}

	if pruned > 0 {
		s.logger.Info("History pruned", map[string]interface{}{
			"removed": pruned,
			"kept":    keep,
		})
	}
	return pruned, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
