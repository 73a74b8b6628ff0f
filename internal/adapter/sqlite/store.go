// Package sqlite stores quiz results in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store persists quiz results in SQLite. Times are stored as RFC 3339 text.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer at a time; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS quiz_results (
			id TEXT PRIMARY KEY,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS quiz_result_words (
			result_id TEXT NOT NULL REFERENCES quiz_results(id) ON DELETE CASCADE,
			word TEXT NOT NULL,
			correct INTEGER NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (result_id, correct, word)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quiz_results_started_at ON quiz_results(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Record stores a result and its deduplicated word lists in one transaction.
func (s *Store) Record(ctx context.Context, res domain.Result) error {
	_, err := s.Insert(ctx, res)
	return err
}

// Insert stores a result and returns the generated record.
func (s *Store) Insert(ctx context.Context, res domain.Result) (rec domain.ResultRecord, err error) {
	rec = domain.ResultRecord{ID: uuid.New(), Result: res}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ResultRecord{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = sq.Insert("quiz_results").
		Columns("id", "correct", "incorrect", "started_at", "ended_at").
		Values(rec.ID.String(), res.Correct, res.Incorrect, formatTime(res.StartTime), formatTime(res.EndTime)).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return domain.ResultRecord{}, fmt.Errorf("insert quiz result: %w", err)
	}

	correct := domain.Dedup(res.CorrectWords)
	incorrect := domain.Dedup(res.IncorrectWords)
	if len(correct)+len(incorrect) > 0 {
		b := sq.Insert("quiz_result_words").Columns("result_id", "word", "correct", "position")
		for i, w := range correct {
			b = b.Values(rec.ID.String(), w, true, i)
		}
		for i, w := range incorrect {
			b = b.Values(rec.ID.String(), w, false, i)
		}
		if _, err = b.RunWith(tx).ExecContext(ctx); err != nil {
			return domain.ResultRecord{}, fmt.Errorf("insert quiz result words: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.ResultRecord{}, fmt.Errorf("commit transaction: %w", err)
	}
	return rec, nil
}

// List returns up to limit most recent results, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	records := []domain.ResultRecord{}
	if limit <= 0 {
		return records, nil
	}

	rows, err := sq.Select("id", "correct", "incorrect", "started_at", "ended_at").
		From("quiz_results").
		OrderBy("started_at DESC", "id").
		Limit(uint64(limit)).
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("select quiz results: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	ids := make([]string, 0, limit)
	for rows.Next() {
		var (
			id, start, end string
			rec            domain.ResultRecord
		)
		if err := rows.Scan(&id, &rec.Correct, &rec.Incorrect, &start, &end); err != nil {
			return nil, fmt.Errorf("scan quiz result: %w", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse result id %q: %w", id, err)
		}
		if rec.StartTime, err = parseTime(start); err != nil {
			return nil, err
		}
		if rec.EndTime, err = parseTime(end); err != nil {
			return nil, err
		}
		rec.CorrectWords = []string{}
		rec.IncorrectWords = []string{}

		index[id] = len(records)
		ids = append(ids, id)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz results: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	if err := s.attachWords(ctx, ids, index, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) attachWords(ctx context.Context, ids []string, index map[string]int, records []domain.ResultRecord) error {
	rows, err := sq.Select("result_id", "word", "correct").
		From("quiz_result_words").
		Where(sq.Eq{"result_id": ids}).
		OrderBy("result_id", "correct DESC", "position").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return fmt.Errorf("select quiz result words: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id, word string
			correct  bool
		)
		if err := rows.Scan(&id, &word, &correct); err != nil {
			return fmt.Errorf("scan quiz result word: %w", err)
		}
		i, ok := index[id]
		if !ok {
			continue
		}
		if correct {
			records[i].CorrectWords = append(records[i].CorrectWords, word)
		} else {
			records[i].IncorrectWords = append(records[i].IncorrectWords, word)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate quiz result words: %w", err)
	}
	return nil
}

// DeleteOlderThan removes results that started before threshold together
// with their word rows. Returns the number of results removed.
func (s *Store) DeleteOlderThan(ctx context.Context, threshold time.Time) (n int64, err error) {
	cutoff := formatTime(threshold)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = sq.Delete("quiz_result_words").
		Where("result_id IN (SELECT id FROM quiz_results WHERE started_at < ?)", cutoff).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete quiz result words: %w", err)
	}

	res, err := sq.Delete("quiz_results").
		Where(sq.Lt{"started_at": cutoff}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete quiz results: %w", err)
	}
	if n, err = res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return n, nil
}

// formatTime uses a fixed-width UTC layout so text ordering matches time order.
func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000000Z")
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
