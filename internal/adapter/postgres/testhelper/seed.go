package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

// SeedResult inserts a quiz_results row without words, starting at startedAt
// and lasting one minute. Returns the stored record.
func SeedResult(t *testing.T, pool *pgxpool.Pool, startedAt time.Time, correct, incorrect int) domain.ResultRecord {
	t.Helper()

	start := startedAt.UTC().Truncate(time.Microsecond)
	rec := domain.ResultRecord{
		ID: uuid.New(),
		Result: domain.Result{
			Correct:        correct,
			Incorrect:      incorrect,
			CorrectWords:   []string{},
			IncorrectWords: []string{},
			StartTime:      start,
			EndTime:        start.Add(time.Minute),
		},
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO quiz_results (id, correct, incorrect, started_at, ended_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.Correct, rec.Incorrect, rec.StartTime, rec.EndTime,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedResult insert: %v", err)
	}

	return rec
}

// ResultExists reports whether a quiz_results row with the given ID exists.
func ResultExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM quiz_results WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("testhelper: ResultExists query: %v", err)
	}
	return exists
}
