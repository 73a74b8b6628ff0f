// Package result implements the quiz result sink and history reader on
// PostgreSQL.
package result

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vocabvoyage-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vocabvoyage-backend/internal/domain"
)

const (
	tableResults = "quiz_results"
	tableWords   = "quiz_result_words"
)

// psql is the statement builder for PostgreSQL ($N placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---- Consumer-defined interfaces (private) ----

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo persists quiz results into quiz_results and quiz_result_words.
type Repo struct {
	pool  *pgxpool.Pool
	tx    txManager
	newID func() uuid.UUID
}

// New creates a new result repository.
func New(pool *pgxpool.Pool, tx txManager) *Repo {
	return &Repo{pool: pool, tx: tx, newID: uuid.New}
}

// Record stores a result and its word lists in a single transaction.
func (r *Repo) Record(ctx context.Context, res domain.Result) error {
	_, err := r.Insert(ctx, res)
	return err
}

// Insert stores a result and returns the generated record.
func (r *Repo) Insert(ctx context.Context, res domain.Result) (domain.ResultRecord, error) {
	rec := domain.ResultRecord{ID: r.newID(), Result: res}

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.pool)

		query, args, err := psql.Insert(tableResults).
			Columns("id", "correct", "incorrect", "started_at", "ended_at").
			Values(rec.ID, res.Correct, res.Incorrect, res.StartTime.UTC(), res.EndTime.UTC()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert result: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "quiz_result", rec.ID)
		}

		words := wordsInsert(rec.ID, res)
		if words == nil {
			return nil
		}
		query, args, err = words.ToSql()
		if err != nil {
			return fmt.Errorf("build insert words: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "quiz_result", rec.ID)
		}
		return nil
	})
	if err != nil {
		return domain.ResultRecord{}, err
	}

	return rec, nil
}

// wordsInsert builds a multi-row insert for the result's word lists, or nil
// when both lists are empty.
func wordsInsert(id uuid.UUID, res domain.Result) *sq.InsertBuilder {
	if len(res.CorrectWords) == 0 && len(res.IncorrectWords) == 0 {
		return nil
	}

	b := psql.Insert(tableWords).Columns("result_id", "word", "correct", "position")
	for i, w := range domain.Dedup(res.CorrectWords) {
		b = b.Values(id, w, true, i)
	}
	for i, w := range domain.Dedup(res.IncorrectWords) {
		b = b.Values(id, w, false, i)
	}
	return &b
}

// List returns up to limit most recent results, newest first.
func (r *Repo) List(ctx context.Context, limit int) ([]domain.ResultRecord, error) {
	if limit <= 0 {
		return []domain.ResultRecord{}, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("id", "correct", "incorrect", "started_at", "ended_at").
		From(tableResults).
		OrderBy("started_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select results: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "quiz_result", uuid.Nil)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ResultRecord, error) {
		var (
			rec          domain.ResultRecord
			start, ended time.Time
		)
		if err := row.Scan(&rec.ID, &rec.Correct, &rec.Incorrect, &start, &ended); err != nil {
			return rec, err
		}
		rec.StartTime = start
		rec.EndTime = ended
		rec.CorrectWords = []string{}
		rec.IncorrectWords = []string{}
		return rec, nil
	})
	if err != nil {
		return nil, postgres.MapError(err, "quiz_result", uuid.Nil)
	}
	if len(records) == 0 {
		return []domain.ResultRecord{}, nil
	}

	if err := r.attachWords(ctx, q, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Repo) attachWords(ctx context.Context, q postgres.Querier, records []domain.ResultRecord) error {
	ids := make([]uuid.UUID, len(records))
	index := make(map[uuid.UUID]int, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
		index[rec.ID] = i
	}

	query, args, err := psql.Select("result_id", "word", "correct").
		From(tableWords).
		Where(sq.Eq{"result_id": ids}).
		OrderBy("result_id", "correct DESC", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("build select words: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "quiz_result_words", uuid.Nil)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id      uuid.UUID
			word    string
			correct bool
		)
		if err := rows.Scan(&id, &word, &correct); err != nil {
			return fmt.Errorf("scan result word: %w", err)
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
		return postgres.MapError(err, "quiz_result_words", uuid.Nil)
	}
	return nil
}

// DeleteOlderThan removes results that started before threshold. Word rows
// go with them via ON DELETE CASCADE. Returns the number of results removed.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(tableResults).
		Where(sq.Lt{"started_at": threshold.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete results: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "quiz_result", uuid.Nil)
	}
	return tag.RowsAffected(), nil
}
