package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/aura/internal/chakra"
)

// assessmentRepo implements AssessmentRepo with raw SQL.
type assessmentRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var assessmentColumns = []string{"id", "sequence", "taken_at", "primary_id", "second_id", "scores", "answers"}

func (r *assessmentRepo) Save(ctx context.Context, rec *AssessmentRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.TakenAt.IsZero() {
		rec.TakenAt = time.Now()
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	rec.Sequence = seqNum

	scores, err := json.Marshal(rec.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	query, args := sqlite.Insert("assessments").
		Columns(assessmentColumns...).
		Values(rec.ID, rec.Sequence, toMillis(rec.TakenAt), string(rec.Primary), string(rec.Secondary),
			string(scores), string(answers)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save assessment: %w", err)
	}
	return nil
}

func (r *assessmentRepo) Latest(ctx context.Context) (*AssessmentRecord, error) {
	query, args := selectFrom("assessments", assessmentColumns).
		OrderBy(entsql.Desc("taken_at"), entsql.Desc("sequence")).
		Limit(1).
		Query()
	rec, err := scanAssessment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest assessment: %w", err)
	}
	return rec, nil
}

func (r *assessmentRepo) List(ctx context.Context, opts QueryOpts) ([]AssessmentRecord, error) {
	sel := selectFrom("assessments", assessmentColumns).
		OrderBy(entsql.Desc("taken_at"), entsql.Desc("sequence"))
	query, args := applyOpts(sel, opts, "taken_at").Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssessment(s scanner) (*AssessmentRecord, error) {
	var (
		rec             AssessmentRecord
		takenAt         int64
		primary, second string
		scores, answers string
	)
	if err := s.Scan(&rec.ID, &rec.Sequence, &takenAt, &primary, &second, &scores, &answers); err != nil {
		return nil, err
	}
	rec.TakenAt = fromMillis(takenAt)
	rec.Primary = chakra.ID(primary)
	rec.Secondary = chakra.ID(second)
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return &rec, nil
}
