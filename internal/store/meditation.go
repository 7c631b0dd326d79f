package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/aura/internal/chakra"
)

// meditationRepo implements MeditationRepo with raw SQL.
type meditationRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var meditationColumns = []string{"id", "sequence", "center", "mode", "started_at", "duration_ms", "cycles", "note"}

func (r *meditationRepo) Save(ctx context.Context, rec *MeditationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().Add(-rec.Duration)
	}
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	rec.Sequence = seqNum

	query, args := sqlite.Insert("meditations").
		Columns(meditationColumns...).
		Values(rec.ID, rec.Sequence, string(rec.Center), rec.Mode, toMillis(rec.StartedAt),
			rec.Duration.Milliseconds(), rec.Cycles, rec.Note).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save meditation: %w", err)
	}
	return nil
}

func (r *meditationRepo) List(ctx context.Context, opts QueryOpts) ([]MeditationRecord, error) {
	sel := selectFrom("meditations", meditationColumns).
		OrderBy(entsql.Desc("started_at"), entsql.Desc("sequence"))
	query, args := applyOpts(sel, opts, "started_at").Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query meditations: %w", err)
	}
	defer rows.Close()

	var out []MeditationRecord
	for rows.Next() {
		var (
			rec        MeditationRecord
			center     string
			startedAt  int64
			durationMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &center, &rec.Mode, &startedAt,
			&durationMs, &rec.Cycles, &rec.Note); err != nil {
			return nil, fmt.Errorf("scan meditation: %w", err)
		}
		rec.Center = chakra.ID(center)
		rec.StartedAt = fromMillis(startedAt)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *meditationRepo) TotalDuration(ctx context.Context) (time.Duration, error) {
	var ms int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration_ms), 0) FROM meditations`).Scan(&ms)
	if err != nil {
		return 0, fmt.Errorf("sum meditation time: %w", err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (r *meditationRepo) Streak(ctx context.Context, now time.Time) (int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT started_at FROM meditations WHERE started_at <= ? ORDER BY started_at DESC`,
		toMillis(now))
	if err != nil {
		return 0, fmt.Errorf("query meditation days: %w", err)
	}
	defer rows.Close()

	loc := now.Location()
	days := make(map[string]bool)
	for rows.Next() {
		var ms int64
		if err := rows.Scan(&ms); err != nil {
			return 0, fmt.Errorf("scan meditation day: %w", err)
		}
		days[dayKey(fromMillis(ms).In(loc))] = true
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	day := now
	if !days[dayKey(day)] {
		// A streak survives until the end of the day after the last session.
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for days[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

func dayKey(t time.Time) string { return t.Format(time.DateOnly) }
