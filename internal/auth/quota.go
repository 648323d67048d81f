package auth

import (
	"context"
	"database/sql"
	"time"
)

const (
	// DefaultDailyGenerationLimit is the number of menus a signed-in user may
	// generate per local calendar day
	DefaultDailyGenerationLimit = 3
)

// QuotaEngine enforces the daily generation quota. Counts come from the
// append-only generation_events table.
type QuotaEngine struct {
	repo  *Repository
	limit int
	now   func() time.Time
}

// NewQuotaEngine creates a new quota engine. A negative limit falls back to the default.
func NewQuotaEngine(repo *Repository, limit int) *QuotaEngine {
	if limit < 0 {
		limit = DefaultDailyGenerationLimit
	}
	return &QuotaEngine{repo: repo, limit: limit, now: time.Now}
}

// WithClock replaces the time source. Day boundaries follow the clock's location.
func (q *QuotaEngine) WithClock(now func() time.Time) *QuotaEngine {
	q.now = now
	return q
}

// dayWindow returns [local midnight today, local midnight tomorrow)
func dayWindow(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// CheckQuota counts today's generations for the user. Callers must not call
// it for guests and must treat an error as a refusal.
func (q *QuotaEngine) CheckQuota(ctx context.Context, userID int64) (QuotaStatus, error) {
	start, reset := dayWindow(q.now())

	var used int
	err := q.repo.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM generation_events
		WHERE user_id = ? AND created_at >= ? AND created_at < ?
	`, userID, start.UTC(), reset.UTC()).Scan(&used)
	if err != nil {
		return QuotaStatus{}, err
	}

	return QuotaStatus{
		Allowed: used < q.limit,
		Used:    used,
		Limit:   q.limit,
		ResetAt: reset,
	}, nil
}

// RecordGeneration appends one event for a finished generation. A nil userID
// records a guest generation that never counts against anyone.
func (q *QuotaEngine) RecordGeneration(ctx context.Context, userID *int64, model string, took time.Duration) error {
	_, err := q.repo.db.ExecContext(ctx, `
		INSERT INTO generation_events (user_id, model_used, generation_time_ms, created_at)
		VALUES (?, ?, ?, ?)
	`, userID, model, took.Milliseconds(), q.now().UTC())
	return err
}

// ListGenerations returns a user's events, newest first
func (q *QuotaEngine) ListGenerations(ctx context.Context, userID int64, limit int) ([]GenerationEvent, error) {
	rows, err := q.repo.db.QueryContext(ctx, `
		SELECT id, user_id, model_used, generation_time_ms, created_at
		FROM generation_events
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []GenerationEvent{}
	for rows.Next() {
		var e GenerationEvent
		var uid sql.NullInt64
		if err := rows.Scan(&e.ID, &uid, &e.ModelUsed, &e.GenerationTimeMs, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.UserID = ScanNullableInt64(uid)
		events = append(events, e)
	}
	return events, rows.Err()
}
