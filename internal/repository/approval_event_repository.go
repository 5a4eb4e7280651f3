package repository

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/unclebandit/campaign-workflow/internal/db"
    "github.com/unclebandit/campaign-workflow/internal/model"
)

type ApprovalEventRepositoryInterface interface {
    Record(ctx context.Context, e model.ApprovalEvent) error
    ListByBrief(ctx context.Context, briefID string) ([]model.ApprovalEvent, error)
}

// ApprovalEventRepository appends workflow decisions to the publish_events table.
type ApprovalEventRepository struct {
    DB      *sql.DB
    Dialect db.Dialect
    Table   string
}

// Record is idempotent on event_id so redelivered queue messages are harmless.
// The existence check and the insert are a single statement.
func (r *ApprovalEventRepository) Record(ctx context.Context, e model.ApprovalEvent) error {
    p := r.Dialect.Param
    query := fmt.Sprintf(`
        INSERT INTO %s (event_id, session_id, brief_id, step, decision, feedback, event_ts)
        SELECT %s, %s, %s, %s, %s, %s, %s
        WHERE NOT EXISTS (SELECT 1 FROM %s WHERE event_id = %s)`,
        r.Table,
        p(1, db.String), p(2, db.String), p(3, db.String), p(4, db.String), p(5, db.String), p(6, db.String), p(7, db.Timestamp),
        r.Table, r.Dialect.Placeholder(8),
    )
    _, err := r.DB.ExecContext(ctx, query, e.ID, e.SessionID, e.BriefID, e.Step, e.Decision, e.Feedback, e.At.UTC(), e.ID)
    return err
}

func (r *ApprovalEventRepository) ListByBrief(ctx context.Context, briefID string) ([]model.ApprovalEvent, error) {
    query := fmt.Sprintf(`
        SELECT event_id, session_id, brief_id, step, decision, feedback, event_ts
        FROM %s
        WHERE brief_id = %s
        ORDER BY event_ts`, r.Table, r.Dialect.Placeholder(1))
    rows, err := r.DB.QueryContext(ctx, query, briefID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    events := []model.ApprovalEvent{}
    for rows.Next() {
        var (
            e                 model.ApprovalEvent
            session, feedback sql.NullString
            ts                sql.NullString
        )
        if err := rows.Scan(&e.ID, &session, &e.BriefID, &e.Step, &e.Decision, &feedback, &ts); err != nil {
            return nil, err
        }
        e.SessionID, e.Feedback = session.String, feedback.String
        at, err := parseTime(ts)
        if err != nil {
            return nil, err
        }
        if at != nil {
            e.At = *at
        }
        events = append(events, e)
    }
    return events, rows.Err()
}

var _ ApprovalEventRepositoryInterface = (*ApprovalEventRepository)(nil)
