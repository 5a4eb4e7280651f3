package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/unclebandit/campaign-workflow/internal/db"
    "github.com/unclebandit/campaign-workflow/internal/model"
)

type AnalysisRepositoryInterface interface {
    GetLatest(ctx context.Context, briefID string) (model.Analysis, error)
    Create(ctx context.Context, a model.Analysis) error
}

type AnalysisRepository struct {
    DB      *sql.DB
    Dialect db.Dialect
    Table   string
}

func (r *AnalysisRepository) GetLatest(ctx context.Context, briefID string) (model.Analysis, error) {
    query := fmt.Sprintf(`
        SELECT brief_id, performance_metrics_json, key_findings_json, next_iteration_json, analyzed_at
        FROM %s
        WHERE brief_id = %s
        ORDER BY analyzed_at DESC
        LIMIT 1`, r.Table, r.Dialect.Placeholder(1))

    var (
        a                                  model.Analysis
        metrics, findings, next, analyzed  sql.NullString
    )
    err := r.DB.QueryRowContext(ctx, query, briefID).Scan(&a.BriefID, &metrics, &findings, &next, &analyzed)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Analysis{}, nil
        }
        return model.Analysis{}, err
    }

    if err := decodeJSON(metrics, &a.Metrics); err != nil {
        return model.Analysis{}, fmt.Errorf("performance_metrics_json for %s: %w", briefID, err)
    }
    if a.KeyFindings, err = stringList(findings); err != nil {
        return model.Analysis{}, fmt.Errorf("key_findings_json for %s: %w", briefID, err)
    }
    if a.NextIteration, err = actionList(next); err != nil {
        return model.Analysis{}, fmt.Errorf("next_iteration_json for %s: %w", briefID, err)
    }
    if a.AnalyzedAt, err = parseTime(analyzed); err != nil {
        return model.Analysis{}, fmt.Errorf("analyzed_at for %s: %w", briefID, err)
    }
    a.Found = true
    return a, nil
}

func (r *AnalysisRepository) Create(ctx context.Context, a model.Analysis) error {
    metrics, err := encodeJSON(a.Metrics)
    if err != nil {
        return err
    }
    findings, err := encodeJSON(a.KeyFindings)
    if err != nil {
        return err
    }
    next, err := encodeJSON(a.NextIteration)
    if err != nil {
        return err
    }
    analyzed := a.AnalyzedAt
    if analyzed == nil {
        now := time.Now().UTC()
        analyzed = &now
    }
    p := r.Dialect.Placeholder
    query := fmt.Sprintf(`
        INSERT INTO %s (brief_id, performance_metrics_json, key_findings_json, next_iteration_json, analyzed_at)
        VALUES (%s, %s, %s, %s, %s)`, r.Table, p(1), p(2), p(3), p(4), p(5))
    _, err = r.DB.ExecContext(ctx, query, a.BriefID, metrics, findings, next, nullTime(analyzed))
    return err
}

var _ AnalysisRepositoryInterface = (*AnalysisRepository)(nil)
