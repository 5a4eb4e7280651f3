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

type HandoffRepositoryInterface interface {
    GetLatest(ctx context.Context, briefID string) (model.Handoff, error)
    Create(ctx context.Context, h model.Handoff) error
}

type HandoffRepository struct {
    DB      *sql.DB
    Dialect db.Dialect
    Table   string
}

func (r *HandoffRepository) GetLatest(ctx context.Context, briefID string) (model.Handoff, error) {
    query := fmt.Sprintf(`
        SELECT brief_id, readiness_status, go_live_timestamp, channels_json, budget_allocation_json,
               assignees_json, monitoring_metrics_json, campaign_assets_ready, tracking_configured,
               stakeholders_notified
        FROM %s
        WHERE brief_id = %s
        ORDER BY updated_at DESC
        LIMIT 1`, r.Table, r.Dialect.Placeholder(1))

    var (
        h                                     model.Handoff
        status, goLive                        sql.NullString
        channels, budget, assignees, monitors sql.NullString
        assets, tracking, notified            sql.NullBool
    )
    err := r.DB.QueryRowContext(ctx, query, briefID).Scan(
        &h.BriefID, &status, &goLive, &channels, &budget, &assignees, &monitors,
        &assets, &tracking, &notified,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Handoff{}, nil
        }
        return model.Handoff{}, err
    }

    h.ReadinessStatus = status.String
    if h.ReadinessStatus == "" {
        h.ReadinessStatus = model.ReadinessPending
    }
    if h.GoLiveAt, err = parseTime(goLive); err != nil {
        return model.Handoff{}, fmt.Errorf("go_live_timestamp for %s: %w", briefID, err)
    }
    if h.Channels, err = stringList(channels); err != nil {
        return model.Handoff{}, fmt.Errorf("channels_json for %s: %w", briefID, err)
    }
    if h.BudgetAllocation, err = percentMap(budget); err != nil {
        return model.Handoff{}, fmt.Errorf("budget_allocation_json for %s: %w", briefID, err)
    }
    if err := decodeJSON(assignees, &h.Assignees); err != nil {
        return model.Handoff{}, fmt.Errorf("assignees_json for %s: %w", briefID, err)
    }
    if h.MonitoringMetrics, err = stringList(monitors); err != nil {
        return model.Handoff{}, fmt.Errorf("monitoring_metrics_json for %s: %w", briefID, err)
    }
    h.AssetsReady, h.TrackingConfigured, h.StakeholdersNotified = assets.Bool, tracking.Bool, notified.Bool
    h.Found = true
    return h, nil
}

func (r *HandoffRepository) Create(ctx context.Context, h model.Handoff) error {
    channels, err := encodeJSON(h.Channels)
    if err != nil {
        return err
    }
    budget, err := encodeJSON(h.BudgetAllocation)
    if err != nil {
        return err
    }
    assignees, err := encodeJSON(h.Assignees)
    if err != nil {
        return err
    }
    monitors, err := encodeJSON(h.MonitoringMetrics)
    if err != nil {
        return err
    }
    p := r.Dialect.Placeholder
    query := fmt.Sprintf(`
        INSERT INTO %s (brief_id, readiness_status, go_live_timestamp, channels_json, budget_allocation_json,
            assignees_json, monitoring_metrics_json, campaign_assets_ready, tracking_configured,
            stakeholders_notified, updated_at)
        VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
        r.Table, p(1), p(2), p(3), p(4), p(5), p(6), p(7), p(8), p(9), p(10), p(11))
    _, err = r.DB.ExecContext(ctx, query,
        h.BriefID, h.ReadinessStatus, nullTime(h.GoLiveAt), channels, budget, assignees, monitors,
        h.AssetsReady, h.TrackingConfigured, h.StakeholdersNotified, time.Now().UTC(),
    )
    return err
}

var _ HandoffRepositoryInterface = (*HandoffRepository)(nil)
