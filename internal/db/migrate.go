package db

import (
    "context"
    "database/sql"
    "fmt"
    "strings"
)

type column struct {
    name string
    typ  ColumnType
}

type tableDef struct {
    name    func(Tables) string
    columns []column
    unique  string
}

var schema = []tableDef{
    {
        name: func(t Tables) string { return t.Campaigns },
        columns: []column{
            {"brief_id", String}, {"brief_title", String}, {"campaign_name", String},
            {"campaign_type", String}, {"lifecycle_stage", String},
            {"medical_constraints", String}, {"legal_requirements", String},
        },
    },
    {
        name: func(t Tables) string { return t.Compliance },
        columns: []column{
            {"brief_id", String}, {"campaign_name", String},
            {"medical_legal_score", Double}, {"privacy_score", Double}, {"brand_score", Double},
            {"accessibility_score", Double}, {"content_score", Double}, {"overall_score", Double},
            {"approval_status", String}, {"final_recommendation", String},
            {"reviewed_at", Timestamp}, {"reviewed_by", String},
            {"confidence_score", Double}, {"issues_json", String},
        },
    },
    {
        name: func(t Tables) string { return t.Creatives },
        columns: []column{
            {"brief_id", String}, {"generated_image_path", String}, {"generated_image_b64", String},
            {"expert_prompt", String}, {"generation_timestamp", Timestamp},
        },
    },
    {
        name: func(t Tables) string { return t.Handoff },
        columns: []column{
            {"brief_id", String}, {"readiness_status", String}, {"go_live_timestamp", Timestamp},
            {"channels_json", String}, {"budget_allocation_json", String}, {"assignees_json", String},
            {"monitoring_metrics_json", String},
            {"campaign_assets_ready", Bool}, {"tracking_configured", Bool}, {"stakeholders_notified", Bool},
            {"updated_at", Timestamp},
        },
    },
    {
        name: func(t Tables) string { return t.Analysis },
        columns: []column{
            {"brief_id", String}, {"performance_metrics_json", String}, {"key_findings_json", String},
            {"next_iteration_json", String}, {"analyzed_at", Timestamp},
        },
    },
    {
        name: func(t Tables) string { return t.Events },
        columns: []column{
            {"event_id", String}, {"session_id", String}, {"brief_id", String}, {"step", String},
            {"decision", String}, {"feedback", String}, {"event_ts", Timestamp},
        },
        unique: "event_id",
    },
}

// Migrate creates any missing tables, plus unique keys where the dialect enforces them.
func Migrate(ctx context.Context, conn *sql.DB, d Dialect, tables Tables) error {
    for _, def := range schema {
        name := def.name(tables)
        cols := make([]string, len(def.columns))
        for i, c := range def.columns {
            cols[i] = c.name + " " + d.Type(c.typ)
        }
        stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", name, strings.Join(cols, ", "))
        if _, err := conn.ExecContext(ctx, stmt); err != nil {
            return fmt.Errorf("create %s: %w", name, err)
        }

        if def.unique == "" || !d.uniqueIndexes {
            continue
        }
        base := name[strings.LastIndex(name, ".")+1:]
        stmt = fmt.Sprintf("CREATE UNIQUE INDEX IF NOT EXISTS %s_%s_key ON %s (%s)", base, def.unique, name, def.unique)
        if _, err := conn.ExecContext(ctx, stmt); err != nil {
            return fmt.Errorf("index %s: %w", name, err)
        }
    }
    return nil
}
