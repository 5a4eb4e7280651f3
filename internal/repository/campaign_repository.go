package repository

import (
    "context"
    "database/sql"
    "fmt"

    "github.com/unclebandit/campaign-workflow/internal/db"
    "github.com/unclebandit/campaign-workflow/internal/model"
)

type CampaignRepositoryInterface interface {
    ListCampaigns(ctx context.Context, filter model.CampaignFilter) ([]model.Campaign, error)
    Create(ctx context.Context, c model.Campaign) error
}

type CampaignRepository struct {
    DB      *sql.DB
    Dialect db.Dialect
    Table   string
}

func (r *CampaignRepository) ListCampaigns(ctx context.Context, filter model.CampaignFilter) ([]model.Campaign, error) {
    query := fmt.Sprintf(`
        SELECT brief_id, brief_title, campaign_name, campaign_type, lifecycle_stage,
               medical_constraints, legal_requirements
        FROM %s WHERE 1=1`, r.Table)
    args := []interface{}{}
    argPos := 1

    if filter.Type != "" {
        query += fmt.Sprintf(" AND campaign_type=%s", r.Dialect.Placeholder(argPos))
        args = append(args, filter.Type)
        argPos++
    }
    if filter.LifecycleStage != "" {
        query += fmt.Sprintf(" AND lifecycle_stage=%s", r.Dialect.Placeholder(argPos))
        args = append(args, filter.LifecycleStage)
    }
    query += " ORDER BY brief_id"

    rows, err := r.DB.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()

    campaigns := []model.Campaign{}
    for rows.Next() {
        var (
            c                          model.Campaign
            title, name, typ, stage    sql.NullString
            medical, legal             sql.NullString
        )
        if err := rows.Scan(&c.BriefID, &title, &name, &typ, &stage, &medical, &legal); err != nil {
            return nil, err
        }
        c.BriefTitle, c.CampaignName, c.Type, c.LifecycleStage = title.String, name.String, typ.String, stage.String
        if c.MedicalConstraints, err = stringList(medical); err != nil {
            return nil, fmt.Errorf("medical_constraints for %s: %w", c.BriefID, err)
        }
        if c.LegalRequirements, err = stringList(legal); err != nil {
            return nil, fmt.Errorf("legal_requirements for %s: %w", c.BriefID, err)
        }
        campaigns = append(campaigns, c)
    }
    return campaigns, rows.Err()
}

func (r *CampaignRepository) Create(ctx context.Context, c model.Campaign) error {
    medical, err := encodeJSON(c.MedicalConstraints)
    if err != nil {
        return err
    }
    legal, err := encodeJSON(c.LegalRequirements)
    if err != nil {
        return err
    }
    p := r.Dialect.Placeholder
    query := fmt.Sprintf(`
        INSERT INTO %s (brief_id, brief_title, campaign_name, campaign_type, lifecycle_stage, medical_constraints, legal_requirements)
        VALUES (%s, %s, %s, %s, %s, %s, %s)`,
        r.Table, p(1), p(2), p(3), p(4), p(5), p(6), p(7))
    _, err = r.DB.ExecContext(ctx, query, c.BriefID, c.BriefTitle, c.CampaignName, c.Type, c.LifecycleStage, medical, legal)
    return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
