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

type ComplianceRepositoryInterface interface {
    // GetLatest returns the newest decision, or the empty form when the brief has none.
    GetLatest(ctx context.Context, briefID string) (model.Compliance, error)
    GetLatestCreative(ctx context.Context, briefID string) (*model.Creative, error)
    Create(ctx context.Context, c model.Compliance) error
}

type ComplianceRepository struct {
    DB             *sql.DB
    Dialect        db.Dialect
    Table          string
    CreativesTable string
}

func (r *ComplianceRepository) GetLatest(ctx context.Context, briefID string) (model.Compliance, error) {
    query := fmt.Sprintf(`
        SELECT brief_id, campaign_name, medical_legal_score, privacy_score,
               brand_score, accessibility_score, content_score, overall_score,
               approval_status, final_recommendation, reviewed_at, reviewed_by,
               confidence_score, issues_json
        FROM %s
        WHERE brief_id = %s
        ORDER BY reviewed_at DESC
        LIMIT 1`, r.Table, r.Dialect.Placeholder(1))

    var (
        c                                         model.Compliance
        name, status, reco, reviewedAt, reviewer  sql.NullString
        issues                                    sql.NullString
        med, priv, brand, acc, content, overall   sql.NullFloat64
        confidence                                sql.NullFloat64
    )
    err := r.DB.QueryRowContext(ctx, query, briefID).Scan(
        &c.BriefID, &name, &med, &priv, &brand, &acc, &content, &overall,
        &status, &reco, &reviewedAt, &reviewer, &confidence, &issues,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return model.Compliance{}, nil
        }
        return model.Compliance{}, err
    }

    c.CampaignName = name.String
    c.Scores = model.Scores{
        MedicalLegal:  med.Float64,
        Privacy:       priv.Float64,
        Brand:         brand.Float64,
        Accessibility: acc.Float64,
        Content:       content.Float64,
        Overall:       overall.Float64,
        Confidence:    confidence.Float64,
    }
    c.ApprovalStatus = status.String
    if c.ApprovalStatus == "" {
        c.ApprovalStatus = "PENDING"
    }
    c.FinalRecommendation = reco.String
    c.ReviewedBy = reviewer.String
    if c.ReviewedAt, err = parseTime(reviewedAt); err != nil {
        return model.Compliance{}, fmt.Errorf("reviewed_at for %s: %w", briefID, err)
    }
    if err := decodeJSON(issues, &c.Issues); err != nil {
        return model.Compliance{}, fmt.Errorf("issues_json for %s: %w", briefID, err)
    }
    c.Found = true
    return c, nil
}

func (r *ComplianceRepository) GetLatestCreative(ctx context.Context, briefID string) (*model.Creative, error) {
    query := fmt.Sprintf(`
        SELECT generated_image_path, generated_image_b64, expert_prompt, generation_timestamp
        FROM %s
        WHERE brief_id = %s
        ORDER BY generation_timestamp DESC
        LIMIT 1`, r.CreativesTable, r.Dialect.Placeholder(1))

    var path, b64, prompt, generated sql.NullString
    err := r.DB.QueryRowContext(ctx, query, briefID).Scan(&path, &b64, &prompt, &generated)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }

    c := &model.Creative{ImagePath: path.String, ImageB64: b64.String, ExpertPrompt: prompt.String}
    if c.GeneratedAt, err = parseTime(generated); err != nil {
        return nil, fmt.Errorf("generation_timestamp for %s: %w", briefID, err)
    }
    return c, nil
}

// Create writes a decision row and, when present, its creative.
func (r *ComplianceRepository) Create(ctx context.Context, c model.Compliance) error {
    issues, err := encodeJSON(c.Issues)
    if err != nil {
        return err
    }
    p := r.Dialect.Placeholder
    query := fmt.Sprintf(`
        INSERT INTO %s (brief_id, campaign_name, medical_legal_score, privacy_score, brand_score,
            accessibility_score, content_score, overall_score, approval_status, final_recommendation,
            reviewed_at, reviewed_by, confidence_score, issues_json)
        VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
        r.Table, p(1), p(2), p(3), p(4), p(5), p(6), p(7), p(8), p(9), p(10), p(11), p(12), p(13), p(14))
    s := c.Scores
    if _, err := r.DB.ExecContext(ctx, query,
        c.BriefID, c.CampaignName, s.MedicalLegal, s.Privacy, s.Brand,
        s.Accessibility, s.Content, s.Overall, c.ApprovalStatus, c.FinalRecommendation,
        nullTime(c.ReviewedAt), c.ReviewedBy, s.Confidence, issues,
    ); err != nil {
        return err
    }

    if c.Creative == nil {
        return nil
    }
    generated := c.Creative.GeneratedAt
    if generated == nil {
        now := time.Now().UTC()
        generated = &now
    }
    query = fmt.Sprintf(`
        INSERT INTO %s (brief_id, generated_image_path, generated_image_b64, expert_prompt, generation_timestamp)
        VALUES (%s, %s, %s, %s, %s)`, r.CreativesTable, p(1), p(2), p(3), p(4), p(5))
    _, err = r.DB.ExecContext(ctx, query, c.BriefID, c.Creative.ImagePath, c.Creative.ImageB64, c.Creative.ExpertPrompt, nullTime(generated))
    return err
}

var _ ComplianceRepositoryInterface = (*ComplianceRepository)(nil)
