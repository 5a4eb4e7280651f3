// internal/service/campaign_service.go
package service

import (
    "context"
    "errors"
    "fmt"
    "time"

    "go.uber.org/zap"

    "github.com/unclebandit/campaign-workflow/internal/model"
    "github.com/unclebandit/campaign-workflow/internal/provider"
)

// DefaultComplianceTimeout bounds the compliance lookup when none is configured.
const DefaultComplianceTimeout = 8 * time.Second

// CampaignService is what the API and UI call; it never talks to a store directly.
type CampaignService struct {
    Provider          provider.Provider
    ComplianceTimeout time.Duration
    Log               *zap.Logger
    Now               func() time.Time
}

func NewCampaignService(p provider.Provider, complianceTimeout time.Duration, log *zap.Logger) *CampaignService {
    return &CampaignService{
        Provider:          p,
        ComplianceTimeout: complianceTimeout,
        Log:               log,
        Now:               time.Now,
    }
}

func (s *CampaignService) ProviderKind() provider.Kind {
    return s.Provider.Kind()
}

// Preview reports whether the UI is running without a real data source.
func (s *CampaignService) Preview() bool {
    return s.Provider.Kind() == provider.KindPlaceholder
}

func (s *CampaignService) ListCampaigns(ctx context.Context, filter model.CampaignFilter) (model.CampaignList, error) {
    list, err := s.Provider.ListCampaigns(ctx, filter)
    if err != nil {
        s.Log.Error("list campaigns failed", zap.Error(err))
        return model.CampaignList{}, err
    }
    return list, nil
}

// GetCampaign finds a listed campaign by brief id.
func (s *CampaignService) GetCampaign(ctx context.Context, briefID string) (model.Campaign, bool, error) {
    list, err := s.ListCampaigns(ctx, model.CampaignFilter{})
    if err != nil {
        return model.Campaign{}, false, err
    }
    c, ok := list.Get(briefID)
    return c, ok, nil
}

// GetCompliance fetches the latest decision, giving up after ComplianceTimeout.
func (s *CampaignService) GetCompliance(ctx context.Context, briefID string) (model.Compliance, error) {
    timeout := s.ComplianceTimeout
    if timeout <= 0 {
        timeout = DefaultComplianceTimeout
    }
    ctx, cancel := context.WithTimeout(ctx, timeout)
    defer cancel()

    c, err := s.Provider.GetCompliance(ctx, briefID)
    if err == nil && ctx.Err() != nil {
        err = ctx.Err()
    }
    if err != nil {
        if errors.Is(err, context.DeadlineExceeded) {
            err = fmt.Errorf("compliance fetch timed out after %s: %w", timeout, err)
        }
        s.Log.Error("get compliance failed", zap.String("brief_id", briefID), zap.Error(err))
        return model.Compliance{}, err
    }
    return c, nil
}

// GetChecklist builds the sign-off list for the brief's blocking issues.
func (s *CampaignService) GetChecklist(ctx context.Context, briefID string) (ApprovalChecklist, error) {
    c, err := s.GetCompliance(ctx, briefID)
    if err != nil {
        return ApprovalChecklist{}, err
    }
    return BuildApprovalChecklist(c, s.Now()), nil
}

func (s *CampaignService) GetHandoff(ctx context.Context, briefID string) (HandoffView, error) {
    h, err := s.Provider.GetHandoff(ctx, briefID)
    if err != nil {
        s.Log.Error("get handoff failed", zap.String("brief_id", briefID), zap.Error(err))
        return HandoffView{}, err
    }
    return BuildHandoffView(h), nil
}

func (s *CampaignService) GetAnalysis(ctx context.Context, briefID string) (model.Analysis, error) {
    a, err := s.Provider.GetAnalysis(ctx, briefID)
    if err != nil {
        s.Log.Error("get analysis failed", zap.String("brief_id", briefID), zap.Error(err))
        return model.Analysis{}, err
    }
    return a, nil
}
