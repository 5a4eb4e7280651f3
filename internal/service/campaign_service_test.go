package service_test

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"

    appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
    "github.com/unclebandit/campaign-workflow/internal/model"
    "github.com/unclebandit/campaign-workflow/internal/provider"
    "github.com/unclebandit/campaign-workflow/internal/service"
)

// Mock provider
type mockProvider struct {
    provider.Placeholder
    campaigns  []model.Campaign
    compliance map[string]model.Compliance
    handoff    map[string]model.Handoff
    delay      time.Duration
    err        error
}

func (m *mockProvider) Kind() provider.Kind { return provider.KindFixture }

func (m *mockProvider) ListCampaigns(_ context.Context, filter model.CampaignFilter) (model.CampaignList, error) {
    if m.err != nil {
        return model.CampaignList{}, m.err
    }
    out := []model.Campaign{}
    for _, c := range m.campaigns {
        if filter.Matches(c) {
            out = append(out, c)
        }
    }
    return model.NewCampaignList(out), nil
}

func (m *mockProvider) GetCompliance(ctx context.Context, briefID string) (model.Compliance, error) {
    if m.delay > 0 {
        select {
        case <-time.After(m.delay):
        case <-ctx.Done():
            return model.Compliance{}, ctx.Err()
        }
    }
    if m.err != nil {
        return model.Compliance{}, m.err
    }
    return m.compliance[briefID], nil
}

func (m *mockProvider) GetHandoff(_ context.Context, briefID string) (model.Handoff, error) {
    if m.err != nil {
        return model.Handoff{}, m.err
    }
    return m.handoff[briefID], nil
}

func newCampaignService(p provider.Provider) *service.CampaignService {
    s := service.NewCampaignService(p, time.Second, zap.NewNop())
    s.Now = func() time.Time { return time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC) }
    return s
}

func TestPlaceholderServiceIsPreview(t *testing.T) {
    ctx := context.Background()
    s := newCampaignService(provider.Placeholder{})
    assert.True(t, s.Preview())

    list, err := s.ListCampaigns(ctx, model.CampaignFilter{})
    require.NoError(t, err)
    assert.False(t, list.HasData())

    _, ok, err := s.GetCampaign(ctx, "brief_001")
    require.NoError(t, err)
    assert.False(t, ok)

    checklist, err := s.GetChecklist(ctx, "brief_001")
    require.NoError(t, err)
    assert.Equal(t, 0, checklist.TotalItems)
    assert.Empty(t, checklist.Items)

    view, err := s.GetHandoff(ctx, "brief_001")
    require.NoError(t, err)
    assert.False(t, view.HasData())
    assert.Empty(t, view.Plan)
}

func TestGetCampaign(t *testing.T) {
    p := &mockProvider{campaigns: []model.Campaign{
        {BriefID: "brief_001", CampaignName: "A"},
        {BriefID: "brief_002", CampaignName: "B"},
    }}
    s := newCampaignService(p)

    c, ok, err := s.GetCampaign(context.Background(), "brief_002")
    require.NoError(t, err)
    require.True(t, ok)
    assert.Equal(t, "B", c.CampaignName)
}

func TestComplianceTimeout(t *testing.T) {
    p := &mockProvider{delay: time.Second}
    s := newCampaignService(p)
    s.ComplianceTimeout = 20 * time.Millisecond

    _, err := s.GetCompliance(context.Background(), "brief_001")
    require.Error(t, err)
    assert.True(t, errors.Is(err, context.DeadlineExceeded))
    assert.Contains(t, err.Error(), "timed out after 20ms")
}

func TestProviderErrorsPassThrough(t *testing.T) {
    storeErr := appErrors.NewStoreUnavailable("databricks", "get handoff", errors.New("connection reset"))
    s := newCampaignService(&mockProvider{err: storeErr})

    _, err := s.GetHandoff(context.Background(), "brief_001")
    assert.True(t, appErrors.IsStoreError(err))

    _, err = s.GetChecklist(context.Background(), "brief_001")
    assert.True(t, appErrors.IsStoreError(err))
}

func TestBuildApprovalChecklist(t *testing.T) {
    now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)
    c := model.Compliance{
        BriefID:      "brief_002",
        CampaignName: "Menopause Support",
        Found:        true,
        Issues: []model.Issue{
            {Category: "Medical/Legal", Issue: "uncited claim", Severity: "CRITICAL"},
            {Category: "Privacy", Issue: "no policy link", Severity: "high"},
            {Category: "Brand", Issue: "off palette", Severity: "MEDIUM"},
            {Category: "Tone", Issue: "too clinical", Severity: "HIGH"},
        },
    }

    got := service.BuildApprovalChecklist(c, now)
    require.Equal(t, 3, got.TotalItems)
    assert.Equal(t, "legal_team", got.Items[0].Assignee)
    assert.Equal(t, "privacy_team", got.Items[1].Assignee)
    assert.Equal(t, "HIGH", got.Items[1].Severity)
    assert.Equal(t, "compliance_team", got.Items[2].Assignee)
    for _, item := range got.Items {
        assert.Equal(t, "pending_approval", item.Status)
        assert.Equal(t, now, item.DueDate)
    }
}

func TestAssigneeForCategory(t *testing.T) {
    tests := map[string]string{
        "Medical/Legal": "legal_team",
        "privacy":       "privacy_team",
        "Brand":         "brand_team",
        "Accessibility": "qa_team",
        "Content":       "content_team",
        "":              "compliance_team",
        "Other":         "compliance_team",
    }
    for category, want := range tests {
        assert.Equal(t, want, service.AssigneeForCategory(category), category)
    }
}

func TestBuildHandoffView(t *testing.T) {
    goLive := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
    h := model.Handoff{
        BriefID:          "brief_001",
        ReadinessStatus:  "GO_LIVE",
        GoLiveAt:         &goLive,
        BudgetAllocation: map[string]float64{"instagram": 35, "google_ads": 15},
        Assignees:        map[string]string{"instagram": "Sarah Chen (Media)", "tiktok": "Priya Patel"},
        AssetsReady:      true,
        Found:            true,
    }

    v := service.BuildHandoffView(h)
    assert.Equal(t, service.Readiness{Label: "Ready to Launch", Tone: "ok"}, v.Readiness)
    require.Len(t, v.Plan, 3)

    assert.Equal(t, service.ChannelPlan{Channel: "google_ads", Label: "Google Ads", Share: 15}, v.Plan[0])
    assert.Equal(t, service.ChannelPlan{Channel: "instagram", Label: "Instagram", Share: 35, Owner: "Sarah Chen", Role: "Media"}, v.Plan[1])
    assert.Equal(t, service.ChannelPlan{Channel: "tiktok", Label: "Tiktok", Owner: "Priya Patel"}, v.Plan[2])
    assert.Equal(t, 50.0, v.TotalShare())

    require.Len(t, v.Checklist, 5)
    assert.True(t, v.Checklist[0].Done)
    assert.False(t, v.Checklist[1].Done)
    assert.True(t, v.Checklist[4].Done)
}

func TestReadinessFor(t *testing.T) {
    assert.Equal(t, "Ready to Launch", service.ReadinessFor("go_live").Label)
    assert.Equal(t, "Pending Launch", service.ReadinessFor("PENDING").Label)
    assert.Equal(t, "Blocked", service.ReadinessFor("BLOCKED").Label)
    assert.Equal(t, "error", service.ReadinessFor("").Tone)
}

func TestSplitOwner(t *testing.T) {
    name, role := service.SplitOwner(" Alex Novak (Paid Social) ")
    assert.Equal(t, "Alex Novak", name)
    assert.Equal(t, "Paid Social", role)

    name, role = service.SplitOwner("Mark Li")
    assert.Equal(t, "Mark Li", name)
    assert.Empty(t, role)
}
