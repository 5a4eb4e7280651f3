package model

import "time"

// Readiness states reported by the handoff plan. Anything else counts as blocked.
const (
    ReadinessGoLive  = "GO_LIVE"
    ReadinessPending = "PENDING"
)

// Handoff is the go-live plan for a brief. The zero value is the empty form.
type Handoff struct {
    BriefID              string             `json:"brief_id,omitempty" yaml:"brief_id"`
    ReadinessStatus      string             `json:"readiness_status,omitempty" yaml:"readiness_status"`
    GoLiveAt             *time.Time         `json:"go_live_at,omitempty" yaml:"go_live_at"`
    Channels             []string           `json:"channels,omitempty" yaml:"channels"`
    BudgetAllocation     map[string]float64 `json:"budget_allocation,omitempty" yaml:"budget_allocation"`
    Assignees            map[string]string  `json:"assignees,omitempty" yaml:"assignees"`
    MonitoringMetrics    []string           `json:"monitoring_metrics,omitempty" yaml:"monitoring_metrics"`
    AssetsReady          bool               `json:"campaign_assets_ready" yaml:"campaign_assets_ready"`
    TrackingConfigured   bool               `json:"tracking_configured" yaml:"tracking_configured"`
    StakeholdersNotified bool               `json:"stakeholders_notified" yaml:"stakeholders_notified"`
    Found                bool               `json:"has_data" yaml:"-"`
}

func (h Handoff) HasData() bool { return h.Found }
