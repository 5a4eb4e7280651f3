package service

import (
    "sort"
    "strings"

    "golang.org/x/text/cases"
    "golang.org/x/text/language"

    "github.com/unclebandit/campaign-workflow/internal/model"
)

// Readiness is the banner shown above a handoff plan.
type Readiness struct {
    Label string `json:"label"`
    Tone  string `json:"tone"`
}

// ReadinessFor maps a plan's status to its banner. Unknown statuses are blocked.
func ReadinessFor(status string) Readiness {
    switch strings.ToUpper(strings.TrimSpace(status)) {
    case model.ReadinessGoLive:
        return Readiness{Label: "Ready to Launch", Tone: "ok"}
    case model.ReadinessPending:
        return Readiness{Label: "Pending Launch", Tone: "warn"}
    default:
        return Readiness{Label: "Blocked", Tone: "error"}
    }
}

// ChannelPlan is one row of the channel table.
type ChannelPlan struct {
    Channel string  `json:"channel"`
    Label   string  `json:"label"`
    Share   float64 `json:"share"`
    Owner   string  `json:"owner,omitempty"`
    Role    string  `json:"role,omitempty"`
}

type LaunchCheck struct {
    Item string `json:"item"`
    Done bool   `json:"done"`
}

// HandoffView is a handoff plan prepared for display.
type HandoffView struct {
    model.Handoff
    Readiness Readiness     `json:"readiness"`
    Plan      []ChannelPlan `json:"channel_plan"`
    Checklist []LaunchCheck `json:"pre_launch_checklist"`
}

// SplitOwner splits "Sarah Chen (Media)" into name and role.
func SplitOwner(owner string) (name, role string) {
    owner = strings.TrimSpace(owner)
    open := strings.LastIndex(owner, "(")
    if open < 0 || !strings.HasSuffix(owner, ")") {
        return owner, ""
    }
    return strings.TrimSpace(owner[:open]), strings.TrimSpace(owner[open+1 : len(owner)-1])
}

var titler = cases.Title(language.English)

// ChannelLabel turns "paid_social" into "Paid Social".
func ChannelLabel(channel string) string {
    return titler.String(strings.ReplaceAll(channel, "_", " "))
}

func BuildHandoffView(h model.Handoff) HandoffView {
    v := HandoffView{Handoff: h, Plan: []ChannelPlan{}, Checklist: []LaunchCheck{}}
    if !h.HasData() {
        return v
    }
    v.Readiness = ReadinessFor(h.ReadinessStatus)

    seen := map[string]bool{}
    for ch := range h.BudgetAllocation {
        seen[ch] = true
    }
    for ch := range h.Assignees {
        seen[ch] = true
    }
    channels := make([]string, 0, len(seen))
    for ch := range seen {
        channels = append(channels, ch)
    }
    sort.Strings(channels)

    for _, ch := range channels {
        name, role := SplitOwner(h.Assignees[ch])
        v.Plan = append(v.Plan, ChannelPlan{
            Channel: ch,
            Label:   ChannelLabel(ch),
            Share:   h.BudgetAllocation[ch],
            Owner:   name,
            Role:    role,
        })
    }

    v.Checklist = []LaunchCheck{
        {Item: "Campaign assets finalized", Done: h.AssetsReady},
        {Item: "Tracking pixels installed", Done: h.TrackingConfigured},
        {Item: "Stakeholders notified", Done: h.StakeholdersNotified},
        {Item: "Monitoring metrics defined", Done: len(h.MonitoringMetrics) > 0},
        {Item: "Go-live date scheduled", Done: h.GoLiveAt != nil},
    }
    return v
}

// TotalShare sums the budget allocation, in percent.
func (v HandoffView) TotalShare() float64 {
    total := 0.0
    for _, p := range v.Plan {
        total += p.Share
    }
    return total
}
