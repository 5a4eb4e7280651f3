package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/unclebandit/campaign-workflow/internal/model"
	"github.com/unclebandit/campaign-workflow/internal/service"
)

// WorkflowData feeds the workflow page. Only the record for Tab is loaded.
type WorkflowData struct {
	State        model.WorkflowState
	Campaign     model.Campaign
	Listed       bool
	Brief        model.Brief
	Tab          model.Step
	Preview      bool
	Compliance   model.Compliance
	Checklist    service.ApprovalChecklist
	Handoff      service.HandoffView
	Analysis     model.Analysis
	DashboardURL string
	Notice       string
	Err          error
}

func Workflow(d WorkflowData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.raw(`<header class="workflow-header">`)
		h.tag("h1", "", d.Campaign.DisplayName())
		h.rawf(`<div class="progress" aria-label="progress"><span style="width:%d%%"></span></div>`, d.State.Progress())
		h.rawf(`<p class="muted">%d%% complete</p>`, d.State.Progress())
		h.raw(`<form method="post" action="/workflow/reset"><button type="submit">Choose another campaign</button></form>`)
		h.raw(`</header>`)
		if d.Preview {
			h.tag("div", "banner", previewBanner)
		}
		if d.Notice != "" {
			h.tag("div", "banner", d.Notice)
		}

		render(ctx, h, Tabs(d.State, d.Tab))

		h.rawf(`<section id="tab-%s">`, d.Tab.String())
		switch {
		case d.Err != nil:
			render(ctx, h, ErrorNotice(d.Err))
		default:
			switch d.Tab {
			case model.StepBriefing:
				render(ctx, h, BriefingTab(d.Campaign, d.Brief, d.Listed))
			case model.StepProduction:
				render(ctx, h, ProductionTab(d.Compliance))
			case model.StepCompliance:
				render(ctx, h, ComplianceTab(d.Campaign, d.Compliance, d.Checklist))
			case model.StepHandoff:
				render(ctx, h, HandoffTab(d.Campaign, d.Handoff))
			case model.StepAnalysis:
				render(ctx, h, AnalysisTab(d.Analysis, d.DashboardURL))
			}
		}
		if d.Tab < model.StepAnalysis {
			render(ctx, h, ApprovalForm(d.State, d.Tab))
		}
		h.raw(`</section>`)
	})
}

// Tabs renders the step navigation with each step's approval chip.
func Tabs(state model.WorkflowState, active model.Step) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.raw(`<nav class="tabs">`)
		for _, s := range model.Steps() {
			class := ""
			if s == active {
				class = ` class="active"`
			}
			h.rawf(`<a href="/workflow?tab=%s"%s>`, s.String(), class)
			h.text(s.Title())
			if a, ok := state.Approvals[s]; ok {
				h.raw(" ")
				h.tag("span", decisionChip(a.Decision), decisionLabel(a.Decision))
			}
			h.raw(`</a>`)
		}
		h.raw(`</nav>`)
	})
}

func decisionChip(decision string) string {
	if decision == model.DecisionApproved {
		return "chip chip-ok"
	}
	return "chip chip-warn"
}

func decisionLabel(decision string) string {
	if decision == model.DecisionApproved {
		return "Approved"
	}
	return "Changes requested"
}

// ApprovalForm shows approve/request-changes for a gated step.
func ApprovalForm(state model.WorkflowState, step model.Step) templ.Component {
	return component(func(_ context.Context, h *html) {
		if a, ok := state.Approvals[step]; ok && a.Feedback != "" {
			h.raw(`<blockquote class="feedback">`)
			h.text(a.Feedback)
			h.raw(`</blockquote>`)
		}
		if step == model.StepHandoff && !state.Approved(model.StepCompliance) {
			h.tag("p", "muted", "Approve the compliance review before signing off the handoff.")
			return
		}
		action := fmt.Sprintf("/workflow/%s", step.String())
		h.rawf(`<form method="post" action="%s/approve" class="approval">`, action)
		h.raw(`<textarea name="feedback" placeholder="Notes (optional)"></textarea>`)
		h.rawf(`<button type="submit">Approve %s</button>`, templ.EscapeString(step.Title()))
		h.rawf(`<button type="submit" formaction="%s/request-changes">Request changes</button>`, action)
		h.raw(`</form>`)
	})
}

// BriefingTab shows the working brief. An unlisted campaign gets the default brief.
func BriefingTab(c model.Campaign, b model.Brief, listed bool) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.tag("h2", "", "Campaign brief")
		if !listed {
			h.tag("div", "empty-state", "No campaign brief loaded for "+c.DisplayName()+". The default brief is shown below.")
		}
		h.raw(`<dl>`)
		field := func(label, value string) {
			h.tag("dt", "", label)
			h.tag("dd", "", value)
		}
		field("Brief", c.BriefTitle)
		field("Type", b.Type)
		field("Audience", b.Audience)
		field("Budget", fmt.Sprintf("$%.0f", b.Budget))
		field("Timeline", b.Timeline)
		if c.LifecycleStage != "" {
			field("Lifecycle stage", c.LifecycleStage)
		}
		h.raw(`</dl>`)
		h.tag("p", "", b.Summary)
		list(h, "Medical constraints", c.MedicalConstraints)
		list(h, "Legal requirements", c.LegalRequirements)
	})
}

func ProductionTab(c model.Compliance) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.tag("h2", "", "Creative")
		if !c.Creative.HasImage() {
			h.tag("div", "empty-state", "No creative generated yet. The latest creative appears here once production has run.")
			return
		}
		cr := c.Creative
		if cr.ImageB64 != "" {
			h.rawf(`<img alt="generated creative" src="data:image/png;base64,%s">`, templ.EscapeString(cr.ImageB64))
		} else {
			h.raw(`<p>Stored at `)
			h.tag("code", "", cr.ImagePath)
			h.raw(`</p>`)
		}
		if cr.GeneratedAt != nil {
			h.tag("p", "muted", "Generated "+formatTime(*cr.GeneratedAt))
		}
		if cr.ExpertPrompt != "" {
			h.tag("h3", "", "Prompt")
			h.tag("p", "", cr.ExpertPrompt)
		}
	})
}

func ComplianceTab(campaign model.Campaign, c model.Compliance, checklist service.ApprovalChecklist) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.tag("h2", "", "Compliance review")
		if !c.HasData() {
			h.tag("div", "empty-state", "No compliance record for "+campaign.DisplayName()+". The review appears here once the creative has been checked.")
			return
		}
		h.raw(`<p>`)
		h.tag("span", statusChip(c.ApprovalStatus), c.ApprovalStatus)
		h.rawf(` Overall score <strong>%.1f</strong> (confidence %.0f%%)`, c.Scores.Overall, c.Scores.Confidence*100)
		h.raw(`</p>`)

		h.raw(`<table><tbody>`)
		for _, row := range []struct {
			label string
			score float64
		}{
			{"Medical/Legal", c.Scores.MedicalLegal},
			{"Privacy", c.Scores.Privacy},
			{"Brand", c.Scores.Brand},
			{"Accessibility", c.Scores.Accessibility},
			{"Content", c.Scores.Content},
		} {
			h.raw(`<tr>`)
			h.tag("th", "", row.label)
			h.rawf(`<td>%.1f</td></tr>`, row.score)
		}
		h.raw(`</tbody></table>`)

		if c.FinalRecommendation != "" {
			h.tag("p", "recommendation", c.FinalRecommendation)
		}
		if c.ReviewedAt != nil {
			h.tag("p", "muted", "Reviewed "+formatTime(*c.ReviewedAt)+" by "+c.ReviewedBy)
		}

		counts := c.CountBySeverity()
		h.tag("h3", "", fmt.Sprintf("Issues (%d critical, %d high)", counts[model.SeverityCritical], counts[model.SeverityHigh]))
		if len(c.Issues) == 0 {
			h.tag("p", "muted", "No issues found.")
		}
		h.raw(`<ul>`)
		for _, i := range c.Issues {
			h.raw(`<li>`)
			h.tag("span", "chip", strings.ToUpper(i.Severity))
			h.raw(" ")
			h.tag("strong", "", i.Category)
			h.raw(": ")
			h.text(i.Issue)
			if i.Recommendation != "" {
				h.tag("em", "", " "+i.Recommendation)
			}
			h.raw(`</li>`)
		}
		h.raw(`</ul>`)

		if checklist.TotalItems > 0 {
			h.tag("h3", "", "Sign-off checklist")
			h.raw(`<table><thead><tr><th>Issue</th><th>Severity</th><th>Assignee</th><th>Status</th></tr></thead><tbody>`)
			for _, item := range checklist.Items {
				h.raw(`<tr>`)
				h.tag("td", "", item.Issue)
				h.tag("td", "", item.Severity)
				h.tag("td", "", item.Assignee)
				h.tag("td", "", item.Status)
				h.raw(`</tr>`)
			}
			h.raw(`</tbody></table>`)
		}
	})
}

func statusChip(status string) string {
	switch strings.ToUpper(status) {
	case "APPROVED":
		return "chip chip-ok"
	case "REJECTED":
		return "chip chip-error"
	default:
		return "chip chip-warn"
	}
}

func HandoffTab(campaign model.Campaign, v service.HandoffView) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.tag("h2", "", "Launch handoff")
		if !v.HasData() {
			h.tag("div", "empty-state", "No handoff plan for "+campaign.DisplayName()+". The launch plan appears here once media has been scheduled.")
			return
		}
		h.raw(`<p>`)
		h.tag("span", "chip chip-"+v.Readiness.Tone, v.Readiness.Label)
		if v.GoLiveAt != nil {
			h.text(" Go-live " + formatTime(*v.GoLiveAt))
		}
		h.raw(`</p>`)

		if len(v.Plan) > 0 {
			h.raw(`<table><thead><tr><th>Channel</th><th>Budget</th><th>Owner</th><th>Role</th></tr></thead><tbody>`)
			for _, p := range v.Plan {
				h.raw(`<tr>`)
				h.tag("td", "", p.Label)
				h.tag("td", "", fmt.Sprintf("%.0f%%", p.Share))
				h.tag("td", "", p.Owner)
				h.tag("td", "", p.Role)
				h.raw(`</tr>`)
			}
			h.raw(`</tbody><tfoot><tr>`)
			h.tag("th", "", "Total")
			h.tag("th", "", fmt.Sprintf("%.0f%%", v.TotalShare()))
			h.raw(`<th></th><th></th></tr></tfoot></table>`)
		}
		list(h, "Monitoring", v.MonitoringMetrics)

		h.tag("h3", "", "Pre-launch checklist")
		h.raw(`<ul class="checklist">`)
		for _, c := range v.Checklist {
			mark := "☐"
			if c.Done {
				mark = "☑"
			}
			h.tag("li", "", mark+" "+c.Item)
		}
		h.raw(`</ul>`)
	})
}

func AnalysisTab(a model.Analysis, dashboardURL string) templ.Component {
	return component(func(_ context.Context, h *html) {
		h.tag("h2", "", "Performance analysis")
		if !a.HasData() {
			h.tag("div", "empty-state", "Performance analysis will be available after campaign launch.")
		} else {
			if len(a.Metrics) > 0 {
				h.raw(`<table><thead><tr><th>Metric</th><th>Value</th><th>Benchmark</th><th>Status</th></tr></thead><tbody>`)
				for _, m := range a.Metrics {
					h.raw(`<tr>`)
					h.tag("td", "", m.Name)
					h.rawf(`<td>%.2f</td><td>%.2f</td>`, m.Value, m.Benchmark)
					h.tag("td", "", m.Status)
					h.raw(`</tr>`)
				}
				h.raw(`</tbody></table>`)
			}
			list(h, "Key findings", a.KeyFindings)
			list(h, "Next iteration", a.NextIteration)
		}

		h.tag("h3", "", "Dashboard")
		if dashboardURL == "" {
			h.tag("p", "muted", "Set DATABRICKS_DASHBOARD_URL to embed the campaign dashboard.")
			return
		}
		h.rawf(`<iframe src="%s" width="100%%" height="600" frameborder="0"></iframe>`, templ.EscapeString(dashboardURL))
	})
}

func list(h *html, title string, items []string) {
	if len(items) == 0 {
		return
	}
	h.tag("h3", "", title)
	h.raw(`<ul>`)
	for _, item := range items {
		h.tag("li", "", item)
	}
	h.raw(`</ul>`)
}

func formatTime(t time.Time) string {
	return t.UTC().Format("Jan 2, 2006 15:04 MST")
}
