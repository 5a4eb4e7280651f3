package view

import (
	"context"

	"github.com/a-h/templ"

	"github.com/unclebandit/campaign-workflow/internal/model"
)

// IntroData feeds the landing page.
type IntroData struct {
	Provider  string
	Preview   bool
	Campaigns model.CampaignList
	Err       error
}

// PreviewBriefID names the unlisted campaign walked through in preview mode.
const PreviewBriefID = "preview"

const previewBanner = "Preview mode: no data configured. Set DATABRICKS_HOST and DATABRICKS_TOKEN, or DATA_PROVIDER, to connect a data source."

// Intro lets the user pick a campaign and start the workflow.
func Intro(d IntroData) templ.Component {
	return component(func(ctx context.Context, h *html) {
		h.tag("h1", "", "Campaign Workflow")
		h.tag("p", "lead", "Brief, creative, compliance, handoff and analysis for a marketing campaign.")
		if d.Preview {
			h.tag("div", "banner", previewBanner)
		}
		if d.Err != nil {
			render(ctx, h, ErrorNotice(d.Err))
			return
		}
		if !d.Campaigns.HasData() {
			render(ctx, h, EmptyState("No campaigns available. Load campaign briefs into the data source to begin."))
			if d.Preview {
				h.raw(`<form method="post" action="/workflow/start">`)
				h.rawf(`<input type="hidden" name="brief_id" value="%s">`, PreviewBriefID)
				h.raw(`<button type="submit">Preview workflow</button></form>`)
			}
			return
		}

		h.raw(`<form method="post" action="/workflow/start">`)
		h.raw(`<label for="brief_id">Campaign</label> <select id="brief_id" name="brief_id">`)
		for _, c := range d.Campaigns.Campaigns {
			h.rawf(`<option value="%s">`, templ.EscapeString(c.BriefID))
			h.text(c.DisplayName())
			if c.Type != "" {
				h.text(" (" + c.Type + ")")
			}
			h.raw(`</option>`)
		}
		h.raw(`</select> <button type="submit">Start workflow</button></form>`)
		h.raw(`<p class="muted">Data source: `)
		h.tag("span", "chip", d.Provider)
		h.raw(`</p>`)
	})
}
