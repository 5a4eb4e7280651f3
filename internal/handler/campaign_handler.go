// internal/handler/campaign_handler.go
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
	"github.com/unclebandit/campaign-workflow/internal/model"
	"github.com/unclebandit/campaign-workflow/internal/service"
	"github.com/unclebandit/campaign-workflow/internal/view"
)

const sessionCookie = "campaign_session"

// CampaignHandler holds the dependencies for the workflow pages
type CampaignHandler struct {
	Campaigns    *service.CampaignService
	Workflow     *service.WorkflowService
	DashboardURL string
	Log          *zap.Logger
}

func (h *CampaignHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Index)
	r.Post("/workflow/start", h.Start)
	r.Get("/workflow", h.Show)
	r.Post("/workflow/reset", h.Reset)
	r.Post("/workflow/{step}/approve", h.decide(model.DecisionApproved))
	r.Post("/workflow/{step}/request-changes", h.decide(model.DecisionChangesRequested))
	return r
}

// sessionID returns the browser's session, issuing a cookie on first visit.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Index shows the campaign picker, or resumes a started workflow.
func (h *CampaignHandler) Index(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	if h.Workflow.State(sid).Started {
		http.Redirect(w, r, "/workflow", http.StatusSeeOther)
		return
	}

	data := view.IntroData{
		Provider: string(h.Campaigns.ProviderKind()),
		Preview:  h.Campaigns.Preview(),
	}
	data.Campaigns, data.Err = h.Campaigns.ListCampaigns(r.Context(), model.CampaignFilter{})
	h.render(w, r, statusFor(data.Err), "Choose a campaign", view.Intro(data))
}

func (h *CampaignHandler) Start(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	briefID := strings.TrimSpace(r.PostForm.Get("brief_id"))

	_, ok, err := h.Campaigns.GetCampaign(r.Context(), briefID)
	if err != nil {
		h.render(w, r, statusFor(err), "Choose a campaign", view.ErrorNotice(err))
		return
	}
	if !ok {
		// preview mode has no listed campaigns but still walks the tabs
		if !h.Campaigns.Preview() {
			http.Error(w, "unknown campaign "+briefID, http.StatusBadRequest)
			return
		}
		if briefID == "" {
			briefID = view.PreviewBriefID
		}
	}

	if _, err := h.Workflow.Start(sid, briefID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/workflow?tab="+model.StepBriefing.String(), http.StatusSeeOther)
}

func (h *CampaignHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Workflow.Reset(sessionID(w, r))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Show renders the workflow page for the requested tab.
func (h *CampaignHandler) Show(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(w, r)
	state := h.Workflow.State(sid)
	if !state.Started {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tab, ok := model.ParseStep(r.URL.Query().Get("tab"))
	if !ok {
		tab = state.Step
		if tab > model.StepAnalysis {
			tab = model.StepAnalysis
		}
	}
	data := h.load(r, state, tab)
	h.render(w, r, statusFor(data.Err), data.Tab.Title(), view.Workflow(data))
}

func (h *CampaignHandler) decide(decision string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := sessionID(w, r)
		step, ok := model.ParseStep(chi.URLParam(r, "step"))
		if !ok {
			http.Error(w, "unknown step", http.StatusNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		feedback := strings.TrimSpace(r.PostForm.Get("feedback"))

		state, err := h.Workflow.Decide(r.Context(), sid, step, decision, feedback)
		var invalid *appErrors.ErrInvalidTransition
		switch {
		case errors.As(err, &invalid):
			if !state.Started {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			data := h.load(r, state, step)
			data.Notice = invalid.Error()
			h.render(w, r, http.StatusConflict, step.Title(), view.Workflow(data))
			return
		case err != nil:
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		next := step
		if decision == model.DecisionApproved {
			next = state.Step
			if next > model.StepAnalysis {
				next = model.StepAnalysis
			}
		}
		http.Redirect(w, r, "/workflow?tab="+next.String(), http.StatusSeeOther)
	}
}

// load fetches the campaign and the record behind one tab.
func (h *CampaignHandler) load(r *http.Request, state model.WorkflowState, tab model.Step) view.WorkflowData {
	ctx := r.Context()
	data := view.WorkflowData{
		State:        state,
		Tab:          tab,
		Preview:      h.Campaigns.Preview(),
		DashboardURL: h.DashboardURL,
		Campaign:     model.Campaign{BriefID: state.BriefID},
	}

	campaign, ok, err := h.Campaigns.GetCampaign(ctx, state.BriefID)
	if err != nil {
		data.Err = err
		return data
	}
	switch {
	case ok:
		data.Campaign = campaign
		data.Listed = true
	case data.Preview:
		data.Campaign.CampaignName = "Preview campaign"
	}
	data.Brief = model.BriefFor(data.Campaign)

	switch tab {
	case model.StepProduction:
		data.Compliance, data.Err = h.Campaigns.GetCompliance(ctx, state.BriefID)
	case model.StepCompliance:
		data.Compliance, data.Err = h.Campaigns.GetCompliance(ctx, state.BriefID)
		if data.Err == nil {
			data.Checklist = service.BuildApprovalChecklist(data.Compliance, h.Campaigns.Now())
		}
	case model.StepHandoff:
		data.Handoff, data.Err = h.Campaigns.GetHandoff(ctx, state.BriefID)
	case model.StepAnalysis:
		data.Analysis, data.Err = h.Campaigns.GetAnalysis(ctx, state.BriefID)
	}
	return data
}

func (h *CampaignHandler) render(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component) {
	templ.Handler(view.Page(title, body), templ.WithStatus(status)).ServeHTTP(w, r)
}

// statusFor keeps store failures visible to monitoring without hiding the page.
func statusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case appErrors.IsStoreError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
