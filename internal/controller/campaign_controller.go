// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/go-chi/chi/v5"
    "go.uber.org/zap"

    appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
    "github.com/unclebandit/campaign-workflow/internal/model"
    "github.com/unclebandit/campaign-workflow/internal/service"
)

// CampaignController serves the read-only JSON API.
type CampaignController struct {
    CampaignService *service.CampaignService
    Log             *zap.Logger
}

// Routes mounts the API under the caller's prefix.
func (c *CampaignController) Routes() chi.Router {
    r := chi.NewRouter()
    r.Get("/provider", c.GetProvider)
    r.Get("/campaigns", c.ListCampaigns)
    r.Get("/campaigns/{id}/compliance", c.GetCompliance)
    r.Get("/campaigns/{id}/checklist", c.GetChecklist)
    r.Get("/campaigns/{id}/handoff", c.GetHandoff)
    r.Get("/campaigns/{id}/analysis", c.GetAnalysis)
    return r
}

func (c *CampaignController) GetProvider(w http.ResponseWriter, r *http.Request) {
    writeJSON(w, http.StatusOK, map[string]interface{}{
        "provider": c.CampaignService.ProviderKind(),
        "preview":  c.CampaignService.Preview(),
    })
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
    filter := model.CampaignFilter{
        Type:           r.URL.Query().Get("type"),
        LifecycleStage: r.URL.Query().Get("lifecycle_stage"),
    }

    list, err := c.CampaignService.ListCampaigns(r.Context(), filter)
    if err != nil {
        c.fail(w, r, err)
        return
    }
    if list.Campaigns == nil {
        list.Campaigns = []model.Campaign{}
    }
    writeJSON(w, http.StatusOK, list)
}

func (c *CampaignController) GetCompliance(w http.ResponseWriter, r *http.Request) {
    compliance, err := c.CampaignService.GetCompliance(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        c.fail(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, compliance)
}

func (c *CampaignController) GetChecklist(w http.ResponseWriter, r *http.Request) {
    checklist, err := c.CampaignService.GetChecklist(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        c.fail(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, checklist)
}

func (c *CampaignController) GetHandoff(w http.ResponseWriter, r *http.Request) {
    view, err := c.CampaignService.GetHandoff(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        c.fail(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, view)
}

func (c *CampaignController) GetAnalysis(w http.ResponseWriter, r *http.Request) {
    analysis, err := c.CampaignService.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
    if err != nil {
        c.fail(w, r, err)
        return
    }
    writeJSON(w, http.StatusOK, analysis)
}

// fail maps store failures to 502; anything else is ours.
func (c *CampaignController) fail(w http.ResponseWriter, r *http.Request, err error) {
    status := http.StatusInternalServerError
    if appErrors.IsStoreError(err) {
        status = http.StatusBadGateway
    }
    if c.Log != nil {
        c.Log.Error("api request failed",
            zap.String("path", r.URL.Path),
            zap.Int("status", status),
            zap.Error(err),
        )
    }
    writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}
