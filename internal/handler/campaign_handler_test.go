package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/handler"
	"github.com/unclebandit/campaign-workflow/internal/provider"
	"github.com/unclebandit/campaign-workflow/internal/queue"
	"github.com/unclebandit/campaign-workflow/internal/repository"
	"github.com/unclebandit/campaign-workflow/internal/service"
)

type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T, p provider.Provider) *client {
	t.Helper()
	q := queue.NewInMemoryQueue(zap.NewNop()).WithBackoff(time.Millisecond)
	require.NoError(t, queue.StartApprovalSubscriber(q, "approvals", queue.LogRecorder{Log: zap.NewNop()}, zap.NewNop()))
	t.Cleanup(q.Drain)

	h := &handler.CampaignHandler{
		Campaigns: service.NewCampaignService(p, time.Second, zap.NewNop()),
		Workflow:  service.NewWorkflowService(repository.NewSessionRepository(), q, "approvals", zap.NewNop()),
		Log:       zap.NewNop(),
	}
	return &client{t: t, h: h.Routes()}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.h.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		c.cookie = ck
	}
	return w
}

func TestIntroInPreviewMode(t *testing.T) {
	c := newClient(t, provider.Placeholder{})
	w := c.do(http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Preview mode: no data configured")
	assert.Contains(t, body, "No campaigns available")
	require.NotNil(t, c.cookie)
}

func TestStartUnknownCampaign(t *testing.T) {
	p, err := provider.LoadFixture(filepath.Join("..", "provider", "testdata", "demo.yaml"))
	require.NoError(t, err)
	c := newClient(t, p)
	w := c.do(http.MethodPost, "/workflow/start", url.Values{"brief_id": {"brief_404"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceholderWalksEveryTab(t *testing.T) {
	c := newClient(t, provider.Placeholder{})

	w := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Preview workflow")
	assert.Contains(t, w.Body.String(), `name="brief_id" value="preview"`)

	w = c.do(http.MethodPost, "/workflow/start", url.Values{"brief_id": {"preview"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/workflow?tab=briefing", w.Header().Get("Location"))

	tabs := map[string]string{
		"briefing":   "No campaign brief loaded for Preview campaign",
		"production": "No creative generated yet",
		"compliance": "No compliance record for Preview campaign",
		"handoff":    "No handoff plan for Preview campaign",
		"analysis":   "Performance analysis will be available after campaign launch",
	}
	for tab, message := range tabs {
		w := c.do(http.MethodGet, "/workflow?tab="+tab, nil)
		require.Equal(t, http.StatusOK, w.Code, tab)
		body := w.Body.String()
		assert.Contains(t, body, message, tab)
		assert.Contains(t, body, "Preview mode: no data configured", tab)
		assert.NotContains(t, body, "Could not load data.", tab)
	}
}

func TestPlaceholderStartWithoutBriefUsesPreview(t *testing.T) {
	c := newClient(t, provider.Placeholder{})
	w := c.do(http.MethodPost, "/workflow/start", url.Values{"brief_id": {""}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = c.do(http.MethodGet, "/workflow?tab=compliance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No compliance record for Preview campaign")
}

func TestWorkflowWithoutSessionRedirects(t *testing.T) {
	c := newClient(t, provider.Placeholder{})
	w := c.do(http.MethodGet, "/workflow", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestFixtureWorkflow(t *testing.T) {
	p, err := provider.LoadFixture(filepath.Join("..", "provider", "testdata", "demo.yaml"))
	require.NoError(t, err)
	c := newClient(t, p)

	w := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<option value="brief_001">`)

	w = c.do(http.MethodPost, "/workflow/start", url.Values{"brief_id": {"brief_003"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/workflow?tab=briefing", w.Header().Get("Location"))

	w = c.do(http.MethodGet, "/workflow?tab=briefing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pregnancy Planning")
	assert.Contains(t, w.Body.String(), "6 weeks")

	// brief_003 has no downstream records
	w = c.do(http.MethodGet, "/workflow?tab=compliance", nil)
	assert.Contains(t, w.Body.String(), "No compliance record for Pregnancy Planning")
	w = c.do(http.MethodGet, "/workflow?tab=handoff", nil)
	assert.Contains(t, w.Body.String(), "No handoff plan")
	w = c.do(http.MethodGet, "/workflow?tab=analysis", nil)
	assert.Contains(t, w.Body.String(), "Performance analysis will be available after campaign launch")

	// handoff is locked until compliance is approved
	w = c.do(http.MethodPost, "/workflow/handoff/approve", url.Values{})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "compliance must be approved first")

	w = c.do(http.MethodPost, "/workflow/compliance/approve", url.Values{"feedback": {"looks good"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/workflow?tab=handoff", w.Header().Get("Location"))

	w = c.do(http.MethodPost, "/workflow/handoff/approve", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/workflow?tab=analysis", w.Header().Get("Location"))

	w = c.do(http.MethodGet, "/workflow", nil)
	assert.Contains(t, w.Body.String(), "100% complete")

	w = c.do(http.MethodPost, "/workflow/reset", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = c.do(http.MethodGet, "/workflow", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestFixtureComplianceTab(t *testing.T) {
	p, err := provider.LoadFixture(filepath.Join("..", "provider", "testdata", "demo.yaml"))
	require.NoError(t, err)
	c := newClient(t, p)

	c.do(http.MethodPost, "/workflow/start", url.Values{"brief_id": {"brief_001"}})
	w := c.do(http.MethodGet, "/workflow?tab=compliance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "APPROVED_WITH_CHANGES")
	assert.Contains(t, body, "privacy_team")

	w = c.do(http.MethodGet, "/workflow?tab=handoff", nil)
	assert.Contains(t, w.Body.String(), "Ready to Launch")
	assert.Contains(t, w.Body.String(), "Google Ads")
}

func TestUnknownStep(t *testing.T) {
	c := newClient(t, provider.Placeholder{})
	w := c.do(http.MethodPost, "/workflow/launch/approve", url.Values{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
