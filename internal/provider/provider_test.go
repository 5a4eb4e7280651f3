package provider_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/config"
	"github.com/unclebandit/campaign-workflow/internal/db"
	appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
	"github.com/unclebandit/campaign-workflow/internal/model"
	"github.com/unclebandit/campaign-workflow/internal/provider"
	"github.com/unclebandit/campaign-workflow/internal/repository"
)

func mustConfig(t *testing.T, environ map[string]string) config.Config {
	t.Helper()
	cfg, err := config.Parse(environ)
	require.NoError(t, err)
	return cfg
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		environ map[string]string
		want    provider.Kind
	}{
		{"nothing set", map[string]string{}, provider.KindPlaceholder},
		{"host only", map[string]string{"DATABRICKS_HOST": "adb-1.azuredatabricks.net"}, provider.KindPlaceholder},
		{"token only", map[string]string{"DATABRICKS_TOKEN": "dapi123"}, provider.KindPlaceholder},
		{"blank credentials", map[string]string{"DATABRICKS_HOST": " ", "DATABRICKS_TOKEN": " "}, provider.KindPlaceholder},
		{"host and token", map[string]string{"DATABRICKS_HOST": "adb-1.azuredatabricks.net", "DATABRICKS_TOKEN": "dapi123"}, provider.KindDatabricks},
		{"explicit placeholder beats credentials", map[string]string{
			"DATA_PROVIDER": "placeholder", "DATABRICKS_HOST": "adb-1.azuredatabricks.net", "DATABRICKS_TOKEN": "dapi123",
		}, provider.KindPlaceholder},
		{"explicit databricks without credentials", map[string]string{"DATA_PROVIDER": "databricks"}, provider.KindDatabricks},
		{"explicit is case insensitive", map[string]string{"DATA_PROVIDER": "  Fixture "}, provider.KindFixture},
		{"explicit postgres", map[string]string{"DATA_PROVIDER": "postgres"}, provider.KindPostgres},
		{"explicit sqlite", map[string]string{"DATA_PROVIDER": "sqlite"}, provider.KindSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustConfig(t, tt.environ)
			got, err := provider.Select(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// same snapshot, same answer
			again, err := provider.Select(cfg)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestSelectUnknownProviderFailsFast(t *testing.T) {
	cfg := mustConfig(t, map[string]string{
		"DATA_PROVIDER": "snowflake", "DATABRICKS_HOST": "h", "DATABRICKS_TOKEN": "t",
	})

	_, err := provider.Select(cfg)
	var unknown *appErrors.ErrUnknownProvider
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "snowflake", unknown.Value)

	p, err := provider.New(cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestNewWithNothingConfiguredIsPlaceholder(t *testing.T) {
	p, err := provider.New(mustConfig(t, map[string]string{}), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, provider.KindPlaceholder, p.Kind())
	assert.IsType(t, provider.Placeholder{}, p)
}

func TestNewWithCredentialsIsManagedStore(t *testing.T) {
	p, err := provider.New(mustConfig(t, map[string]string{
		"DATABRICKS_HOST": "https://adb-1.azuredatabricks.net", "DATABRICKS_TOKEN": "dapi123",
	}), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, provider.KindDatabricks, p.Kind())
	assert.IsType(t, &provider.Warehouse{}, p)
}

func TestPlaceholderReturnsEmptyForms(t *testing.T) {
	ctx := context.Background()
	p := provider.Placeholder{}

	list, err := p.ListCampaigns(ctx, model.CampaignFilter{Type: "Retention"})
	require.NoError(t, err)
	assert.Equal(t, model.CampaignList{}, list)
	assert.False(t, list.HasData())

	for _, id := range []string{"", "brief_001", "does-not-exist"} {
		c, err := p.GetCompliance(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.Compliance{}, c)
		assert.False(t, c.HasData())

		h, err := p.GetHandoff(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.Handoff{}, h)
		assert.False(t, h.HasData())

		a, err := p.GetAnalysis(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.Analysis{}, a)
		assert.False(t, a.HasData())
	}
}

func TestDatabricksWithoutWarehouseFailsLoudly(t *testing.T) {
	p, err := provider.New(mustConfig(t, map[string]string{
		"DATABRICKS_HOST": "adb-1.azuredatabricks.net", "DATABRICKS_TOKEN": "dapi123",
	}), zap.NewNop())
	require.NoError(t, err)

	_, err = p.GetCompliance(context.Background(), "brief_001")
	var notConfigured *appErrors.ErrStoreNotConfigured
	require.True(t, errors.As(err, &notConfigured), "got %v", err)
	assert.Equal(t, "databricks", notConfigured.Provider)
	assert.True(t, appErrors.IsStoreError(err))
}

func TestDatabricksTablesAreCatalogQualified(t *testing.T) {
	w := provider.NewDatabricks(mustConfig(t, map[string]string{
		"DATABRICKS_CATALOG": "main", "DATABRICKS_SCHEMA": "flo_martech", "COMPLIANCE_TABLE": "compliance_v2",
	}), zap.NewNop())
	assert.Equal(t, "main.flo_martech.campaign_briefs", w.Tables().Campaigns)
	assert.Equal(t, "main.flo_martech.compliance_v2", w.Tables().Compliance)
}

func TestFixtureProvider(t *testing.T) {
	ctx := context.Background()
	p, err := provider.LoadFixture(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)

	list, err := p.ListCampaigns(ctx, model.CampaignFilter{})
	require.NoError(t, err)
	require.True(t, list.HasData())
	require.Len(t, list.Campaigns, 3)

	want := model.Campaign{
		BriefID:            "brief_002",
		BriefTitle:         "Menopause Support - Retention Campaign",
		CampaignName:       "Menopause Support - Retention Campaign",
		Type:               "Retention",
		LifecycleStage:     "menopause",
		MedicalConstraints: []string{"No hormone therapy promotion", "Avoid medical diagnosis claims"},
		LegalRequirements:  []string{"Medical disclaimer visible", "Privacy policy link", "Safe data handling"},
	}
	if diff := cmp.Diff(want, list.Campaigns[1]); diff != "" {
		t.Errorf("campaign mismatch (-want +got):\n%s", diff)
	}

	retention, err := p.ListCampaigns(ctx, model.CampaignFilter{Type: "Retention"})
	require.NoError(t, err)
	require.Len(t, retention.Campaigns, 1)

	c, err := p.GetCompliance(ctx, "brief_001")
	require.NoError(t, err)
	assert.True(t, c.HasData())
	assert.Equal(t, 89.6, c.Scores.Overall)
	require.NotNil(t, c.Creative)
	assert.True(t, c.Creative.HasImage())

	h, err := p.GetHandoff(ctx, "brief_003")
	require.NoError(t, err)
	assert.False(t, h.HasData())

	a, err := p.GetAnalysis(ctx, "brief_001")
	require.NoError(t, err)
	assert.Len(t, a.Metrics, 3)
	assert.Len(t, a.NextIteration, 2)
}

func TestFixtureRejectsUnknownKeys(t *testing.T) {
	_, err := provider.LoadFixture(filepath.Join("testdata", "bad.yaml"))
	assert.Error(t, err)
}

func TestSQLiteWarehouse(t *testing.T) {
	ctx := context.Background()
	cfg := mustConfig(t, map[string]string{
		"DATA_PROVIDER": "sqlite",
		"SQLITE_PATH":   filepath.Join(t.TempDir(), "campaigns.db"),
	})
	p, err := provider.New(cfg, zap.NewNop())
	require.NoError(t, err)
	w := p.(*provider.Warehouse)
	t.Cleanup(func() { w.Close() })

	conn, err := w.Conn(ctx)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx, conn, db.SQLite, w.Tables()))

	campaigns := &repository.CampaignRepository{DB: conn, Dialect: db.SQLite, Table: w.Tables().Campaigns}
	require.NoError(t, campaigns.Create(ctx, model.Campaign{BriefID: "brief_001", CampaignName: "Awareness", Type: "Acquisition"}))

	compliance := &repository.ComplianceRepository{DB: conn, Dialect: db.SQLite, Table: w.Tables().Compliance, CreativesTable: w.Tables().Creatives}
	// a reviewed record whose scores are all zero is still data
	require.NoError(t, compliance.Create(ctx, model.Compliance{BriefID: "brief_001", ApprovalStatus: "REJECTED"}))

	list, err := p.ListCampaigns(ctx, model.CampaignFilter{})
	require.NoError(t, err)
	assert.True(t, list.HasData())
	assert.Len(t, list.Campaigns, 1)

	c, err := p.GetCompliance(ctx, "brief_001")
	require.NoError(t, err)
	assert.True(t, c.HasData())
	assert.Zero(t, c.Scores)
	assert.Nil(t, c.Creative)

	missing, err := p.GetCompliance(ctx, "brief_404")
	require.NoError(t, err)
	assert.False(t, missing.HasData())

	h, err := p.GetHandoff(ctx, "brief_001")
	require.NoError(t, err)
	assert.False(t, h.HasData())
}

func TestSQLiteWarehouseQueryErrorIsStoreError(t *testing.T) {
	cfg := mustConfig(t, map[string]string{
		"DATA_PROVIDER": "sqlite",
		"SQLITE_PATH":   filepath.Join(t.TempDir(), "empty.db"),
	})
	p, err := provider.New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { p.(*provider.Warehouse).Close() })

	// tables were never created
	_, err = p.GetAnalysis(context.Background(), "brief_001")
	var unavailable *appErrors.ErrStoreUnavailable
	require.True(t, errors.As(err, &unavailable), "got %v", err)
	assert.Equal(t, "get analysis", unavailable.Operation)
}

func TestSeedWarehouseFromFixture(t *testing.T) {
	ctx := context.Background()
	cfg := mustConfig(t, map[string]string{
		"DATA_PROVIDER": "sqlite",
		"SQLITE_PATH":   filepath.Join(t.TempDir(), "seeded.db"),
	})
	w := provider.NewSQLite(cfg, zap.NewNop())
	t.Cleanup(func() { w.Close() })

	data, err := provider.ReadFixture(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)
	require.NoError(t, w.Migrate(ctx))
	require.NoError(t, w.Seed(ctx, data))

	fixture := provider.NewFixture(data)
	for _, id := range []string{"brief_001", "brief_002", "brief_003"} {
		want, err := fixture.GetHandoff(ctx, id)
		require.NoError(t, err)
		got, err := w.GetHandoff(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want.HasData(), got.HasData(), id)
		assert.Equal(t, want.BudgetAllocation, got.BudgetAllocation, id)
	}

	c, err := w.GetCompliance(ctx, "brief_001")
	require.NoError(t, err)
	require.NotNil(t, c.Creative)
	assert.Equal(t, "/Volumes/martech/creatives/brief_001_v3.png", c.Creative.ImagePath)

	events, err := w.ApprovalEvents(ctx)
	require.NoError(t, err)
	require.NoError(t, events.Record(ctx, model.ApprovalEvent{ID: "evt-1", BriefID: "brief_001", Step: "compliance", Decision: model.DecisionApproved}))
	recorded, err := events.ListByBrief(ctx, "brief_001")
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}

func TestEventRecorderConnectsOnFirstRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")
	cfg := mustConfig(t, map[string]string{"DATA_PROVIDER": "sqlite", "SQLITE_PATH": path})
	w := provider.NewSQLite(cfg, zap.NewNop())
	t.Cleanup(func() { w.Close() })

	recorder := provider.EventRecorder{Warehouse: w}
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "store opened before any event")

	ctx := context.Background()
	require.NoError(t, w.Migrate(ctx))
	require.NoError(t, recorder.Record(ctx, model.ApprovalEvent{ID: "evt-1", BriefID: "brief_001", Step: "briefing", Decision: model.DecisionApproved}))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestEventRecorderRecoversAfterFailedConnect(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	cfg := mustConfig(t, map[string]string{"DATA_PROVIDER": "sqlite", "SQLITE_PATH": filepath.Join(dir, "events.db")})
	w := provider.NewSQLite(cfg, zap.NewNop())
	t.Cleanup(func() { w.Close() })

	ctx := context.Background()
	recorder := provider.EventRecorder{Warehouse: w}
	event := model.ApprovalEvent{ID: "evt-1", BriefID: "brief_001", Step: "compliance", Decision: model.DecisionApproved}

	err := recorder.Record(ctx, event)
	var unavailable *appErrors.ErrStoreUnavailable
	require.True(t, errors.As(err, &unavailable), "got %v", err)
	assert.Equal(t, "connect", unavailable.Operation)

	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, w.Migrate(ctx))
	require.NoError(t, recorder.Record(ctx, event))

	events, err := w.ApprovalEvents(ctx)
	require.NoError(t, err)
	recorded, err := events.ListByBrief(ctx, "brief_001")
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "evt-1", recorded[0].ID)
}
