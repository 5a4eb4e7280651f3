package provider

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/config"
	"github.com/unclebandit/campaign-workflow/internal/db"
	appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
	"github.com/unclebandit/campaign-workflow/internal/model"
	"github.com/unclebandit/campaign-workflow/internal/repository"
)

// Opener establishes the store connection on first use.
type Opener func(ctx context.Context) (*sql.DB, error)

// Warehouse serves records from SQL tables in a governed catalog. The same
// queries run against Databricks, a Postgres mirror or a local SQLite file.
type Warehouse struct {
	kind    Kind
	dialect db.Dialect
	tables  db.Tables
	open    Opener
	log     *zap.Logger

	mu         sync.Mutex
	conn       *sql.DB
	campaigns  repository.CampaignRepositoryInterface
	compliance repository.ComplianceRepositoryInterface
	handoff    repository.HandoffRepositoryInterface
	analysis   repository.AnalysisRepositoryInterface
}

func NewWarehouse(kind Kind, dialect db.Dialect, tables db.Tables, open Opener, log *zap.Logger) *Warehouse {
	return &Warehouse{kind: kind, dialect: dialect, tables: tables, open: open, log: log}
}

// NewDatabricks reads from catalog.schema tables through a SQL warehouse.
func NewDatabricks(cfg config.Config, log *zap.Logger) *Warehouse {
	dbx := cfg.Databricks
	namespace := []string{}
	if dbx.Schema != "" {
		namespace = append(namespace, dbx.Catalog, dbx.Schema)
	}
	httpPath := cfg.HTTPPath()

	open := func(ctx context.Context) (*sql.DB, error) {
		missing := []string{}
		if dbx.Host == "" {
			missing = append(missing, "DATABRICKS_HOST")
		}
		if dbx.Token == "" {
			missing = append(missing, "DATABRICKS_TOKEN")
		}
		if httpPath == "" {
			missing = append(missing, "DATABRICKS_HTTP_PATH or DATABRICKS_WAREHOUSE_ID")
		}
		if len(missing) > 0 {
			return nil, appErrors.NewStoreNotConfigured(string(KindDatabricks), missing...)
		}
		return db.OpenDatabricks(ctx, dbx.Host, dbx.Token, httpPath, dbx.Catalog, dbx.Schema, log)
	}
	return NewWarehouse(KindDatabricks, db.Databricks, db.Qualify(cfg.Tables, namespace...), open, log)
}

// NewPostgres reads from a Postgres-compatible mirror configured with DB_*.
func NewPostgres(cfg config.Config, log *zap.Logger) *Warehouse {
	pg := cfg.Postgres
	open := func(ctx context.Context) (*sql.DB, error) {
		missing := []string{}
		if pg.Host == "" {
			missing = append(missing, "DB_HOST")
		}
		if pg.Name == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return nil, appErrors.NewStoreNotConfigured(string(KindPostgres), missing...)
		}
		return db.OpenPostgres(ctx, pg, log)
	}
	return NewWarehouse(KindPostgres, db.Postgres, db.Qualify(cfg.Tables, pg.Schema), open, log)
}

// NewSQLite reads from a local database file.
func NewSQLite(cfg config.Config, log *zap.Logger) *Warehouse {
	path := cfg.SQLitePath
	open := func(ctx context.Context) (*sql.DB, error) {
		if path == "" {
			return nil, appErrors.NewStoreNotConfigured(string(KindSQLite), "SQLITE_PATH")
		}
		return db.OpenSQLite(ctx, path)
	}
	return NewWarehouse(KindSQLite, db.SQLite, db.Qualify(cfg.Tables), open, log)
}

func (w *Warehouse) Kind() Kind { return w.kind }

// Tables returns the qualified table names queried by this provider.
func (w *Warehouse) Tables() db.Tables { return w.tables }

// ensureConn opens the connection once. A failed attempt is retried on the next call.
func (w *Warehouse) ensureConn(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn != nil {
		return nil
	}

	conn, err := w.open(ctx)
	if err != nil {
		var notConfigured *appErrors.ErrStoreNotConfigured
		if errors.As(err, &notConfigured) {
			return err
		}
		return appErrors.NewStoreUnavailable(string(w.kind), "connect", err)
	}

	w.conn = conn
	w.campaigns = &repository.CampaignRepository{DB: conn, Dialect: w.dialect, Table: w.tables.Campaigns}
	w.compliance = &repository.ComplianceRepository{DB: conn, Dialect: w.dialect, Table: w.tables.Compliance, CreativesTable: w.tables.Creatives}
	w.handoff = &repository.HandoffRepository{DB: conn, Dialect: w.dialect, Table: w.tables.Handoff}
	w.analysis = &repository.AnalysisRepository{DB: conn, Dialect: w.dialect, Table: w.tables.Analysis}
	return nil
}

// Conn returns the underlying connection, opening it if needed.
func (w *Warehouse) Conn(ctx context.Context) (*sql.DB, error) {
	if err := w.ensureConn(ctx); err != nil {
		return nil, err
	}
	return w.conn, nil
}

// Migrate creates the provider's tables if they are missing.
func (w *Warehouse) Migrate(ctx context.Context) error {
	conn, err := w.Conn(ctx)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, conn, w.dialect, w.tables); err != nil {
		return appErrors.NewStoreUnavailable(string(w.kind), "migrate", err)
	}
	return nil
}

// ApprovalEvents returns the repository for the publish events table.
func (w *Warehouse) ApprovalEvents(ctx context.Context) (*repository.ApprovalEventRepository, error) {
	conn, err := w.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &repository.ApprovalEventRepository{DB: conn, Dialect: w.dialect, Table: w.tables.Events}, nil
}

// EventRecorder writes approval events to the publish events table. The
// store is opened on the first Record, and a failed open is retried on the next.
type EventRecorder struct {
	Warehouse *Warehouse
}

func (r EventRecorder) Record(ctx context.Context, e model.ApprovalEvent) error {
	events, err := r.Warehouse.ApprovalEvents(ctx)
	if err != nil {
		return err
	}
	return events.Record(ctx, e)
}

// Seed writes fixture records through the provider's repositories.
func (w *Warehouse) Seed(ctx context.Context, data *FixtureData) error {
	if err := w.ensureConn(ctx); err != nil {
		return err
	}
	for _, c := range data.Campaigns {
		if err := w.campaigns.Create(ctx, c); err != nil {
			return appErrors.NewStoreUnavailable(string(w.kind), "seed campaign "+c.BriefID, err)
		}
	}
	for _, c := range data.Compliance {
		if err := w.compliance.Create(ctx, c); err != nil {
			return appErrors.NewStoreUnavailable(string(w.kind), "seed compliance "+c.BriefID, err)
		}
	}
	for _, h := range data.Handoff {
		if err := w.handoff.Create(ctx, h); err != nil {
			return appErrors.NewStoreUnavailable(string(w.kind), "seed handoff "+h.BriefID, err)
		}
	}
	for _, a := range data.Analysis {
		if err := w.analysis.Create(ctx, a); err != nil {
			return appErrors.NewStoreUnavailable(string(w.kind), "seed analysis "+a.BriefID, err)
		}
	}
	w.log.Info("store seeded",
		zap.String("provider", string(w.kind)),
		zap.Int("campaigns", len(data.Campaigns)),
		zap.Int("compliance", len(data.Compliance)),
		zap.Int("handoff", len(data.Handoff)),
		zap.Int("analysis", len(data.Analysis)),
	)
	return nil
}

func (w *Warehouse) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.conn == nil {
		return nil
	}
	err := w.conn.Close()
	w.conn = nil
	return err
}

func (w *Warehouse) observe(op, briefID string, started time.Time, err error) error {
	fields := []zap.Field{
		zap.String("provider", string(w.kind)),
		zap.String("op", op),
		zap.Duration("elapsed", time.Since(started)),
	}
	if briefID != "" {
		fields = append(fields, zap.String("brief_id", briefID))
	}
	if err != nil {
		w.log.Warn("store query failed", append(fields, zap.Error(err))...)
		return appErrors.NewStoreUnavailable(string(w.kind), op, err)
	}
	w.log.Debug("store query", fields...)
	return nil
}

func (w *Warehouse) ListCampaigns(ctx context.Context, filter model.CampaignFilter) (model.CampaignList, error) {
	if err := w.ensureConn(ctx); err != nil {
		return model.CampaignList{}, err
	}
	started := time.Now()
	campaigns, err := w.campaigns.ListCampaigns(ctx, filter)
	if err := w.observe("list campaigns", "", started, err); err != nil {
		return model.CampaignList{}, err
	}
	return model.NewCampaignList(campaigns), nil
}

func (w *Warehouse) GetCompliance(ctx context.Context, briefID string) (model.Compliance, error) {
	if err := w.ensureConn(ctx); err != nil {
		return model.Compliance{}, err
	}
	started := time.Now()
	c, err := w.compliance.GetLatest(ctx, briefID)
	if err := w.observe("get compliance", briefID, started, err); err != nil {
		return model.Compliance{}, err
	}
	if !c.HasData() {
		return c, nil
	}

	started = time.Now()
	creative, err := w.compliance.GetLatestCreative(ctx, briefID)
	if err := w.observe("get creative", briefID, started, err); err != nil {
		return model.Compliance{}, err
	}
	c.Creative = creative
	return c, nil
}

func (w *Warehouse) GetHandoff(ctx context.Context, briefID string) (model.Handoff, error) {
	if err := w.ensureConn(ctx); err != nil {
		return model.Handoff{}, err
	}
	started := time.Now()
	h, err := w.handoff.GetLatest(ctx, briefID)
	if err := w.observe("get handoff", briefID, started, err); err != nil {
		return model.Handoff{}, err
	}
	return h, nil
}

func (w *Warehouse) GetAnalysis(ctx context.Context, briefID string) (model.Analysis, error) {
	if err := w.ensureConn(ctx); err != nil {
		return model.Analysis{}, err
	}
	started := time.Now()
	a, err := w.analysis.GetLatest(ctx, briefID)
	if err := w.observe("get analysis", briefID, started, err); err != nil {
		return model.Analysis{}, err
	}
	return a, nil
}

var _ Provider = (*Warehouse)(nil)
