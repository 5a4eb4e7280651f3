// Package provider is the data access seam between the UI and whatever store
// holds campaign data. Exactly one Provider is built per process.
package provider

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/config"
	appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
	"github.com/unclebandit/campaign-workflow/internal/model"
)

// Kind names a provider implementation.
type Kind string

const (
	KindPlaceholder Kind = "placeholder"
	KindDatabricks  Kind = "databricks"
	KindPostgres    Kind = "postgres"
	KindSQLite      Kind = "sqlite"
	KindFixture     Kind = "fixture"
)

// Kinds lists every provider we ship.
func Kinds() []Kind {
	return []Kind{KindPlaceholder, KindDatabricks, KindPostgres, KindSQLite, KindFixture}
}

// Provider reads campaign records. Absence is reported with the record's empty
// form and a nil error; errors mean the store itself failed.
type Provider interface {
	Kind() Kind
	ListCampaigns(ctx context.Context, filter model.CampaignFilter) (model.CampaignList, error)
	GetCompliance(ctx context.Context, briefID string) (model.Compliance, error)
	GetHandoff(ctx context.Context, briefID string) (model.Handoff, error)
	GetAnalysis(ctx context.Context, briefID string) (model.Analysis, error)
}

// Select decides which provider the configuration asks for. An explicit
// DATA_PROVIDER wins; otherwise Databricks credentials select the managed store.
func Select(cfg config.Config) (Kind, error) {
	if explicit := strings.ToLower(strings.TrimSpace(cfg.DataProvider)); explicit != "" {
		for _, k := range Kinds() {
			if Kind(explicit) == k {
				return k, nil
			}
		}
		return "", appErrors.NewUnknownProvider(cfg.DataProvider)
	}
	if cfg.HasDatabricksCredentials() {
		return KindDatabricks, nil
	}
	return KindPlaceholder, nil
}

// New builds the selected provider. Store-backed providers connect lazily.
func New(cfg config.Config, log *zap.Logger) (Provider, error) {
	kind, err := Select(cfg)
	if err != nil {
		return nil, err
	}

	var p Provider
	switch kind {
	case KindDatabricks:
		p = NewDatabricks(cfg, log)
	case KindPostgres:
		p = NewPostgres(cfg, log)
	case KindSQLite:
		p = NewSQLite(cfg, log)
	case KindFixture:
		p, err = LoadFixture(cfg.FixturePath)
		if err != nil {
			return nil, err
		}
	default:
		p = Placeholder{}
	}

	log.Info("data provider selected",
		zap.String("provider", string(kind)),
		zap.Bool("explicit", strings.TrimSpace(cfg.DataProvider) != ""),
	)
	return p, nil
}
