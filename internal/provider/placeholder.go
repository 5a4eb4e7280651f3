package provider

import (
	"context"

	"github.com/unclebandit/campaign-workflow/internal/model"
)

// Placeholder serves the empty form of every record. It lets the UI run with
// no external dependencies.
type Placeholder struct{}

func (Placeholder) Kind() Kind { return KindPlaceholder }

func (Placeholder) ListCampaigns(context.Context, model.CampaignFilter) (model.CampaignList, error) {
	return model.CampaignList{}, nil
}

func (Placeholder) GetCompliance(context.Context, string) (model.Compliance, error) {
	return model.Compliance{}, nil
}

func (Placeholder) GetHandoff(context.Context, string) (model.Handoff, error) {
	return model.Handoff{}, nil
}

func (Placeholder) GetAnalysis(context.Context, string) (model.Analysis, error) {
	return model.Analysis{}, nil
}

var _ Provider = Placeholder{}
