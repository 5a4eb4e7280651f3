package provider

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/unclebandit/campaign-workflow/internal/model"
)

// FixtureData is the on-disk demo dataset, one list per logical table.
type FixtureData struct {
	Campaigns  []model.Campaign   `yaml:"campaigns"`
	Compliance []model.Compliance `yaml:"compliance"`
	Handoff    []model.Handoff    `yaml:"handoff"`
	Analysis   []model.Analysis   `yaml:"analysis"`
}

// ReadFixture decodes a YAML dataset. Unknown keys are rejected.
func ReadFixture(path string) (*FixtureData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	var data FixtureData
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	return &data, nil
}

// Fixture serves a dataset held in memory. Later entries for the same brief win.
type Fixture struct {
	campaigns  []model.Campaign
	compliance map[string]model.Compliance
	handoff    map[string]model.Handoff
	analysis   map[string]model.Analysis
}

// LoadFixture reads path and indexes it by brief id.
func LoadFixture(path string) (*Fixture, error) {
	data, err := ReadFixture(path)
	if err != nil {
		return nil, err
	}
	return NewFixture(data), nil
}

func NewFixture(data *FixtureData) *Fixture {
	f := &Fixture{
		campaigns:  append([]model.Campaign(nil), data.Campaigns...),
		compliance: map[string]model.Compliance{},
		handoff:    map[string]model.Handoff{},
		analysis:   map[string]model.Analysis{},
	}
	for _, c := range data.Compliance {
		c.Found = true
		f.compliance[c.BriefID] = c
	}
	for _, h := range data.Handoff {
		h.Found = true
		f.handoff[h.BriefID] = h
	}
	for _, a := range data.Analysis {
		a.Found = true
		f.analysis[a.BriefID] = a
	}
	return f
}

func (f *Fixture) Kind() Kind { return KindFixture }

func (f *Fixture) ListCampaigns(_ context.Context, filter model.CampaignFilter) (model.CampaignList, error) {
	var out []model.Campaign
	for _, c := range f.campaigns {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	return model.NewCampaignList(out), nil
}

func (f *Fixture) GetCompliance(_ context.Context, briefID string) (model.Compliance, error) {
	return f.compliance[briefID], nil
}

func (f *Fixture) GetHandoff(_ context.Context, briefID string) (model.Handoff, error) {
	return f.handoff[briefID], nil
}

func (f *Fixture) GetAnalysis(_ context.Context, briefID string) (model.Analysis, error) {
	return f.analysis[briefID], nil
}

var _ Provider = (*Fixture)(nil)
