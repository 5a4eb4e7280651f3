package model

// Campaign is a brief summary as listed by a provider.
type Campaign struct {
    BriefID            string   `db:"brief_id" json:"brief_id" yaml:"brief_id"`
    BriefTitle         string   `db:"brief_title" json:"brief_title" yaml:"brief_title"`
    CampaignName       string   `db:"campaign_name" json:"campaign_name" yaml:"campaign_name"`
    Type               string   `db:"campaign_type" json:"type" yaml:"type"`
    LifecycleStage     string   `db:"lifecycle_stage" json:"lifecycle_stage,omitempty" yaml:"lifecycle_stage"`
    MedicalConstraints []string `db:"medical_constraints" json:"medical_constraints,omitempty" yaml:"medical_constraints"`
    LegalRequirements  []string `db:"legal_requirements" json:"legal_requirements,omitempty" yaml:"legal_requirements"`
}

// DisplayName prefers the campaign name, then the brief title, then the id.
func (c Campaign) DisplayName() string {
    switch {
    case c.CampaignName != "":
        return c.CampaignName
    case c.BriefTitle != "":
        return c.BriefTitle
    default:
        return c.BriefID
    }
}

// CampaignFilter narrows a listing. Zero value lists everything.
type CampaignFilter struct {
    Type           string `json:"type,omitempty"`
    LifecycleStage string `json:"lifecycle_stage,omitempty"`
}

// Matches reports whether c passes the filter.
func (f CampaignFilter) Matches(c Campaign) bool {
    if f.Type != "" && c.Type != f.Type {
        return false
    }
    if f.LifecycleStage != "" && c.LifecycleStage != f.LifecycleStage {
        return false
    }
    return true
}

// CampaignList is the result of a listing. The zero value is the empty form.
type CampaignList struct {
    Campaigns []Campaign `json:"campaigns"`
    Found     bool       `json:"has_data"`
}

// NewCampaignList marks a list as populated only when it holds campaigns.
func NewCampaignList(campaigns []Campaign) CampaignList {
    return CampaignList{Campaigns: campaigns, Found: len(campaigns) > 0}
}

func (l CampaignList) HasData() bool { return l.Found }

// Get returns the campaign with the given brief id.
func (l CampaignList) Get(briefID string) (Campaign, bool) {
    for _, c := range l.Campaigns {
        if c.BriefID == briefID {
            return c, true
        }
    }
    return Campaign{}, false
}
