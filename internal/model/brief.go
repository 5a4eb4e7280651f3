package model

// Brief is the working brief shown on the Briefing tab.
type Brief struct {
    Type     string  `json:"type"`
    Audience string  `json:"audience"`
    Budget   float64 `json:"budget"`
    Timeline string  `json:"timeline"`
    Summary  string  `json:"brief"`
}

// DefaultBrief fills fields a campaign listing doesn't carry.
var DefaultBrief = Brief{
    Type:     "Awareness",
    Audience: "Women 18-35, health-conscious, digital-native",
    Budget:   250000,
    Timeline: "6 weeks",
    Summary:  "Increase awareness, drive feature adoption, and build community. KPIs: CTR > 1.2%, Conversion > 4.5%, ROAS > 3.5x.",
}

// NormalizeBrief takes each field from b, falling back to defaults when it is empty or zero.
func NormalizeBrief(b, defaults Brief) Brief {
    out := b
    if out.Type == "" {
        out.Type = defaults.Type
    }
    if out.Audience == "" {
        out.Audience = defaults.Audience
    }
    if out.Budget == 0 {
        out.Budget = defaults.Budget
    }
    if out.Timeline == "" {
        out.Timeline = defaults.Timeline
    }
    if out.Summary == "" {
        out.Summary = defaults.Summary
    }
    return out
}

// BriefFor derives the working brief for a listed campaign.
func BriefFor(c Campaign) Brief {
    return NormalizeBrief(Brief{Type: c.Type}, DefaultBrief)
}
