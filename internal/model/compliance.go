package model

import (
    "strings"
    "time"
)

// Issue severities that require a sign-off before launch.
const (
    SeverityCritical = "CRITICAL"
    SeverityHigh     = "HIGH"
)

// Scores are the weighted compliance areas plus the reviewer's confidence.
type Scores struct {
    MedicalLegal  float64 `json:"medical_legal" yaml:"medical_legal"`
    Privacy       float64 `json:"privacy" yaml:"privacy"`
    Brand         float64 `json:"brand" yaml:"brand"`
    Accessibility float64 `json:"accessibility" yaml:"accessibility"`
    Content       float64 `json:"content" yaml:"content"`
    Overall       float64 `json:"overall" yaml:"overall"`
    Confidence    float64 `json:"confidence" yaml:"confidence"`
}

type Issue struct {
    Category       string `json:"category" yaml:"category"`
    Issue          string `json:"issue" yaml:"issue"`
    Severity       string `json:"severity" yaml:"severity"`
    Recommendation string `json:"recommendation,omitempty" yaml:"recommendation"`
}

// Blocking reports whether the issue needs an explicit approver.
func (i Issue) Blocking() bool {
    s := strings.ToUpper(strings.TrimSpace(i.Severity))
    return s == SeverityCritical || s == SeverityHigh
}

// Creative is the latest generated asset for a brief.
type Creative struct {
    ImagePath    string     `json:"image_path,omitempty" yaml:"image_path"`
    ImageB64     string     `json:"image_b64,omitempty" yaml:"image_b64"`
    ExpertPrompt string     `json:"expert_prompt,omitempty" yaml:"expert_prompt"`
    GeneratedAt  *time.Time `json:"generated_at,omitempty" yaml:"generated_at"`
}

// HasImage reports whether the creative can be rendered inline or linked.
func (c *Creative) HasImage() bool {
    return c != nil && (c.ImageB64 != "" || c.ImagePath != "")
}

// Compliance is the latest review decision for a brief. The zero value is the empty form.
type Compliance struct {
    BriefID             string     `json:"brief_id,omitempty" yaml:"brief_id"`
    CampaignName        string     `json:"campaign_name,omitempty" yaml:"campaign_name"`
    Scores              Scores     `json:"scores" yaml:"scores"`
    ApprovalStatus      string     `json:"approval_status,omitempty" yaml:"approval_status"`
    FinalRecommendation string     `json:"final_recommendation,omitempty" yaml:"final_recommendation"`
    ReviewedAt          *time.Time `json:"reviewed_at,omitempty" yaml:"reviewed_at"`
    ReviewedBy          string     `json:"reviewed_by,omitempty" yaml:"reviewed_by"`
    Issues              []Issue    `json:"issues,omitempty" yaml:"issues"`
    Creative            *Creative  `json:"creative,omitempty" yaml:"creative"`
    Found               bool       `json:"has_data" yaml:"-"`
}

func (c Compliance) HasData() bool { return c.Found }

// CountBySeverity tallies issues by upper-cased severity.
func (c Compliance) CountBySeverity() map[string]int {
    counts := map[string]int{}
    for _, i := range c.Issues {
        counts[strings.ToUpper(strings.TrimSpace(i.Severity))]++
    }
    return counts
}
