package service

import (
    "strings"
    "time"

    "github.com/unclebandit/campaign-workflow/internal/model"
)

const checklistPending = "pending_approval"

var categoryAssignees = map[string]string{
    "medical/legal":             "legal_team",
    "medical/legal compliance":  "legal_team",
    "privacy":                   "privacy_team",
    "privacy & data protection": "privacy_team",
    "brand":                     "brand_team",
    "brand guidelines":          "brand_team",
    "accessibility":             "qa_team",
    "content":                   "content_team",
    "content quality":           "content_team",
}

// AssigneeForCategory maps an issue category to the team that signs it off.
func AssigneeForCategory(category string) string {
    if team, ok := categoryAssignees[strings.ToLower(strings.TrimSpace(category))]; ok {
        return team
    }
    return "compliance_team"
}

type ChecklistItem struct {
    Category       string    `json:"category"`
    Issue          string    `json:"issue"`
    Severity       string    `json:"severity"`
    Recommendation string    `json:"recommendation,omitempty"`
    Assignee       string    `json:"assignee"`
    Status         string    `json:"status"`
    DueDate        time.Time `json:"due_date"`
}

type ApprovalChecklist struct {
    BriefID      string          `json:"brief_id,omitempty"`
    CampaignName string          `json:"campaign_name,omitempty"`
    TotalItems   int             `json:"total_items"`
    Items        []ChecklistItem `json:"items"`
}

// BuildApprovalChecklist lists every CRITICAL or HIGH issue with its owner.
// An empty compliance record yields an empty checklist.
func BuildApprovalChecklist(c model.Compliance, now time.Time) ApprovalChecklist {
    out := ApprovalChecklist{BriefID: c.BriefID, CampaignName: c.CampaignName, Items: []ChecklistItem{}}
    if !c.HasData() {
        return out
    }
    for _, issue := range c.Issues {
        if !issue.Blocking() {
            continue
        }
        out.Items = append(out.Items, ChecklistItem{
            Category:       issue.Category,
            Issue:          issue.Issue,
            Severity:       strings.ToUpper(strings.TrimSpace(issue.Severity)),
            Recommendation: issue.Recommendation,
            Assignee:       AssigneeForCategory(issue.Category),
            Status:         checklistPending,
            DueDate:        now.UTC().Truncate(time.Second),
        })
    }
    out.TotalItems = len(out.Items)
    return out
}
