package model

import (
    "strings"
    "time"
)

// Step is a stage of the campaign workflow, in order.
type Step int

const (
    StepBriefing Step = iota
    StepProduction
    StepCompliance
    StepHandoff
    StepAnalysis
    StepDone
)

var stepNames = []string{"briefing", "production", "compliance", "handoff", "analysis"}

// Steps lists the tabs in display order.
func Steps() []Step {
    return []Step{StepBriefing, StepProduction, StepCompliance, StepHandoff, StepAnalysis}
}

func (s Step) String() string {
    if s < 0 || int(s) >= len(stepNames) {
        return "done"
    }
    return stepNames[s]
}

// Title is the tab label.
func (s Step) Title() string {
    name := s.String()
    return strings.ToUpper(name[:1]) + name[1:]
}

// ParseStep accepts the lower-case step name.
func ParseStep(name string) (Step, bool) {
    name = strings.ToLower(strings.TrimSpace(name))
    for i, n := range stepNames {
        if n == name {
            return Step(i), true
        }
    }
    return 0, false
}

// Approval decisions.
const (
    DecisionApproved         = "approved"
    DecisionChangesRequested = "changes_requested"
)

type Approval struct {
    Decision string    `json:"decision"`
    Feedback string    `json:"feedback,omitempty"`
    At       time.Time `json:"at"`
}

// WorkflowState is the per-session progress through the steps.
type WorkflowState struct {
    SessionID string            `json:"session_id"`
    BriefID   string            `json:"brief_id,omitempty"`
    Started   bool              `json:"started"`
    Step      Step              `json:"step"`
    Approvals map[Step]Approval `json:"approvals,omitempty"`
    UpdatedAt time.Time         `json:"updated_at"`
}

// Approved reports whether the step has a standing approval.
func (w WorkflowState) Approved(s Step) bool {
    a, ok := w.Approvals[s]
    return ok && a.Decision == DecisionApproved
}

// Progress is the completed fraction of the workflow, 0..100.
func (w WorkflowState) Progress() int {
    step := int(w.Step)
    if step < 0 {
        step = 0
    }
    if step > int(StepDone) {
        step = int(StepDone)
    }
    return step * 100 / int(StepDone)
}

// ApprovalEvent is published for every approval decision.
type ApprovalEvent struct {
    ID        string    `json:"event_id"`
    SessionID string    `json:"session_id"`
    BriefID   string    `json:"brief_id"`
    Step      string    `json:"step"`
    Decision  string    `json:"decision"`
    Feedback  string    `json:"feedback,omitempty"`
    At        time.Time `json:"event_ts"`
}
