package service

import (
    "context"
    "time"

    "github.com/google/uuid"
    "go.uber.org/zap"

    appErrors "github.com/unclebandit/campaign-workflow/internal/errors"
    "github.com/unclebandit/campaign-workflow/internal/model"
    "github.com/unclebandit/campaign-workflow/internal/queue"
    "github.com/unclebandit/campaign-workflow/internal/repository"
)

// WorkflowService moves a session through the campaign steps.
type WorkflowService struct {
    Sessions repository.SessionRepositoryInterface
    Queue    queue.Queue
    Topic    string
    Log      *zap.Logger
    Now      func() time.Time
}

func NewWorkflowService(sessions repository.SessionRepositoryInterface, q queue.Queue, topic string, log *zap.Logger) *WorkflowService {
    return &WorkflowService{Sessions: sessions, Queue: q, Topic: topic, Log: log, Now: time.Now}
}

// State returns the session's progress; an unknown session is not started.
func (s *WorkflowService) State(sessionID string) model.WorkflowState {
    state, ok := s.Sessions.Get(sessionID)
    if !ok {
        return model.WorkflowState{SessionID: sessionID}
    }
    return state
}

// Start begins a workflow for a brief, discarding earlier progress.
func (s *WorkflowService) Start(sessionID, briefID string) (model.WorkflowState, error) {
    if briefID == "" {
        return model.WorkflowState{}, appErrors.NewInvalidTransition(model.StepBriefing.String(), "no campaign selected")
    }
    state := model.WorkflowState{
        SessionID: sessionID,
        BriefID:   briefID,
        Started:   true,
        Step:      model.StepBriefing,
        Approvals: map[model.Step]model.Approval{},
        UpdatedAt: s.Now().UTC(),
    }
    s.Sessions.Save(state)
    s.Log.Info("workflow started", zap.String("session_id", sessionID), zap.String("brief_id", briefID))
    return state, nil
}

// Reset returns the session to the intro page.
func (s *WorkflowService) Reset(sessionID string) {
    s.Sessions.Delete(sessionID)
}

func (s *WorkflowService) Approve(ctx context.Context, sessionID string, step model.Step, feedback string) (model.WorkflowState, error) {
    return s.Decide(ctx, sessionID, step, model.DecisionApproved, feedback)
}

func (s *WorkflowService) RequestChanges(ctx context.Context, sessionID string, step model.Step, feedback string) (model.WorkflowState, error) {
    return s.Decide(ctx, sessionID, step, model.DecisionChangesRequested, feedback)
}

// Decide records an approval decision for a step and publishes it.
//
// Approving a step moves the session past it; approving Handoff completes the
// workflow. Requesting changes revokes that step's approval and every later
// one, and sends the session back to the step.
func (s *WorkflowService) Decide(ctx context.Context, sessionID string, step model.Step, decision, feedback string) (model.WorkflowState, error) {
    state, ok := s.Sessions.Get(sessionID)
    if !ok || !state.Started {
        return model.WorkflowState{}, appErrors.NewInvalidTransition(step.String(), "workflow not started")
    }
    if step < model.StepBriefing || step >= model.StepAnalysis {
        return state, appErrors.NewInvalidTransition(step.String(), "step does not take approvals")
    }
    if step == model.StepHandoff && !state.Approved(model.StepCompliance) {
        return state, appErrors.NewInvalidTransition(step.String(), "compliance must be approved first")
    }
    if state.Approvals == nil {
        state.Approvals = map[model.Step]model.Approval{}
    }

    now := s.Now().UTC()
    switch decision {
    case model.DecisionApproved:
        state.Approvals[step] = model.Approval{Decision: decision, Feedback: feedback, At: now}
        next := step + 1
        if step == model.StepHandoff {
            next = model.StepDone
        }
        if next > state.Step {
            state.Step = next
        }
    case model.DecisionChangesRequested:
        for later := range state.Approvals {
            if later > step {
                delete(state.Approvals, later)
            }
        }
        state.Approvals[step] = model.Approval{Decision: decision, Feedback: feedback, At: now}
        if state.Step > step {
            state.Step = step
        }
    default:
        return state, appErrors.NewInvalidTransition(step.String(), "unknown decision "+decision)
    }
    state.UpdatedAt = now
    s.Sessions.Save(state)

    s.publish(ctx, model.ApprovalEvent{
        ID:        uuid.NewString(),
        SessionID: sessionID,
        BriefID:   state.BriefID,
        Step:      step.String(),
        Decision:  decision,
        Feedback:  feedback,
        At:        now,
    })
    return state, nil
}

// publish is best effort: the decision stands even when the queue is down.
func (s *WorkflowService) publish(ctx context.Context, e model.ApprovalEvent) {
    fields := []zap.Field{
        zap.String("event_id", e.ID),
        zap.String("brief_id", e.BriefID),
        zap.String("step", e.Step),
        zap.String("decision", e.Decision),
    }
    if s.Queue == nil {
        s.Log.Warn("approval not published: no queue", fields...)
        return
    }
    if err := ctx.Err(); err != nil {
        s.Log.Warn("approval not published", append(fields, zap.Error(err))...)
        return
    }
    if err := s.Queue.Publish(s.Topic, e); err != nil {
        s.Log.Error("approval publish failed", append(fields, zap.Error(err))...)
        return
    }
    s.Log.Info("approval published", fields...)
}
