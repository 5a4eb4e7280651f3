package repository

import (
    "sync"

    "github.com/unclebandit/campaign-workflow/internal/model"
)

type SessionRepositoryInterface interface {
    Get(sessionID string) (model.WorkflowState, bool)
    Save(state model.WorkflowState)
    Delete(sessionID string)
}

// SessionRepository keeps workflow progress in memory for the life of the process.
type SessionRepository struct {
    mu       sync.Mutex
    sessions map[string]model.WorkflowState
}

func NewSessionRepository() *SessionRepository {
    return &SessionRepository{sessions: map[string]model.WorkflowState{}}
}

func (r *SessionRepository) Get(sessionID string) (model.WorkflowState, bool) {
    r.mu.Lock()
    defer r.mu.Unlock()
    s, ok := r.sessions[sessionID]
    if !ok {
        return model.WorkflowState{}, false
    }
    return clone(s), true
}

func (r *SessionRepository) Save(state model.WorkflowState) {
    r.mu.Lock()
    defer r.mu.Unlock()
    r.sessions[state.SessionID] = clone(state)
}

func (r *SessionRepository) Delete(sessionID string) {
    r.mu.Lock()
    defer r.mu.Unlock()
    delete(r.sessions, sessionID)
}

// clone copies the approvals map so callers never share it.
func clone(s model.WorkflowState) model.WorkflowState {
    if s.Approvals == nil {
        return s
    }
    approvals := make(map[model.Step]model.Approval, len(s.Approvals))
    for k, v := range s.Approvals {
        approvals[k] = v
    }
    s.Approvals = approvals
    return s
}

var _ SessionRepositoryInterface = (*SessionRepository)(nil)
