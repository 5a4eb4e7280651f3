package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/unclebandit/campaign-workflow/internal/model"
)

const recordTimeout = 10 * time.Second

// ApprovalRecorder persists approval decisions.
type ApprovalRecorder interface {
	Record(ctx context.Context, e model.ApprovalEvent) error
}

// LogRecorder writes decisions to the log when no store is attached.
type LogRecorder struct {
	Log *zap.Logger
}

func (r LogRecorder) Record(_ context.Context, e model.ApprovalEvent) error {
	r.Log.Info("approval recorded",
		zap.String("event_id", e.ID),
		zap.String("brief_id", e.BriefID),
		zap.String("step", e.Step),
		zap.String("decision", e.Decision),
		zap.Time("at", e.At),
	)
	return nil
}

// StartApprovalSubscriber hands every approval event on topic to recorder.
func StartApprovalSubscriber(q Queue, topic string, recorder ApprovalRecorder, log *zap.Logger) error {
	err := q.Subscribe(topic, func(payload any) error {
		event, err := decodeEvent(payload)
		if err != nil {
			log.Warn("dropping malformed approval event", zap.Error(err))
			return nil // no retry
		}

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := recorder.Record(ctx, event); err != nil {
			log.Warn("failed to record approval", zap.String("event_id", event.ID), zap.Error(err))
			return err // retry
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", topic, err)
	}
	log.Info("approval subscriber started", zap.String("topic", topic))
	return nil
}

// decodeEvent accepts the in-process value or the JSON body from a broker.
func decodeEvent(payload any) (model.ApprovalEvent, error) {
	switch p := payload.(type) {
	case model.ApprovalEvent:
		return p, nil
	case *model.ApprovalEvent:
		if p == nil {
			return model.ApprovalEvent{}, fmt.Errorf("nil approval event")
		}
		return *p, nil
	case []byte:
		var e model.ApprovalEvent
		if err := json.Unmarshal(p, &e); err != nil {
			return model.ApprovalEvent{}, err
		}
		if e.ID == "" {
			return model.ApprovalEvent{}, fmt.Errorf("approval event without id")
		}
		return e, nil
	default:
		return model.ApprovalEvent{}, fmt.Errorf("unexpected payload type %T", payload)
	}
}
