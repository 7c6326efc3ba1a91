package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/events"
	"github.com/zerohunger/portal/internal/session"
)

// SyncState answers a dashboard poll.
type SyncState struct {
	FoodUpdated int64 `json:"foodUpdated"`
	Changed     bool  `json:"changed"`
}

// FoodUpdates records listing status changes so other tabs of the same
// session can refresh. Delivery is best-effort.
type FoodUpdates struct {
	signals    session.SignalStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewFoodUpdates builds the signal writer.
func NewFoodUpdates(signals session.SignalStore, dispatcher events.Dispatcher, logger *zap.Logger) *FoodUpdates {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FoodUpdates{signals: signals, dispatcher: dispatcher, logger: logger}
}

// Touch stamps the session's foodUpdated value and announces the change.
func (f *FoodUpdates) Touch(ctx context.Context, sessionID, foodID, action string) {
	if f == nil || sessionID == "" {
		return
	}
	if f.signals != nil {
		if _, err := f.signals.Touch(ctx, sessionID); err != nil {
			f.logger.Warn("food update signal failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	}
	if f.dispatcher != nil {
		event := events.New(events.EventFoodUpdated, sessionID, events.FoodUpdatedPayload{FoodID: foodID, Action: action})
		if err := f.dispatcher.Publish(ctx, event); err != nil {
			f.logger.Warn("food update handlers failed", zap.Error(err))
		}
	}
}

// Since reports the session's last foodUpdated value and whether it is newer than sinceMs.
func (f *FoodUpdates) Since(ctx context.Context, sessionID string, sinceMs int64) (SyncState, error) {
	if f == nil || f.signals == nil || sessionID == "" {
		return SyncState{}, nil
	}
	last, err := f.signals.Last(ctx, sessionID)
	if err != nil {
		return SyncState{}, err
	}
	if last.IsZero() {
		return SyncState{}, nil
	}
	ms := last.UnixMilli()
	return SyncState{FoodUpdated: ms, Changed: ms > sinceMs}, nil
}

// Last returns the session's current foodUpdated value in unix milliseconds, or 0.
func (f *FoodUpdates) Last(ctx context.Context, sessionID string) int64 {
	state, err := f.Since(ctx, sessionID, 0)
	if err != nil {
		f.logger.Warn("food update signal read failed", zap.String("session_id", sessionID), zap.Error(err))
		return 0
	}
	return state.FoodUpdated
}
