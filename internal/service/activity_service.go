package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/events"
)

// ActivityService logs session and listing activity for operators.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventSessionInvalidated, a.handleSessionInvalidated)
	a.dispatcher.Subscribe(events.EventFoodUpdated, a.handleFoodUpdated)
}

func (a *ActivityService) handleSessionInvalidated(ctx context.Context, event events.Event) error {
	a.logger.Info("SessionInvalidated", zap.String("session_id", event.SessionID), zap.Any("payload", event.Payload))
	return nil
}

func (a *ActivityService) handleFoodUpdated(ctx context.Context, event events.Event) error {
	a.logger.Info("FoodUpdated", zap.String("session_id", event.SessionID), zap.Any("payload", event.Payload))
	return nil
}
