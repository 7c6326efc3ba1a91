// Package backend is the only path from the portal to the Zero Hunger REST API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/config"
	"github.com/zerohunger/portal/internal/domain"
	"github.com/zerohunger/portal/internal/events"
	"github.com/zerohunger/portal/internal/observability"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// ErrUnauthorized is returned for every 401, after the session was invalidated.
var ErrUnauthorized = apperrors.NewUnauthorized("session expired, please log in again")

// Caller identifies whose session a backend call runs under.
type Caller struct {
	SessionID  string
	Credential string
}

// CallerFor builds a Caller from a session; a nil or anonymous session yields no credential.
func CallerFor(sess *domain.Session) Caller {
	if sess == nil {
		return Caller{}
	}
	return Caller{SessionID: sess.ID, Credential: sess.Credential}
}

// MessageResponse is the body of backend mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// Client wraps outbound requests: it attaches the bearer credential and intercepts 401s.
type Client struct {
	baseURL    string
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *observability.Metrics
	dispatcher events.Dispatcher
}

// ClientDependencies bundles collaborators of the client.
type ClientDependencies struct {
	Logger     *zap.Logger
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
}

// NewClient constructs the client.
func NewClient(cfg config.BackendConfig, deps ClientDependencies) *Client {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout(),
		logger:     logger,
		metrics:    deps.Metrics,
		dispatcher: deps.Dispatcher,
	}
}

type call struct {
	operation string
	method    string
	path      string
	body      any
}

// do performs exactly one HTTP exchange. Once issued a call is not cancellable;
// the context deadline only bounds how long it may take.
func (c *Client) do(ctx context.Context, caller Caller, op call, out any) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewUnavailable("request cancelled", err)
	}

	agent := fiber.AcquireAgent()
	req := agent.Request()
	req.Header.SetMethod(op.method)
	req.SetRequestURI(c.baseURL + op.path)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if caller.Credential != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+caller.Credential)
	}
	if op.body != nil {
		agent.JSON(op.body)
	}
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return apperrors.NewInternalError(fmt.Errorf("%s: parse request: %w", op.operation, err))
	}
	agent.Timeout(c.timeoutFor(ctx))

	start := time.Now()
	status, body, errs := agent.Bytes()
	elapsed := time.Since(start)
	if len(errs) > 0 {
		c.metrics.RecordBackendCall(op.operation, 0, elapsed)
		c.logger.Warn("backend unreachable",
			zap.String("operation", op.operation),
			zap.Errors("errors", errs))
		return apperrors.NewUnavailable("backend unavailable", errs[0])
	}
	c.metrics.RecordBackendCall(op.operation, status, elapsed)
	c.logger.Debug("backend call",
		zap.String("operation", op.operation),
		zap.String("method", op.method),
		zap.String("path", op.path),
		zap.Int("status", status),
		zap.Duration("duration", elapsed))

	if status == http.StatusUnauthorized {
		return c.interceptUnauthorized(ctx, caller, op, status, body)
	}
	if status < 200 || status > 299 {
		err := apperrors.NewBackendError(status, backendMessage(body))
		c.logger.Warn("backend rejected request",
			zap.String("operation", op.operation),
			zap.Int("status", status),
			zap.Error(err))
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("%s: decode response: %w", op.operation, err))
	}
	return nil
}

// interceptUnauthorized announces the dead session and returns ErrUnauthorized,
// carrying the backend's message when it sent one.
// Subscribers clear the session and the web layer navigates to the login page.
func (c *Client) interceptUnauthorized(ctx context.Context, caller Caller, op call, status int, body []byte) error {
	c.logger.Info("backend rejected credential",
		zap.String("operation", op.operation),
		zap.String("session_id", caller.SessionID))
	if c.dispatcher != nil {
		event := events.New(events.EventSessionInvalidated, caller.SessionID, events.SessionInvalidatedPayload{
			Operation: op.operation,
			Status:    status,
		})
		if err := c.dispatcher.Publish(ctx, event); err != nil {
			c.logger.Warn("session invalidation handlers failed", zap.Error(err))
		}
	}
	message := backendMessage(body)
	if message == "" {
		return ErrUnauthorized
	}
	err := apperrors.NewDomainError(apperrors.CodeUnauthorized, message, http.StatusUnauthorized, nil)
	err.Err = ErrUnauthorized
	return err
}

func (c *Client) timeoutFor(ctx context.Context) time.Duration {
	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		timeout = time.Millisecond
	}
	return timeout
}

func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

// decodeList tolerates non-array bodies by treating them as empty lists.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("decode list: %w", err))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
