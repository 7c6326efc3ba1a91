package http

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/zerohunger/portal/internal/api/http/handlers"
	"github.com/zerohunger/portal/internal/auth"
	"github.com/zerohunger/portal/internal/observability"
	"github.com/zerohunger/portal/internal/session"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares: timeout, request logging, the
// session loader and error handling, in that order. Error handling runs inside
// the session loader so that sign-outs and flash messages it records are saved.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration, sessions *session.Manager) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(sessions.Middleware())
	app.Use(errorHandlingMiddleware(logger, metrics, sessions))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = handleError(c, err, logger, metrics, sessions)
			}
		}()
		return c.Next()
	}
}

func handleError(c *fiber.Ctx, err error, logger *zap.Logger, metrics *observability.Metrics, sessions *session.Manager) error {
	if fiberErr, ok := err.(*fiber.Error); ok {
		err = apperrors.NewDomainError(codeForStatus(fiberErr.Code), fiberErr.Message, fiberErr.Code, nil)
	}
	domainErr := apperrors.ToDomainError(err)
	metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
	if domainErr.HTTPStatus >= 500 {
		logger.Error("request failed",
			zap.String("request_id", observability.RequestID(c)),
			zap.String("path", c.Path()),
			zap.Error(domainErr))
	}

	sess := session.FromContext(c)
	if domainErr.Code == apperrors.CodeUnauthorized && sess != nil {
		sessions.SignOut(sess)
	}

	if wantsJSON(c) {
		response := fiber.Map{"error": fiber.Map{
			"code":    domainErr.Code,
			"message": domainErr.Message,
		}}
		if len(domainErr.Details) > 0 {
			response["error"].(fiber.Map)["details"] = domainErr.Details
		}
		return c.Status(domainErr.HTTPStatus).JSON(response)
	}

	switch domainErr.Code {
	case apperrors.CodeUnauthorized:
		if sess != nil {
			sess.Flash(domainErr.Message)
		}
		return c.Redirect(auth.LoginPath, fiber.StatusSeeOther)
	case apperrors.CodeForbidden:
		return handlers.Unauthorized(c)
	}

	message := apperrors.UserMessage(domainErr, "Something went wrong")
	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		if sess != nil {
			sess.Flash(message)
		}
		return c.RedirectBack("/dashboard", fiber.StatusSeeOther)
	}
	return handlers.ErrorPage(c, domainErr.HTTPStatus, message)
}

// wantsJSON is true for the polling and probe endpoints and for callers that
// prefer JSON over HTML.
func wantsJSON(c *fiber.Ctx) bool {
	path := c.Path()
	if strings.HasPrefix(path, "/sync/") || strings.HasPrefix(path, "/health/") {
		return true
	}
	return c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return apperrors.CodeNotFound
	case fiber.StatusUnauthorized:
		return apperrors.CodeUnauthorized
	case fiber.StatusForbidden:
		return apperrors.CodeForbidden
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
		return apperrors.CodeValidation
	default:
		return apperrors.CodeInternal
	}
}
