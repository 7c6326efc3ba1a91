package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zerohunger/portal/internal/session"
	"github.com/zerohunger/portal/internal/web"
	apperrors "github.com/zerohunger/portal/pkg/util/errorutil"
)

const genericFailure = "Something went wrong"

// render draws a page inside the main layout and consumes the pending flash message.
func render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	sess := session.FromContext(c)
	if sess != nil {
		data["Flash"] = sess.TakeFlash()
		data["Authenticated"] = sess.Authenticated()
		data["Role"] = string(sess.Role)
	}
	return c.Render(view, data, web.Layout)
}

// redirectWithFlash queues msg for the next page and redirects there.
func redirectWithFlash(c *fiber.Ctx, target, msg string) error {
	if sess := session.FromContext(c); sess != nil && msg != "" {
		sess.Flash(msg)
	}
	return c.Redirect(target, fiber.StatusSeeOther)
}

// actionFailed reports a failed form action on the page the user returns to.
// Session expiry and internal failures go to the error middleware instead.
func actionFailed(c *fiber.Ctx, err error, target string) error {
	if apperrors.HasCode(err, apperrors.CodeUnauthorized) || apperrors.HasCode(err, apperrors.CodeInternal) {
		return err
	}
	return redirectWithFlash(c, target, apperrors.UserMessage(err, genericFailure))
}

// formFailed re-renders a form with the user's input and the failure message.
func formFailed(c *fiber.Ctx, err error, view string, data fiber.Map) error {
	if apperrors.HasCode(err, apperrors.CodeUnauthorized) || apperrors.HasCode(err, apperrors.CodeInternal) {
		return err
	}
	if sess := session.FromContext(c); sess != nil {
		sess.Flash(apperrors.UserMessage(err, genericFailure))
	}
	c.Status(apperrors.ToDomainError(err).HTTPStatus)
	return render(c, view, data)
}

func pageParam(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// ErrorPage renders the generic failure page with a link back to the dashboard.
func ErrorPage(c *fiber.Ctx, status int, message string) error {
	c.Status(status)
	return render(c, "error", fiber.Map{"Message": message, "Back": "/dashboard"})
}
