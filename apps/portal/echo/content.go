package echoportal

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/access"
	"github.com/trezcool/darasa/core/content"
)

type contentWeb struct {
	svc      content.Service
	validate *validator.Validate
}

func registerContentWeb(app *echo.Echo, deps ServerDeps) {
	web := contentWeb{
		svc:      deps.ContentSvc,
		validate: deps.Validate,
	}

	g := app.Group("", loginRequiredMiddleware())
	g.GET("/dashboard", web.dashboard)
	g.POST("/add_assignment", web.addAssignment, policyMiddleware(access.AddAssignment))
	g.POST("/add_notification", web.addNotification, policyMiddleware(access.AddNotification))
	g.POST("/delete_assignment/:id", web.deleteAssignment, policyMiddleware(access.DeleteAssignment))
	g.POST("/delete_notification/:id", web.deleteNotification, policyMiddleware(access.DeleteNotification))
}

// Handlers

func (web *contentWeb) dashboard(ctx echo.Context) error {
	ident, _ := contextIdentity(ctx)

	assignments, err := web.svc.ListAssignments(ident.Section)
	if err != nil {
		return errors.Wrap(err, "listing assignments")
	}
	notifications, err := web.svc.ListNotifications() // academy-wide
	if err != nil {
		return errors.Wrap(err, "listing notifications")
	}

	canManage := access.Can(ident.Role, access.AddAssignment)
	return render(ctx, http.StatusOK, dashboardPage(ident, assignments, notifications, canManage))
}

func (web *contentWeb) addAssignment(ctx echo.Context) error {
	var data content.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(web.validate); err != nil {
		if isValidationError(err) { // blank text: silently ignored
			return ctx.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return errors.Wrap(err, "validating NewAssignment")
	}

	if _, err := web.svc.AddAssignment(data); err != nil {
		return errors.Wrap(err, "adding assignment")
	}
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (web *contentWeb) addNotification(ctx echo.Context) error {
	var data content.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(web.validate); err != nil {
		if isValidationError(err) { // blank title/text: silently ignored
			return ctx.Redirect(http.StatusSeeOther, "/dashboard")
		}
		return errors.Wrap(err, "validating NewNotification")
	}

	if _, err := web.svc.AddNotification(data); err != nil {
		return errors.Wrap(err, "adding notification")
	}
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (web *contentWeb) deleteAssignment(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	if err = web.svc.DeleteAssignment(id); err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (web *contentWeb) deleteNotification(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	if err = web.svc.DeleteNotification(id); err != nil {
		if errors.Cause(err) == content.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting notification")
	}
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func isValidationError(err error) bool {
	switch errors.Cause(err).(type) {
	case validator.ValidationErrors, *core.ValidationError:
		return true
	}
	return false
}
