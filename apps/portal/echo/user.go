package echoportal

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

const registerSuccessMsg = "Account created successfully! You can now login."

type userWeb struct {
	svc        user.Service
	store      sessions.Store
	validate   *validator.Validate
	translator ut.Translator
}

func registerUserWeb(app *echo.Echo, store sessions.Store, deps ServerDeps) {
	web := userWeb{
		svc:        deps.UserSvc,
		store:      store,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	app.GET("/", web.home)
	app.GET("/login", web.loginForm)
	app.POST("/login", web.login)
	app.GET("/register", web.registerForm)
	app.POST("/register", web.register)
	app.GET("/logout", web.logout)
}

// Handlers

func (web *userWeb) home(ctx echo.Context) error {
	if _, ok := contextIdentity(ctx); ok {
		return ctx.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return ctx.Redirect(http.StatusSeeOther, "/login")
}

func (web *userWeb) loginForm(ctx echo.Context) error {
	if _, ok := contextIdentity(ctx); ok {
		return ctx.Redirect(http.StatusSeeOther, "/dashboard")
	}
	return render(ctx, http.StatusOK, loginPage(""))
}

func (web *userWeb) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(web.validate); err != nil {
		return render(ctx, http.StatusOK, loginPage(errInvalidCredentials))
	}

	ident, err := web.svc.Authenticate(data.Username, data.Password)
	if err != nil {
		if errors.Cause(err) == user.ErrInvalidCredentials {
			// same message for unknown usernames and wrong passwords
			return render(ctx, http.StatusOK, loginPage(errInvalidCredentials))
		}
		return errors.Wrap(err, "authenticating")
	}

	if err = saveIdentity(web.store, ctx, ident); err != nil {
		return errors.Wrap(err, "saving session")
	}
	return ctx.Redirect(http.StatusSeeOther, "/dashboard")
}

func (web *userWeb) registerForm(ctx echo.Context) error {
	return render(ctx, http.StatusOK, registerPage(nil, "", user.NewUser{}))
}

// register creates the account but never establishes a session.
func (web *userWeb) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(web.validate, web.svc); err != nil {
		if fldErrs := formErrors(err, web.translator); fldErrs != nil {
			return render(ctx, http.StatusOK, registerPage(fldErrs, "", data))
		}
		return errors.Wrap(err, "validating NewUser")
	}

	if _, err := web.svc.Register(data); err != nil {
		if fldErrs := formErrors(err, web.translator); fldErrs != nil {
			return render(ctx, http.StatusOK, registerPage(fldErrs, "", data))
		}
		return errors.Wrap(err, "registering user")
	}

	return render(ctx, http.StatusOK, registerPage(nil, registerSuccessMsg, user.NewUser{}))
}

func (web *userWeb) logout(ctx echo.Context) error {
	if err := clearSession(web.store, ctx); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return ctx.Redirect(http.StatusSeeOther, "/login")
}
