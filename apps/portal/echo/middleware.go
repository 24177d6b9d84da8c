package echoportal

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/access"
	"github.com/trezcool/darasa/core/user"
)

const contextIdentityKey = "identity"

// sessionMiddleware resolves the session identity (if any) into the echo.Context.
func sessionMiddleware(store sessions.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ident, ok := getIdentity(store, ctx); ok {
				ctx.Set(contextIdentityKey, ident)
			}
			return next(ctx)
		}
	}
}

func contextIdentity(ctx echo.Context) (user.Identity, bool) {
	ident, ok := ctx.Get(contextIdentityKey).(user.Identity)
	return ident, ok
}

// loginRequiredMiddleware redirects anonymous clients to the login page.
func loginRequiredMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if _, ok := contextIdentity(ctx); !ok {
				return ctx.Redirect(http.StatusSeeOther, "/login")
			}
			return next(ctx)
		}
	}
}

// policyMiddleware consults the access policy; denied attempts redirect to the
// dashboard without mutation and without error detail.
func policyMiddleware(action access.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ident, ok := contextIdentity(ctx)
			if !ok {
				return ctx.Redirect(http.StatusSeeOther, "/login")
			}
			if !access.Can(ident.Role, action) {
				return ctx.Redirect(http.StatusSeeOther, "/dashboard")
			}
			return next(ctx)
		}
	}
}
