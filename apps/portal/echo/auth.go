package echoportal

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

const (
	sessionName = "darasa-session"

	sessionUsernameKey = "username"
	sessionRoleKey     = "role"
	sessionSectionKey  = "section"
)

func newSessionStore(conf *core.Config) sessions.Store {
	key := []byte(conf.SecretKey)
	if len(key) == 0 {
		// ephemeral key; sessions will not survive a restart
		key = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(conf.Server.SessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// getIdentity resolves the authenticated Identity from the request's session;
// ok is false for anonymous clients.
func getIdentity(store sessions.Store, ctx echo.Context) (ident user.Identity, ok bool) {
	sess, err := store.Get(ctx.Request(), sessionName)
	if err != nil {
		return user.Identity{}, false // bad or tampered cookie
	}

	username, ok := sess.Values[sessionUsernameKey].(string)
	if !ok || username == "" {
		return user.Identity{}, false
	}
	role, _ := sess.Values[sessionRoleKey].(string)
	section, _ := sess.Values[sessionSectionKey].(string)
	return user.Identity{Username: username, Role: role, Section: section}, true
}

func saveIdentity(store sessions.Store, ctx echo.Context, ident user.Identity) error {
	sess, _ := store.Get(ctx.Request(), sessionName)
	sess.Values[sessionUsernameKey] = ident.Username
	sess.Values[sessionRoleKey] = ident.Role
	sess.Values[sessionSectionKey] = ident.Section
	return sess.Save(ctx.Request(), ctx.Response())
}

func clearSession(store sessions.Store, ctx echo.Context) error {
	sess, _ := store.Get(ctx.Request(), sessionName)
	for key := range sess.Values {
		delete(sess.Values, key)
	}
	sess.Options.MaxAge = -1
	return sess.Save(ctx.Request(), ctx.Response())
}
