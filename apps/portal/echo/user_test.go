package echoportal

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/user"
)

func Test_userWeb_home(t *testing.T) {
	app := setup(t)
	app.createUser(t, "alice", "pass123", user.RoleStudent, "grade 1")

	t.Run("anonymous redirects to login", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/")
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("authenticated redirects to dashboard", func(t *testing.T) {
		cookies := app.login(t, "alice", "pass123")
		req, rec := newAuthRequest(http.MethodGet, "/", cookies)
		app.server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	})
}

func Test_userWeb_login(t *testing.T) {
	app := setup(t)
	app.createUser(t, "alice", "pass123", user.RoleStudent, "grade 1")

	tests := []struct {
		name     string
		form     url.Values
		wantCode int
		wantLoc  string
		wantBody string
	}{
		{
			name:     "valid credentials",
			form:     url.Values{"username": {"alice"}, "password": {"pass123"}},
			wantCode: http.StatusSeeOther,
			wantLoc:  "/dashboard",
		},
		{
			name:     "username is case-insensitive",
			form:     url.Values{"username": {"ALICE"}, "password": {"pass123"}},
			wantCode: http.StatusSeeOther,
			wantLoc:  "/dashboard",
		},
		{
			name:     "username is trimmed",
			form:     url.Values{"username": {"  alice  "}, "password": {"pass123"}},
			wantCode: http.StatusSeeOther,
			wantLoc:  "/dashboard",
		},
		{
			name:     "wrong password re-renders form",
			form:     url.Values{"username": {"alice"}, "password": {"nope"}},
			wantCode: http.StatusOK,
			wantBody: errInvalidCredentials,
		},
		{
			name:     "unknown username gets the same message",
			form:     url.Values{"username": {"bob"}, "password": {"pass123"}},
			wantCode: http.StatusOK,
			wantBody: errInvalidCredentials,
		},
		{
			name:     "missing fields get the same message",
			form:     url.Values{"username": {"alice"}},
			wantCode: http.StatusOK,
			wantBody: errInvalidCredentials,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/login", tt.form)
			app.server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, rec.Header().Get(echo.HeaderLocation))
				assert.NotEmpty(t, rec.Result().Cookies(), "expected a session cookie")
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func Test_userWeb_register(t *testing.T) {
	app := setup(t)
	app.createUser(t, "alice", "pass123", user.RoleStudent, "grade 1")

	t.Run("success", func(t *testing.T) {
		form := url.Values{
			"username": {"Bob"},
			"password": {"secret1"},
			"role":     {"teacher"},
			"section":  {"grade 2"},
		}
		req, rec := newRequest(http.MethodPost, "/register", form)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), registerSuccessMsg)
		assert.Empty(t, rec.Result().Cookies(), "registration must not log in")

		// username is stored lowercase
		usr, err := app.usrSvc.GetByUsername("bob")
		require.NoError(t, err)
		assert.Equal(t, "bob", usr.Username)
		assert.Equal(t, user.RoleTeacher, usr.Role)
		assert.Equal(t, "grade 2", usr.Section)
		assert.NoError(t, usr.CheckPassword("secret1"))
	})

	t.Run("blank section defaults", func(t *testing.T) {
		form := url.Values{
			"username": {"carol"},
			"password": {"secret1"},
			"role":     {"student"},
		}
		req, rec := newRequest(http.MethodPost, "/register", form)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), registerSuccessMsg)

		usr, err := app.usrSvc.GetByUsername("carol")
		require.NoError(t, err)
		assert.Equal(t, user.DefaultSection, usr.Section)
	})

	t.Run("duplicate username re-renders with errors", func(t *testing.T) {
		form := url.Values{
			"username": {"Alice"}, // duplicates differing only in case
			"password": {"secret1"},
			"role":     {"student"},
		}
		req, rec := newRequest(http.MethodPost, "/register", form)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), registerSuccessMsg)
		assert.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("unknown role re-renders with errors", func(t *testing.T) {
		form := url.Values{
			"username": {"dave"},
			"password": {"secret1"},
			"role":     {"principal"},
		}
		req, rec := newRequest(http.MethodPost, "/register", form)
		app.server.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), registerSuccessMsg)

		_, err := app.usrSvc.GetByUsername("dave")
		assert.Error(t, err)
	})
}

func Test_userWeb_logout(t *testing.T) {
	app := setup(t)
	app.createUser(t, "alice", "pass123", user.RoleStudent, "grade 1")
	cookies := app.login(t, "alice", "pass123")

	req, rec := newAuthRequest(http.MethodGet, "/logout", cookies)
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	// the expired cookie no longer grants access
	req, rec = newAuthRequest(http.MethodGet, "/dashboard", rec.Result().Cookies())
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}
