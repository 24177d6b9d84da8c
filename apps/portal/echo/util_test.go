package echoportal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/content"
	"github.com/trezcool/darasa/core/user"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

type testApp struct {
	server  Server
	usrSvc  user.Service
	cntSvc  content.Service
	usrRepo user.Repository
	cntRepo content.Repository
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func setup(t *testing.T) *testApp {
	t.Helper()

	conf := &core.Config{
		SecretKey: "secret",
		TestMode:  true,
		Server: core.ServerConfig{
			SessionMaxAge: 14 * 24 * time.Hour,
		},
		Bootstrap: core.BootstrapConfig{
			HeadUsername: "admin",
			HeadPassword: "admin123",
		},
	}

	db, err := inmemdb.Open()
	require.NoError(t, err)
	usrRepo := inmemdb.NewUserRepository(db)
	cntRepo := inmemdb.NewContentRepository(db)

	usrSvc := user.NewService(usrRepo, conf)
	cntSvc := content.NewService(cntRepo)

	validate := validator.New()
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	server := NewServer(
		ServerDeps{
			Conf:       conf,
			Logger:     nopLogger{},
			UserSvc:    usrSvc,
			ContentSvc: cntSvc,
			Validate:   validate,
			Translator: translator,
		},
	)
	return &testApp{
		server:  server,
		usrSvc:  usrSvc,
		cntSvc:  cntSvc,
		usrRepo: usrRepo,
		cntRepo: cntRepo,
	}
}

func (app *testApp) createUser(t *testing.T, username, password, role, section string) user.User {
	t.Helper()
	usr := user.User{Username: username, Role: role, Section: section}
	require.NoError(t, usr.SetPassword(password))
	usr, err := app.usrRepo.CreateUser(usr)
	require.NoError(t, err)
	return usr
}

// login authenticates via the login form and returns the session cookies.
func (app *testApp) login(t *testing.T, username, password string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req, rec := newRequest(http.MethodPost, "/login", form)
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get(echo.HeaderLocation))
	return rec.Result().Cookies()
}

func newRequest(method, path string, form ...url.Values) (*http.Request, *httptest.ResponseRecorder) {
	var body string
	if len(form) > 0 {
		body = form[0].Encode()
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, httptest.NewRecorder()
}

func newAuthRequest(method, path string, cookies []*http.Cookie, form ...url.Values) (*http.Request, *httptest.ResponseRecorder) {
	req, rec := newRequest(method, path, form...)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req, rec
}
