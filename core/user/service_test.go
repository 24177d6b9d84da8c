package user_test

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	inmemdb "github.com/trezcool/darasa/storage/database/inmem"
)

func setup(t *testing.T) (user.Service, user.Repository, *validator.Validate) {
	t.Helper()

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	repo := inmemdb.NewUserRepository(db)
	conf := &core.Config{
		Bootstrap: core.BootstrapConfig{HeadUsername: "admin", HeadPassword: "admin123"},
	}
	svc := user.NewService(repo, conf)

	validate := validator.New()
	enLocale := en.New()
	translator, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return svc, repo, validate
}

func createUser(t *testing.T, svc user.Service, uname, pwd, role, section string) user.User {
	t.Helper()

	usr, err := svc.Register(user.NewUser{Username: uname, Password: pwd, Role: role, Section: section})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func TestService_Authenticate(t *testing.T) {
	svc, _, _ := setup(t)
	createUser(t, svc, "bob", "pw1", user.RoleTeacher, "grade 2")

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "ok", username: "bob", password: "pw1"},
		{name: "case-insensitive username", username: "BoB", password: "pw1"},
		{name: "padded username", username: "  bob  ", password: "pw1"},
		{name: "wrong password", username: "bob", password: "nope", wantErr: user.ErrInvalidCredentials},
		{name: "unknown user", username: "alice", password: "pw1", wantErr: user.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident, err := svc.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Empty(t, ident.Username)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "bob", ident.Username)
			assert.Equal(t, user.RoleTeacher, ident.Role)
			assert.Equal(t, "grade 2", ident.Section)
		})
	}
}

func TestService_Register(t *testing.T) {
	svc, _, validate := setup(t)
	createUser(t, svc, "bob", "pw1", user.RoleTeacher, "grade 2")

	t.Run("duplicate username differing only in case", func(t *testing.T) {
		nu := user.NewUser{Username: "Bob", Password: "pw2", Role: user.RoleStudent}
		err := nu.Validate(validate, svc)
		var vErr *core.ValidationError
		if assert.ErrorAs(t, err, &vErr) {
			assert.Equal(t, "username", vErr.Fields[0].Field)
		}
	})

	t.Run("duplicate race caught at insert", func(t *testing.T) {
		_, err := svc.Register(user.NewUser{Username: "bob", Password: "pw2", Role: user.RoleStudent, Section: "grade 1"})
		var vErr *core.ValidationError
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		nu := user.NewUser{Username: "eve", Password: "pw", Role: "wizard"}
		err := nu.Validate(validate, svc)
		var vErrs validator.ValidationErrors
		assert.ErrorAs(t, err, &vErrs)
	})

	t.Run("section defaults", func(t *testing.T) {
		nu := user.NewUser{Username: "carl", Password: "pw", Role: user.RoleStudent}
		assert.NoError(t, nu.Validate(validate, svc))
		assert.Equal(t, user.DefaultSection, nu.Section)

		usr, err := svc.Register(nu)
		assert.NoError(t, err)
		assert.Equal(t, user.DefaultSection, usr.Section)
		assert.NotEmpty(t, usr.PasswordHash)
	})
}

func TestService_Bootstrap(t *testing.T) {
	svc, _, _ := setup(t)

	// running twice must seed exactly one head account
	assert.NoError(t, svc.Bootstrap())
	assert.NoError(t, svc.Bootstrap())

	users, err := svc.QueryAll()
	assert.NoError(t, err)

	var heads, students int
	for _, usr := range users {
		switch usr.Role {
		case user.RoleHead:
			heads++
		case user.RoleStudent:
			students++
		}
	}
	assert.Equal(t, 1, heads)
	assert.Equal(t, 1, students)

	admin, err := svc.GetByUsername("admin")
	assert.NoError(t, err)
	assert.Equal(t, "all", admin.Section)
	assert.NoError(t, admin.CheckPassword("admin123"))
}
