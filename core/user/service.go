package user

import (
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	Repository interface {
		// CheckUsernameUniqueness fails with ErrUsernameExists if `username` is taken.
		// The username is expected to be lowercased already.
		CheckUsernameUniqueness(username string) error
		// CreateUser fails with ErrUsernameExists on a duplicate username;
		// the check and the insert are atomic.
		CreateUser(usr User) (User, error)
		GetUserByUsername(username string) (User, error)
		QueryAllUsers() ([]User, error)
	}

	Service interface {
		Register(nu NewUser) (User, error)
		// Authenticate fails with ErrInvalidCredentials on an unknown username
		// as well as on a wrong password; callers must not be able to tell
		// the two apart.
		Authenticate(username, password string) (Identity, error)
		GetByUsername(username string) (User, error)
		QueryAll() ([]User, error)
		CheckUniqueness(username string) error
		// Bootstrap seeds the default accounts; it is idempotent and safe to
		// run on every startup.
		Bootstrap() error
	}

	service struct {
		repo Repository
		conf *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, conf *core.Config) Service {
	return &service{repo: repo, conf: conf}
}

func (svc *service) CheckUniqueness(username string) error {
	if err := svc.repo.CheckUsernameUniqueness(username); err != nil {
		if err == ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return errors.Wrap(err, "checking username uniqueness")
	}
	return nil
}

// Register creates a new account. It never establishes a session.
func (svc *service) Register(nu NewUser) (User, error) {
	usr := User{
		Username:  nu.Username,
		Role:      nu.Role,
		Section:   nu.Section,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		if err == ErrUsernameExists { // duplicate race caught at insert
			return User{}, core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (svc *service) Authenticate(username, password string) (Identity, error) {
	usr, err := svc.repo.GetUserByUsername(core.CleanString(username, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, errors.Wrap(err, "finding user by username")
	}
	if err = usr.CheckPassword(password); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{Username: usr.Username, Role: usr.Role, Section: usr.Section}, nil
}

func (svc *service) GetByUsername(username string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(username, true /* lower */))
}

func (svc *service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *service) Bootstrap() error {
	seeds := []struct {
		username string
		password string
		role     string
		section  string
	}{
		{svc.conf.Bootstrap.HeadUsername, svc.conf.Bootstrap.HeadPassword, RoleHead, "all"},
		{"jaitya reddy", "grade5pass", RoleStudent, "grade 5"},
	}

	for _, seed := range seeds {
		username := core.CleanString(seed.username, true /* lower */)
		if _, err := svc.repo.GetUserByUsername(username); err == nil {
			continue
		} else if err != ErrNotFound {
			return errors.Wrapf(err, "checking seed account %q", username)
		}

		usr := User{
			Username:  username,
			Role:      seed.role,
			Section:   seed.section,
			CreatedAt: time.Now().UTC(),
		}
		if err := usr.SetPassword(seed.password); err != nil {
			return errors.Wrapf(err, "hashing seed password for %q", username)
		}
		if _, err := svc.repo.CreateUser(usr); err != nil && err != ErrUsernameExists {
			return errors.Wrapf(err, "creating seed account %q", username)
		}
	}
	return nil
}
