package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleHead    = "head"
)

// DefaultSection is assigned when no section is supplied.
const DefaultSection = "grade 1"

var AllRoles = []string{RoleStudent, RoleTeacher, RoleHead}

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"` // unique, stored lowercased
	Role         string    `json:"role" db:"role"`
	Section      string    `json:"section" db:"section"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsHead() bool    { return u.Role == RoleHead }

// Identity is the per-client session state established by a successful login.
type Identity struct {
	Username string
	Role     string
	Section  string
}

// NewUser contains information needed to register a new User.
type NewUser struct {
	Username string `json:"username" form:"username" validate:"required,alphanum_"`
	Password string `json:"password" form:"password" validate:"required"`
	Role     string `json:"role" form:"role" validate:"required,role"`
	Section  string `json:"section" form:"section"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
	nu.Section = core.CleanString(nu.Section, true /* lower */)
	if nu.Section == "" {
		nu.Section = DefaultSection
	}

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username)
}
