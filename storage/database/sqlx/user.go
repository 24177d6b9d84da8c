package sqlxrepos

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

var userColumns = []string{"id", "username", "password_hash", "role", "section", "created_at"}

type userRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db, sb: statementBuilder(db)}
}

func (repo *userRepository) CheckUsernameUniqueness(username string) error {
	q, args, err := repo.sb.
		Select("COUNT(*)").
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	var count int
	if err = repo.db.Get(&count, q, args...); err != nil {
		return errors.Wrap(err, "counting users by username")
	}
	if count > 0 {
		return user.ErrUsernameExists
	}
	return nil
}

// CreateUser relies on the unique index on username: a duplicate racing past
// CheckUsernameUniqueness still fails atomically at insert.
func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	insert := repo.sb.
		Insert("users").
		Columns("username", "password_hash", "role", "section", "created_at").
		Values(usr.Username, usr.PasswordHash, usr.Role, usr.Section, usr.CreatedAt)

	if repo.db.DriverName() == "postgres" {
		q, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return user.User{}, errors.Wrap(err, "building query")
		}
		if err = repo.db.Get(&usr.ID, q, args...); err != nil {
			if isUniqueViolation(err) {
				return user.User{}, user.ErrUsernameExists
			}
			return user.User{}, errors.Wrap(err, "inserting user")
		}
		return usr, nil
	}

	q, args, err := insert.ToSql()
	if err != nil {
		return user.User{}, errors.Wrap(err, "building query")
	}
	res, err := repo.db.Exec(q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return user.User{}, errors.Wrap(err, "getting inserted user id")
	}
	usr.ID = int(id)
	return usr, nil
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	q, args, err := repo.sb.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return user.User{}, errors.Wrap(err, "building query")
	}

	var usr user.User
	if err = repo.db.Get(&usr, q, args...); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by username")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	q, args, err := repo.sb.
		Select(userColumns...).
		From("users").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var users []user.User
	if err = repo.db.Select(&users, q, args...); err != nil {
		return nil, errors.Wrap(err, "querying all users")
	}
	return users, nil
}
