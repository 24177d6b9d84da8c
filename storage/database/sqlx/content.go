package sqlxrepos

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/content"
)

type contentRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *sqlx.DB) content.Repository {
	return &contentRepository{db: db, sb: statementBuilder(db)}
}

func (repo *contentRepository) ListAssignments(section string) ([]content.Assignment, error) {
	q, args, err := repo.sb.
		Select("id", "text", "section").
		From("assignments").
		Where(sq.Eq{"section": section}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var assignments []content.Assignment
	if err = repo.db.Select(&assignments, q, args...); err != nil {
		return nil, errors.Wrap(err, "listing assignments")
	}
	return assignments, nil
}

func (repo *contentRepository) ListNotifications() ([]content.Notification, error) {
	q, args, err := repo.sb.
		Select("id", "title", "text").
		From("notifications").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building query")
	}

	var notifications []content.Notification
	if err = repo.db.Select(&notifications, q, args...); err != nil {
		return nil, errors.Wrap(err, "listing notifications")
	}
	return notifications, nil
}

func (repo *contentRepository) CreateAssignment(a content.Assignment) (content.Assignment, error) {
	insert := repo.sb.
		Insert("assignments").
		Columns("text", "section").
		Values(a.Text, a.Section)
	id, err := repo.create(insert)
	if err != nil {
		return content.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	a.ID = id
	return a, nil
}

func (repo *contentRepository) CreateNotification(n content.Notification) (content.Notification, error) {
	insert := repo.sb.
		Insert("notifications").
		Columns("title", "text").
		Values(n.Title, n.Text)
	id, err := repo.create(insert)
	if err != nil {
		return content.Notification{}, errors.Wrap(err, "inserting notification")
	}
	n.ID = id
	return n, nil
}

func (repo *contentRepository) DeleteAssignment(id int) error {
	return repo.delete("assignments", id)
}

func (repo *contentRepository) DeleteNotification(id int) error {
	return repo.delete("notifications", id)
}

func (repo *contentRepository) create(insert sq.InsertBuilder) (int, error) {
	if repo.db.DriverName() == "postgres" {
		q, args, err := insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, errors.Wrap(err, "building query")
		}
		var id int
		if err = repo.db.Get(&id, q, args...); err != nil {
			return 0, err
		}
		return id, nil
	}

	q, args, err := insert.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building query")
	}
	res, err := repo.db.Exec(q, args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "getting inserted id")
	}
	return int(id), nil
}

func (repo *contentRepository) delete(table string, id int) error {
	q, args, err := repo.sb.
		Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	res, err := repo.db.Exec(q, args...)
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", table)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "getting affected rows")
	}
	if n == 0 {
		return content.ErrNotFound
	}
	return nil
}
