package content

import (
	"github.com/pkg/errors"
)

// ErrNotFound is returned when deleting an id that does not exist.
var ErrNotFound = errors.New("not found")

type (
	Repository interface {
		// ListAssignments returns assignments whose section matches exactly.
		ListAssignments(section string) ([]Assignment, error)
		ListNotifications() ([]Notification, error)
		CreateAssignment(a Assignment) (Assignment, error)
		CreateNotification(n Notification) (Notification, error)
		// DeleteAssignment fails with ErrNotFound on an unknown id.
		DeleteAssignment(id int) error
		// DeleteNotification fails with ErrNotFound on an unknown id.
		DeleteNotification(id int) error
	}

	Service interface {
		ListAssignments(section string) ([]Assignment, error)
		ListNotifications() ([]Notification, error)
		AddAssignment(na NewAssignment) (Assignment, error)
		AddNotification(nn NewNotification) (Notification, error)
		DeleteAssignment(id int) error
		DeleteNotification(id int) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) ListAssignments(section string) ([]Assignment, error) {
	return svc.repo.ListAssignments(section)
}

func (svc *service) ListNotifications() ([]Notification, error) {
	return svc.repo.ListNotifications()
}

func (svc *service) AddAssignment(na NewAssignment) (Assignment, error) {
	a, err := svc.repo.CreateAssignment(Assignment{Text: na.Text, Section: na.Section})
	if err != nil {
		return Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return a, nil
}

func (svc *service) AddNotification(nn NewNotification) (Notification, error) {
	n, err := svc.repo.CreateNotification(Notification{Title: nn.Title, Text: nn.Text})
	if err != nil {
		return Notification{}, errors.Wrap(err, "creating notification")
	}
	return n, nil
}

func (svc *service) DeleteAssignment(id int) error {
	return svc.repo.DeleteAssignment(id)
}

func (svc *service) DeleteNotification(id int) error {
	return svc.repo.DeleteNotification(id)
}
