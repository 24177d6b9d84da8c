package inmemdb

import (
	"sort"

	"github.com/trezcool/darasa/core/content"
)

type contentRepository struct {
	db *DB
}

var _ content.Repository = (*contentRepository)(nil)

func NewContentRepository(db *DB) content.Repository {
	return &contentRepository{db: db}
}

func (repo *contentRepository) ListAssignments(section string) ([]content.Assignment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var assignments []content.Assignment
	for _, a := range repo.db.assignments {
		if a.Section == section {
			assignments = append(assignments, *a)
		}
	}
	sort.Slice(assignments, func(i, j int) bool { return assignments[i].ID < assignments[j].ID })
	return assignments, nil
}

func (repo *contentRepository) ListNotifications() ([]content.Notification, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var notifications []content.Notification
	for _, n := range repo.db.notifications {
		notifications = append(notifications, *n)
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID < notifications[j].ID })
	return notifications, nil
}

func (repo *contentRepository) CreateAssignment(a content.Assignment) (content.Assignment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.assignmentPK++
	a.ID = repo.db.assignmentPK
	repo.db.assignments[a.ID] = &a
	return a, nil
}

func (repo *contentRepository) CreateNotification(n content.Notification) (content.Notification, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.notificationPK++
	n.ID = repo.db.notificationPK
	repo.db.notifications[n.ID] = &n
	return n, nil
}

func (repo *contentRepository) DeleteAssignment(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.assignments[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.assignments, id)
	return nil
}

func (repo *contentRepository) DeleteNotification(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.notifications[id]; !ok {
		return content.ErrNotFound
	}
	delete(repo.db.notifications, id)
	return nil
}
