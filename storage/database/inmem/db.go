package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/content"
	"github.com/trezcool/darasa/core/user"
)

// DB is an in-memory table store used in tests.
type DB struct {
	mutex sync.RWMutex

	users         map[int]*user.User
	assignments   map[int]*content.Assignment
	notifications map[int]*content.Notification

	userPK         int
	assignmentPK   int
	notificationPK int
}

func Open() (*DB, error) {
	return &DB{
		users:         make(map[int]*user.User),
		assignments:   make(map[int]*content.Assignment),
		notifications: make(map[int]*content.Notification),
	}, nil
}
