package memory

import (
	"context"
	"errors"
	"sync"

	"mergington-activities/internal/model"
)

type InMemoryActivityRepository struct {
	activities map[string]*model.Activity // keyed by name
	mutex      sync.RWMutex
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		activities: make(map[string]*model.Activity),
	}
}

func (r *InMemoryActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.activities[activity.Name]; exists {
		return errors.New("activity already exists")
	}
	r.activities[activity.Name] = activity
	return nil
}

func (r *InMemoryActivityRepository) FindByName(ctx context.Context, name string) (*model.Activity, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	activity, exists := r.activities[name]
	if !exists {
		return nil, errors.New("activity not found")
	}
	return activity, nil
}

func (r *InMemoryActivityRepository) FindAll(ctx context.Context) ([]*model.Activity, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var activities []*model.Activity
	for _, activity := range r.activities {
		activities = append(activities, activity)
	}
	return activities, nil
}

func (r *InMemoryActivityRepository) Update(ctx context.Context, activity *model.Activity) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.activities[activity.Name]
	if !exists {
		return errors.New("activity not found")
	}
	r.activities[activity.Name] = activity
	return nil
}

func (r *InMemoryActivityRepository) Delete(ctx context.Context, name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.activities, name)
	return nil
}

// Staff user repository implementation
type InMemoryUserRepository struct {
	users map[string]*model.User
	mutex sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[string]*model.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	user, exists := r.users[id]
	if !exists {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func (r *InMemoryUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.GoogleID == googleID {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("user not found")
}

func (r *InMemoryUserRepository) Update(ctx context.Context, user *model.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.users[user.ID]
	if !exists {
		return errors.New("user not found")
	}
	r.users[user.ID] = user
	return nil
}

func (r *InMemoryUserRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.users, id)
	return nil
}
