package repository

import (
	"context"

	"mergington-activities/internal/model"
)

// ActivityRepository defines the interface for activity data operations.
// Activities are addressed by name; names are unique.
type ActivityRepository interface {
	Create(ctx context.Context, activity *model.Activity) error
	FindByName(ctx context.Context, name string) (*model.Activity, error)
	FindAll(ctx context.Context) ([]*model.Activity, error)
	Update(ctx context.Context, activity *model.Activity) error
	Delete(ctx context.Context, name string) error
}

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}
