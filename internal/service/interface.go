package service

import (
	"context"

	"mergington-activities/internal/model"
)

type AuthService interface {
	GetOrCreateUser(ctx context.Context, googleID, email, name, accessToken, refreshToken string, tokenExpiry interface{}) (*model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type ActivityService interface {
	GetAllActivities(ctx context.Context) (map[string]*model.Activity, error)
	GetActivity(ctx context.Context, name string) (*model.Activity, error)
	SignUp(ctx context.Context, name, email string) (*model.Activity, error)
	Unregister(ctx context.Context, name, email string) (*model.Activity, error)
	CreateActivity(ctx context.Context, userID, name, description, schedule string, maxParticipants int) (*model.Activity, error)
	DeleteActivity(ctx context.Context, userID, name string) error
}

// CalendarClient interface for publishing activity schedules to the school calendar
type CalendarClient interface {
	PublishSchedule(ctx context.Context, accessToken string, activity *model.Activity) error
	RemoveSchedule(ctx context.Context, accessToken, activityName string) error
}

// RosterBroadcaster pushes roster changes to connected browsers
type RosterBroadcaster interface {
	BroadcastRosterUpdate(activity *model.Activity)
}
