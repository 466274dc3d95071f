package service

import (
	"context"
	"errors"
	"time"

	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
	"mergington-activities/internal/repository"

	"github.com/samber/lo"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrActivityExists   = errors.New("activity already exists")
	ErrAlreadySignedUp  = errors.New("student is already signed up")
	ErrNotSignedUp      = errors.New("student is not signed up for this activity")
	ErrActivityFull     = errors.New("activity is full")
)

type activityService struct {
	activityRepo repository.ActivityRepository
	userRepo     repository.UserRepository
	calendar     CalendarClient
	broadcaster  RosterBroadcaster
	logger       *logger.Logger
}

func NewActivityService(
	activityRepo repository.ActivityRepository,
	userRepo repository.UserRepository,
	calendar CalendarClient,
	broadcaster RosterBroadcaster,
	logger *logger.Logger,
) ActivityService {
	return &activityService{
		activityRepo: activityRepo,
		userRepo:     userRepo,
		calendar:     calendar,
		broadcaster:  broadcaster,
		logger:       logger,
	}
}

// GetAllActivities returns every activity keyed by name, the shape the
// frontend renders from.
func (s *activityService) GetAllActivities(ctx context.Context) (map[string]*model.Activity, error) {
	activities, err := s.activityRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list activities:", err)
		return nil, err
	}
	return lo.KeyBy(activities, func(a *model.Activity) string {
		return a.Name
	}), nil
}

func (s *activityService) GetActivity(ctx context.Context, name string) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByName(ctx, name)
	if err != nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

func (s *activityService) SignUp(ctx context.Context, name, email string) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByName(ctx, name)
	if err != nil {
		return nil, ErrActivityNotFound
	}

	if activity.HasParticipant(email) {
		return nil, ErrAlreadySignedUp
	}
	if activity.IsFull() {
		return nil, ErrActivityFull
	}

	activity.Participants = append(activity.Participants, email)
	activity.UpdatedAt = time.Now()

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		s.logger.Error("Failed to sign up participant:", err)
		return nil, err
	}

	s.logger.Infof("Signed up %s for %s", email, name)
	s.broadcaster.BroadcastRosterUpdate(activity)
	return activity, nil
}

func (s *activityService) Unregister(ctx context.Context, name, email string) (*model.Activity, error) {
	activity, err := s.activityRepo.FindByName(ctx, name)
	if err != nil {
		return nil, ErrActivityNotFound
	}

	if !activity.HasParticipant(email) {
		return nil, ErrNotSignedUp
	}

	activity.Participants = lo.Without(activity.Participants, email)
	activity.UpdatedAt = time.Now()

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		s.logger.Error("Failed to unregister participant:", err)
		return nil, err
	}

	s.logger.Infof("Unregistered %s from %s", email, name)
	s.broadcaster.BroadcastRosterUpdate(activity)
	return activity, nil
}

func (s *activityService) CreateActivity(ctx context.Context, userID, name, description, schedule string, maxParticipants int) (*model.Activity, error) {
	if _, err := s.activityRepo.FindByName(ctx, name); err == nil {
		return nil, ErrActivityExists
	}

	activity := model.NewActivity(name, description, schedule, maxParticipants)
	if err := s.activityRepo.Create(ctx, activity); err != nil {
		s.logger.Error("Failed to create activity:", err)
		return nil, err
	}
	s.logger.Info("Created activity:", activity.Name)

	s.publishSchedule(ctx, userID, activity)
	return activity, nil
}

func (s *activityService) DeleteActivity(ctx context.Context, userID, name string) error {
	activity, err := s.activityRepo.FindByName(ctx, name)
	if err != nil {
		return ErrActivityNotFound
	}

	if err := s.activityRepo.Delete(ctx, activity.Name); err != nil {
		s.logger.Error("Failed to delete activity:", err)
		return err
	}
	s.logger.Info("Deleted activity:", activity.Name)

	// Best effort, same as publishing
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil && user.AccessToken != "" {
		if err := s.calendar.RemoveSchedule(ctx, user.AccessToken, activity.Name); err != nil {
			s.logger.Error("Failed to remove schedule from calendar:", err)
		}
	}
	return nil
}

// publishSchedule pushes the activity's schedule to the school calendar using
// the acting staff member's token. Calendar failures are logged and swallowed;
// the activity itself is already persisted.
func (s *activityService) publishSchedule(ctx context.Context, userID string, activity *model.Activity) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil || user.AccessToken == "" {
		s.logger.Warn("No access token available, skipping calendar publish for:", activity.Name)
		return
	}

	if err := s.calendar.PublishSchedule(ctx, user.AccessToken, activity); err != nil {
		s.logger.Error("Failed to publish schedule to calendar:", err)
	}
}
