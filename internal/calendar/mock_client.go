package calendar

import (
	"context"

	"mergington-activities/internal/model"
)

// MockCalendarClient is a mock implementation of CalendarClient for testing
type MockCalendarClient struct {
	PublishScheduleFunc func(ctx context.Context, accessToken string, activity *model.Activity) error
	RemoveScheduleFunc  func(ctx context.Context, accessToken, activityName string) error
}

func NewMockCalendarClient() *MockCalendarClient {
	return &MockCalendarClient{}
}

func (m *MockCalendarClient) PublishSchedule(ctx context.Context, accessToken string, activity *model.Activity) error {
	if m.PublishScheduleFunc != nil {
		return m.PublishScheduleFunc(ctx, accessToken, activity)
	}

	// Default mock behavior: success
	return nil
}

func (m *MockCalendarClient) RemoveSchedule(ctx context.Context, accessToken, activityName string) error {
	if m.RemoveScheduleFunc != nil {
		return m.RemoveScheduleFunc(ctx, accessToken, activityName)
	}

	// Default mock behavior: success
	return nil
}
