package calendar

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
	"mergington-activities/internal/service"
)

// calendarClient publishes activity schedules to the school's Google
// Calendar. Events are tagged with a private extended property carrying the
// activity name so they can be found and replaced later.
type calendarClient struct {
	calendarID string
	logger     *logger.Logger
}

func NewCalendarClient(calendarID string, logger *logger.Logger) service.CalendarClient {
	return &calendarClient{
		calendarID: calendarID,
		logger:     logger,
	}
}

type oauth2Transport struct {
	token string
}

func (t *oauth2Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *calendarClient) newService(ctx context.Context, accessToken string) (*calendar.Service, error) {
	httpClient := &http.Client{
		Transport: &oauth2Transport{token: accessToken},
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}
	return svc, nil
}

func (c *calendarClient) PublishSchedule(ctx context.Context, accessToken string, activity *model.Activity) error {
	svc, err := c.newService(ctx, accessToken)
	if err != nil {
		return err
	}

	// Remove a previous entry for this activity before inserting the new one
	if err := c.removeByActivityName(svc, activity.Name); err != nil {
		c.logger.Warn("Failed to clear previous calendar entry for:", activity.Name, err)
	}

	today := time.Now().Format("2006-01-02")
	event := &calendar.Event{
		Summary:     activity.Name,
		Description: fmt.Sprintf("%s\nSchedule: %s", activity.Description, activity.Schedule),
		Start:       &calendar.EventDateTime{Date: today},
		End:         &calendar.EventDateTime{Date: today},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{"activity": activity.Name},
		},
	}

	if _, err := svc.Events.Insert(c.calendarID, event).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to insert calendar event: %w", err)
	}

	c.logger.Info("Published schedule to calendar for:", activity.Name)
	return nil
}

func (c *calendarClient) RemoveSchedule(ctx context.Context, accessToken, activityName string) error {
	svc, err := c.newService(ctx, accessToken)
	if err != nil {
		return err
	}

	if err := c.removeByActivityName(svc, activityName); err != nil {
		return err
	}

	c.logger.Info("Removed schedule from calendar for:", activityName)
	return nil
}

func (c *calendarClient) removeByActivityName(svc *calendar.Service, activityName string) error {
	list, err := svc.Events.List(c.calendarID).
		PrivateExtendedProperty("activity=" + activityName).
		Do()
	if err != nil {
		return fmt.Errorf("failed to list calendar events: %w", err)
	}

	for _, item := range list.Items {
		if err := svc.Events.Delete(c.calendarID, item.Id).Do(); err != nil {
			return fmt.Errorf("failed to delete calendar event %s: %w", item.Id, err)
		}
	}
	return nil
}
