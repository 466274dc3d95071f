package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/calendar"
	"mergington-activities/internal/handler"
	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
	"mergington-activities/internal/repository/memory"
	"mergington-activities/internal/service"
	"mergington-activities/internal/sse"
)

func newTestHandler(t *testing.T) (*handler.ActivityHandler, *echo.Echo, *memory.InMemoryActivityRepository) {
	t.Helper()

	activityRepo := memory.NewInMemoryActivityRepository()
	userRepo := memory.NewInMemoryUserRepository()
	appLogger := logger.New()
	sseManager := sse.NewManager(appLogger)
	t.Cleanup(sseManager.Close)

	svc := service.NewActivityService(activityRepo, userRepo, calendar.NewMockCalendarClient(), sseManager, appLogger)

	e := echo.New()
	h := handler.NewActivityHandler(svc, nil, sseManager, e.Logger)
	return h, e, activityRepo
}

func seedChessClub(t *testing.T, repo *memory.InMemoryActivityRepository) {
	t.Helper()

	activity := model.NewActivity("Chess Club", "Learn strategies and compete in chess tournaments", "Fridays, 3:30 PM - 5:00 PM", 12)
	activity.Participants = append(activity.Participants, "michael@mergington.edu")
	require.NoError(t, repo.Create(context.Background(), activity))
}

func TestGetActivities(t *testing.T) {
	h, e, repo := newTestHandler(t)
	seedChessClub(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/activities", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetActivities(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var activities map[string]*model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activities))
	require.Contains(t, activities, "Chess Club")
	assert.Equal(t, 12, activities["Chess Club"].MaxParticipants)
	assert.Equal(t, []string{"michael@mergington.edu"}, activities["Chess Club"].Participants)
}

func signupContext(e *echo.Echo, method, activity, email string) (echo.Context, *httptest.ResponseRecorder) {
	target := "/?email=" + url.QueryEscape(email)
	if email == "" {
		target = "/"
	}
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues(activity)
	return c, rec
}

func TestSignUp(t *testing.T) {
	h, e, repo := newTestHandler(t)
	seedChessClub(t, repo)

	c, rec := signupContext(e, http.MethodPost, "Chess Club", "daniel@mergington.edu")
	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Signed up daniel@mergington.edu for Chess Club")

	// Second signup with the same email fails
	c, rec = signupContext(e, http.MethodPost, "Chess Club", "daniel@mergington.edu")
	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already signed up")
}

func TestSignUpUnknownActivity(t *testing.T) {
	h, e, _ := newTestHandler(t)

	c, rec := signupContext(e, http.MethodPost, "Nonexistent Activity", "test@mergington.edu")
	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Activity not found")
}

func TestSignUpMissingEmail(t *testing.T) {
	h, e, repo := newTestHandler(t)
	seedChessClub(t, repo)

	c, rec := signupContext(e, http.MethodPost, "Chess Club", "")
	require.NoError(t, h.SignUp(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required")
}

func TestUnregister(t *testing.T) {
	h, e, repo := newTestHandler(t)
	seedChessClub(t, repo)

	c, rec := signupContext(e, http.MethodDelete, "Chess Club", "michael@mergington.edu")
	require.NoError(t, h.Unregister(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unregistered michael@mergington.edu from Chess Club")

	// The roster no longer contains the email
	activity, err := repo.FindByName(context.Background(), "Chess Club")
	require.NoError(t, err)
	assert.False(t, activity.HasParticipant("michael@mergington.edu"))

	// Unregistering a student who is not signed up fails
	c, rec = signupContext(e, http.MethodDelete, "Chess Club", "michael@mergington.edu")
	require.NoError(t, h.Unregister(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not signed up")
}

func TestUnregisterUnknownActivity(t *testing.T) {
	h, e, _ := newTestHandler(t)

	c, rec := signupContext(e, http.MethodDelete, "Nonexistent Activity", "test@mergington.edu")
	require.NoError(t, h.Unregister(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Activity not found")
}

func TestGetRoster(t *testing.T) {
	h, e, repo := newTestHandler(t)
	seedChessClub(t, repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("name")
	c.SetParamValues("Chess Club")

	require.NoError(t, h.GetRoster(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var activity model.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &activity))
	assert.Equal(t, "Chess Club", activity.Name)
	assert.Equal(t, []string{"michael@mergington.edu"}, activity.Participants)
}
