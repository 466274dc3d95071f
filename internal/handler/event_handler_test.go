package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mergington-activities/internal/dispatch"
	"mergington-activities/internal/handler"
	"mergington-activities/internal/logger"
)

func newEventTestSetup(t *testing.T) (*handler.EventHandler, *echo.Echo, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	appLogger := logger.NewWithWriter(&buf)

	dispatcher := dispatch.NewDispatcher()
	t.Cleanup(dispatcher.Close)
	dispatcher.Listen("click", dispatch.UnregisterClickHandler(appLogger))

	e := echo.New()
	h := handler.NewEventHandler(dispatcher, e.Logger)
	return h, e, &buf
}

func postEvent(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestReportEventDeleteButtonClick(t *testing.T) {
	h, e, buf := newEventTestSetup(t)

	body := `{"type":"click","target":{"tag":"button","classes":["delete-btn"],"dataset":{"email":"a@example.com","activity":"Chess Club"}}}`
	c, rec := postEvent(e, body)

	require.NoError(t, h.ReportEvent(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, buf.String(), "Unregistering participant: a@example.com")
}

func TestReportEventNonMarkerClick(t *testing.T) {
	h, e, buf := newEventTestSetup(t)

	body := `{"type":"click","target":{"tag":"button","classes":["save-btn"],"dataset":{"email":"a@example.com"}}}`
	c, rec := postEvent(e, body)

	require.NoError(t, h.ReportEvent(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotContains(t, buf.String(), "Unregistering participant:")
}

func TestReportEventMissingType(t *testing.T) {
	h, e, _ := newEventTestSetup(t)

	c, rec := postEvent(e, `{"target":{"tag":"button","classes":["delete-btn"]}}`)

	require.NoError(t, h.ReportEvent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event type is required")
}

func TestReportEventMalformedBody(t *testing.T) {
	h, e, _ := newEventTestSetup(t)

	c, rec := postEvent(e, `{not json`)

	require.NoError(t, h.ReportEvent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid request body")
}
