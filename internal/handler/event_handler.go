package handler

import (
	"net/http"

	"mergington-activities/internal/dispatch"

	"github.com/labstack/echo/v4"
)

// EventHandler ingests interaction events reported by the frontend and
// feeds them to the process-wide dispatcher, where delegated handlers
// filter on the target's classes.
type EventHandler struct {
	dispatcher *dispatch.Dispatcher
	logger     echo.Logger
}

func NewEventHandler(dispatcher *dispatch.Dispatcher, logger echo.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ReportEvent accepts a single interaction event and dispatches it
func (h *EventHandler) ReportEvent(c echo.Context) error {
	var event dispatch.Event
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if event.Type == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Event type is required",
		})
	}

	h.dispatcher.Dispatch(event)
	return c.NoContent(http.StatusAccepted)
}
