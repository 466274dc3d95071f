package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mergington-activities/internal/service"
	"mergington-activities/internal/sse"

	"github.com/labstack/echo/v4"
)

type ActivityHandler struct {
	activityService service.ActivityService
	authHandler     *AuthHandler
	sseManager      *sse.Manager
	logger          echo.Logger
}

func NewActivityHandler(activityService service.ActivityService, authHandler *AuthHandler, sseManager *sse.Manager, logger echo.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		authHandler:     authHandler,
		sseManager:      sseManager,
		logger:          logger,
	}
}

// GetActivities returns all activities keyed by name
func (h *ActivityHandler) GetActivities(c echo.Context) error {
	activities, err := h.activityService.GetAllActivities(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to get activities:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to get activities",
		})
	}

	return c.JSON(http.StatusOK, activities)
}

// SignUp adds a student email to an activity's roster
func (h *ActivityHandler) SignUp(c echo.Context) error {
	name := c.Param("name")
	email := c.QueryParam("email")

	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Email is required",
		})
	}

	_, err := h.activityService.SignUp(c.Request().Context(), name, email)
	if err != nil {
		return h.activityError(c, err, "Failed to sign up")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Signed up %s for %s", email, name),
	})
}

// Unregister removes a student email from an activity's roster
func (h *ActivityHandler) Unregister(c echo.Context) error {
	name := c.Param("name")
	email := c.QueryParam("email")

	if email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Email is required",
		})
	}

	_, err := h.activityService.Unregister(c.Request().Context(), name, email)
	if err != nil {
		return h.activityError(c, err, "Failed to unregister")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Unregistered %s from %s", email, name),
	})
}

// CreateActivity creates a new activity (staff only)
func (h *ActivityHandler) CreateActivity(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	var req struct {
		Name            string `json:"name"`
		Description     string `json:"description"`
		Schedule        string `json:"schedule"`
		MaxParticipants int    `json:"max_participants"`
	}

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Name is required",
		})
	}

	activity, err := h.activityService.CreateActivity(
		c.Request().Context(),
		user.ID,
		req.Name,
		req.Description,
		req.Schedule,
		req.MaxParticipants,
	)
	if err != nil {
		if errors.Is(err, service.ErrActivityExists) {
			return c.JSON(http.StatusConflict, map[string]string{
				"error": "Activity already exists",
			})
		}
		h.logger.Error("Failed to create activity:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "Failed to create activity",
		})
	}

	return c.JSON(http.StatusCreated, activity)
}

// DeleteActivity removes an activity entirely (staff only)
func (h *ActivityHandler) DeleteActivity(c echo.Context) error {
	user, err := h.authHandler.GetCurrentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{
			"error": "Unauthorized",
		})
	}

	name := c.Param("name")
	if err := h.activityService.DeleteActivity(c.Request().Context(), user.ID, name); err != nil {
		return h.activityError(c, err, "Failed to delete activity")
	}

	return c.NoContent(http.StatusNoContent)
}

// GetRoster returns one activity with its full participant list (staff only)
func (h *ActivityHandler) GetRoster(c echo.Context) error {
	name := c.Param("name")

	activity, err := h.activityService.GetActivity(c.Request().Context(), name)
	if err != nil {
		return h.activityError(c, err, "Failed to get roster")
	}

	return c.JSON(http.StatusOK, activity)
}

// RosterUpdates provides Server-Sent Events for live roster changes
func (h *ActivityHandler) RosterUpdates(c echo.Context) error {
	// Set response headers for SSE
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")

	clientChannel := h.sseManager.AddClient()
	defer func() {
		h.sseManager.RemoveClient(clientChannel)
	}()

	// Send initial connection confirmation
	initEvent := map[string]interface{}{
		"type": "connection",
		"data": map[string]string{
			"message": "Connected to roster updates",
		},
		"time": time.Now().Unix(),
	}

	initJSON, _ := json.Marshal(initEvent)
	fmt.Fprintf(c.Response(), "data: %s\n\n", initJSON)
	c.Response().Flush()

	for {
		select {
		case eventData, ok := <-clientChannel:
			if !ok {
				return nil
			}
			fmt.Fprintf(c.Response(), "data: %s\n\n", eventData)
			c.Response().Flush()
		case <-h.sseManager.Done():
			return nil
		case <-c.Request().Context().Done():
			// Client disconnected
			return nil
		}
	}
}

// activityError maps the service's sentinel errors onto HTTP codes
func (h *ActivityHandler) activityError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "Activity not found",
		})
	case errors.Is(err, service.ErrAlreadySignedUp):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Student is already signed up",
		})
	case errors.Is(err, service.ErrNotSignedUp):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Student is not signed up for this activity",
		})
	case errors.Is(err, service.ErrActivityFull):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "Activity is full",
		})
	default:
		h.logger.Error(fallback+":", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": fallback,
		})
	}
}
