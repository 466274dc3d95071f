package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"mergington-activities/internal/calendar"
	"mergington-activities/internal/config"
	"mergington-activities/internal/dispatch"
	"mergington-activities/internal/handler"
	"mergington-activities/internal/logger"
	"mergington-activities/internal/model"
	"mergington-activities/internal/repository"
	"mergington-activities/internal/repository/memory"
	"mergington-activities/internal/repository/postgres"
	"mergington-activities/internal/router"
	"mergington-activities/internal/service"
	"mergington-activities/internal/sse"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	// Initialize logger
	appLogger := logger.New()

	// Initialize repositories (conditionally use postgres or in-memory based on DATABASE_URL)
	var activityRepo repository.ActivityRepository
	var userRepo repository.UserRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		activityRepo = postgres.NewPostgresActivityRepository(db)
		userRepo = postgres.NewPostgresUserRepository(db)

		// Initialize database tables
		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		activityRepo = memory.NewInMemoryActivityRepository()
		userRepo = memory.NewInMemoryUserRepository()

		appLogger.Info("Using in-memory repositories")
	}

	// Load default activities if none exist
	loadDefaultActivities(activityRepo, appLogger)

	// Initialize SSE manager for live roster updates
	sseManager := sse.NewManager(appLogger)
	defer sseManager.Close()

	// Initialize calendar client for publishing schedules
	calendarClient := calendar.NewCalendarClient(cfg.CalendarID, appLogger)

	// Initialize services
	authService := service.NewAuthService(userRepo, appLogger)
	activityService := service.NewActivityService(activityRepo, userRepo, calendarClient, sseManager, appLogger)

	// Initialize the interaction dispatcher and register the delegated
	// delete-button handler on it
	dispatcher := dispatch.NewDispatcher()
	defer dispatcher.Close()

	unregisterSub := dispatcher.Listen("click", dispatch.UnregisterClickHandler(appLogger))
	defer unregisterSub.Close()

	// Initialize handlers
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	authHandler := handler.NewAuthHandler(authService, cfg, e.Logger)
	activityHandler := handler.NewActivityHandler(activityService, authHandler, sseManager, e.Logger)
	eventHandler := handler.NewEventHandler(dispatcher, e.Logger)

	// Setup routes - using absolute path from project root
	projectRoot := getProjectRoot()
	staticPath := filepath.Join(projectRoot, "internal", "static")
	router.SetupRoutes(e, authHandler, activityHandler, eventHandler, staticPath)

	// Start server
	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
	}
}

// getProjectRoot returns the absolute path to the project root directory
func getProjectRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	// If we're running from the project root (most common case), return current directory
	if filepath.Base(wd) == "mergington-activities" {
		return wd
	}

	// Fallback: look for the static assets directory going up from here
	current := wd
	for {
		if _, err := os.Stat(filepath.Join(current, "internal", "static")); err == nil {
			return current
		}

		parent := filepath.Dir(current)
		if parent == current {
			// We reached the system root, return current directory
			return wd
		}
		current = parent
	}
}

// ActivityJSON represents an activity from the seed file
type ActivityJSON struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// loadDefaultActivities loads the default activities from activities.json if the store is empty
func loadDefaultActivities(activityRepo repository.ActivityRepository, logger *logger.Logger) {
	ctx := context.Background()

	activities, err := activityRepo.FindAll(ctx)
	if err != nil {
		logger.Info("Error checking for existing activities:", err.Error())
	}

	// If we already have activities, don't load again
	if len(activities) > 0 {
		logger.Info("Activities already exist, skipping loading")
		return
	}

	projectRoot := getProjectRoot()
	activitiesFilePath := filepath.Join(projectRoot, "activities.json")

	data, err := os.ReadFile(activitiesFilePath)
	if err != nil {
		logger.Error("Failed to read activities.json at path:", activitiesFilePath, err)
		return
	}

	var activitiesJSON []ActivityJSON
	if err := json.Unmarshal(data, &activitiesJSON); err != nil {
		logger.Error("Failed to parse activities.json:", err)
		return
	}

	logger.Info("Loading", len(activitiesJSON), "default activities")

	for _, act := range activitiesJSON {
		activity := model.NewActivity(act.Name, act.Description, act.Schedule, act.MaxParticipants)
		activity.Participants = append(activity.Participants, act.Participants...)

		if err := activityRepo.Create(ctx, activity); err != nil {
			logger.Error("Failed to create default activity:", act.Name, err)
		} else {
			logger.Info("Created default activity:", act.Name)
		}
	}
}
