package cmd

import (
	"context"
	"fmt"

	"dispatch/config"
	"dispatch/handlers"
	"dispatch/repository"
	"dispatch/services"
	"dispatch/storage"
	"dispatch/utils"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const memorySessionCapacity = 1000

// App is the wired service graph shared by the subcommands.
type App struct {
	API handlers.API
	db  *gorm.DB
}

// newSheetClient connects to the spreadsheet endpoint, signing requests with
// the service account when one is configured.
func newSheetClient(ctx context.Context, cfg *config.Config) (storage.SheetClient, error) {
	var ts oauth2.TokenSource
	if cfg.SheetCredentialsPath != "" {
		var err error
		ts, err = storage.NewServiceAccountTokenSource(ctx, cfg.SheetCredentialsPath, storage.SheetScopes...)
		if err != nil {
			return nil, fmt.Errorf("failed to load sheet credentials: %w", err)
		}
	}
	utils.SetSheetTimeouts(cfg.SheetTimeout, cfg.SheetRetries)
	return storage.NewSheetClient(cfg.SheetAPIURL, storage.SheetClientOptions{
		Timeout:     cfg.SheetTimeout,
		Retries:     cfg.SheetRetries,
		TokenSource: ts,
	}), nil
}

// newDispatchService builds the indent workflow service. It is all the
// stats command needs.
func newDispatchService(client storage.SheetClient, cfg *config.Config, images *services.ImageService, activity *services.ActivityRecorder) *services.DispatchService {
	return services.NewDispatchService(repository.NewIndentRepository(client, cfg.DispatchSheet), services.DispatchServiceOptions{
		Images:   images,
		Activity: activity,
		Notifier: services.NewGatePassNotifier(cfg.SMTP),
		Location: cfg.Location,
	})
}

// NewApp wires every service. Sessions and activity logs go to postgres when
// DB_HOST is set and stay in memory otherwise.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	client, err := newSheetClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{}
	var (
		sessions      storage.SessionStore
		activityStore storage.ActivityStore
	)
	if cfg.DB.Enabled() {
		db, err := storage.InitGormDB(cfg.DB, cfg.Location.String())
		if err != nil {
			return nil, err
		}
		app.db = db
		sessions = storage.NewGormSessionStore(db)
		activityStore = storage.NewGormActivityStore(db)
	} else {
		log.Warn("DB_HOST not set: sessions are kept in memory and activity is only logged")
		sessions = storage.NewMemorySessionStore(memorySessionCapacity)
		activityStore = storage.NewLogActivityStore()
	}

	activity := services.NewActivityRecorder(activityStore)
	users := repository.NewUserRepository(client, cfg.LoginSheet)
	images := services.NewImageService(client, cfg.DriveFolderID)
	app.API = handlers.API{
		Auth:      services.NewAuthService(users, sessions, utils.NewTokenIssuer(cfg.JWTSecret), activity),
		Dispatch:  newDispatchService(client, cfg, images, activity),
		Users:     services.NewUserService(users, sessions, activity),
		Dropdowns: services.NewDropdownService(repository.NewDropdownRepository(client, cfg.DropdownSheet), cfg.DropdownTTL),
		Images:    images,
		Activity:  activity,
	}
	return app, nil
}

// Close releases the database connection, if any.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("failed to close database")
	}
}
