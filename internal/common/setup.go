package common

import (
	"context"
	"fmt"
	"log"
	"strings"

	"stellar-pets-go/internal/api"
	"stellar-pets-go/internal/database"
	"stellar-pets-go/internal/formance"
	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// init loads environment variables from .env file if it exists
func init() {
	// Try to load .env file - if it doesn't exist, that's okay
	// Environment variables can be set via other means (shell export, docker, etc.)
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: No .env file found or unable to load it: %v\n", err)
		log.Println("Make sure to set environment variables via export or other means")
	} else {
		log.Println("✓ Loaded environment variables from .env file")
	}
}

type Services struct {
	DbService  *database.Service
	Mirror     store.HistoryMirror
	Catalog    *models.PetCatalog
	PetService *api.PetService
}

func InitializeLogger() (*zap.Logger, func()) {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	zap.ReplaceGlobals(logger)

	cleanup := func() {
		if err := logger.Sync(); err != nil {
			if !isIgnorableSyncError(err) {
				log.Printf("Failed to sync logger: %v\n", err)
			}
		}
	}

	return logger, cleanup
}

// InitializeServices opens the database, loads the pet catalog and, when
// configured, connects the Formance history mirror.
func InitializeServices(ctx context.Context, cfg *models.Config) (*Services, error) {
	zap.L().Info("Loading pet catalog", zap.String("file", cfg.Pets.CatalogFile))
	catalog, err := LoadPetCatalog(cfg.Pets.CatalogFile)
	if err != nil {
		return nil, err
	}

	dbService, err := database.NewService(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	var mirror store.HistoryMirror
	if cfg.History.Backend == models.HistoryBackendFormance {
		formanceService, err := formance.NewService(ctx, cfg.History.Formance)
		if err != nil {
			dbService.Close()
			return nil, fmt.Errorf("unable to initialize formance mirror: %w", err)
		}
		mirror = formanceService
	}

	zap.L().Info("Services initialized",
		zap.String("history_backend", cfg.History.Backend),
		zap.Int("pet_types", len(catalog.Species)))

	return &Services{
		DbService:  dbService,
		Mirror:     mirror,
		Catalog:    catalog,
		PetService: api.NewPetService(dbService, catalog, mirror),
	}, nil
}

func (cs *Services) Close() {
	if cs.Mirror != nil {
		cs.Mirror.Close()
	}
	if cs.DbService != nil {
		cs.DbService.Close()
	}
}

func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "sync /dev/stderr: inappropriate ioctl for device") ||
		strings.Contains(msg, "sync /dev/stdout: inappropriate ioctl for device")
}
