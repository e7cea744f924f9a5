/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"go.uber.org/zap"
)

// Validation errors. Store sentinels (store.ErrUserNotFound and friends)
// pass through unchanged so callers can classify with errors.Is.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidInput = errors.New("invalid input")
)

// EventRecorder observes processed pet events.
type EventRecorder interface {
	PetEvent(kind, result string)
}

// PetService is the entry point for every savings pet operation.
type PetService struct {
	store    store.PetStore
	catalog  *models.PetCatalog
	mirror   store.HistoryMirror
	recorder EventRecorder
	locks    *keyedMutex
	now      func() time.Time
}

// NewPetService wires the service. mirror may be nil when history is kept
// only in the primary store.
func NewPetService(petStore store.PetStore, catalog *models.PetCatalog, mirror store.HistoryMirror) *PetService {
	if catalog == nil {
		catalog = models.DefaultPetCatalog()
	}
	return &PetService{
		store:   petStore,
		catalog: catalog,
		mirror:  mirror,
		locks:   newKeyedMutex(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithRecorder attaches an event recorder and returns the service.
func (s *PetService) WithRecorder(recorder EventRecorder) *PetService {
	s.recorder = recorder
	return s
}

func (s *PetService) HealthCheck(ctx context.Context) (*models.HealthStatus, error) {
	if err := s.store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	backend := models.HistoryBackendSQLite
	if s.mirror != nil {
		backend = s.mirror.Name()
	}
	return &models.HealthStatus{
		Status:         "ok",
		HistoryBackend: backend,
		Timestamp:      s.now(),
	}, nil
}

// ListPetTypes returns the adoptable species.
func (s *PetService) ListPetTypes() []models.PetSpecies {
	species := make([]models.PetSpecies, len(s.catalog.Species))
	copy(species, s.catalog.Species)
	return species
}

func (s *PetService) record(kind, result string) {
	if s.recorder != nil {
		s.recorder.PetEvent(kind, result)
	}
}

// mirrorRecord forwards a committed record. Failures are logged only; the
// pet update has already been committed.
func (s *PetService) mirrorRecord(ctx context.Context, user *models.User, record models.DepositRecord) {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.MirrorDeposit(ctx, user, record); err != nil {
		zap.L().Warn("Failed to mirror history record",
			zap.String("mirror", s.mirror.Name()),
			zap.String("record_id", record.Id),
			zap.Error(err))
	}
}
