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

package store

import (
	"context"
	"errors"
	"time"

	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrPetNotFound            = errors.New("pet state not found")
	ErrGoalNotFound           = errors.New("goal not found")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// CreateGoalParams contains everything written when a wallet sets up a goal.
type CreateGoalParams struct {
	WalletAddress string
	PetName       string
	PetType       string
	GoalAmount    decimal.Decimal
	DepositAmount decimal.Decimal
	Frequency     models.Frequency
	Now           time.Time
}

// CreateGoalOutcome is the user, the new current goal and the pet.
type CreateGoalOutcome struct {
	User        *models.User
	Goal        *models.Goal
	PetState    *models.PetState
	UserCreated bool
}

// PetTransition computes the next pet state from the current one. It runs
// inside the backend's write transaction and must not block.
type PetTransition func(current models.PetState, goal *models.Goal) (models.PetState, error)

// PetEventParams describes one behavioural event to persist.
type PetEventParams struct {
	WalletAddress   string
	TransactionType models.TransactionType
	Amount          decimal.Decimal
	OnSchedule      bool
	// AdvanceSchedule moves the current goal's dates forward from Now.
	AdvanceSchedule bool
	Now             time.Time
	Transition      PetTransition
}

// PetEventOutcome is what was persisted for an event.
type PetEventOutcome struct {
	User     *models.User
	Previous models.PetState
	PetState models.PetState
	Goal     *models.Goal
	Record   models.DepositRecord
}

// PetStore defines the contract that every persistence backend must satisfy.
type PetStore interface {
	// --- Identity ---
	ResolveUser(ctx context.Context, walletAddress string) (*models.User, bool, error)
	GetUserByWallet(ctx context.Context, walletAddress string) (*models.User, error)

	// --- Goals ---
	CreateGoal(ctx context.Context, params CreateGoalParams) (*CreateGoalOutcome, error)
	GetCurrentGoal(ctx context.Context, userId string) (*models.Goal, error)
	AdvanceSchedule(ctx context.Context, userId string, now time.Time) (*models.Goal, error)

	// --- Pets ---
	GetPetState(ctx context.Context, userId string) (*models.PetState, error)
	ProcessPetEvent(ctx context.Context, params PetEventParams) (*PetEventOutcome, error)
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardRow, error)

	// --- History ---
	RecordDeposit(ctx context.Context, record models.DepositRecord) error
	GetDepositHistory(ctx context.Context, userId string, limit, offset int) ([]models.DepositRecord, error)

	// --- Lifecycle ---
	Ping(ctx context.Context) error
	Close()
}

// HistoryMirror receives a copy of every committed DepositRecord. Mirrors are
// best effort: a failure is logged and never undoes the pet update.
type HistoryMirror interface {
	MirrorDeposit(ctx context.Context, user *models.User, record models.DepositRecord) error
	Name() string
	Close()
}
