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

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PetSnapshot is the pet state returned after an event
type PetSnapshot struct {
	Health      int     `json:"health"`
	Happiness   int     `json:"happiness"`
	GrowthLevel int     `json:"growthLevel"`
	StreakDays  int     `json:"streakDays"`
	TotalSaved  float64 `json:"totalSaved"`
}

// StatChanges are the deltas an event applied before clamping
type StatChanges struct {
	HealthChange    int `json:"healthChange"`
	HappinessChange int `json:"happinessChange"`
}

// CreateGoalResult represents the result of creating a savings goal
type CreateGoalResult struct {
	Success  bool      `json:"success"`
	UserId   string    `json:"userId"`
	Goal     *Goal     `json:"goal"`
	PetState *PetState `json:"petState"`
}

// DepositResult represents the result of applying a deposit to a pet
type DepositResult struct {
	Success  bool        `json:"success"`
	NewState PetSnapshot `json:"newState"`
	Changes  StatChanges `json:"changes"`
	Message  string      `json:"message"`
}

// WithdrawalResult represents the result of applying a withdrawal penalty
type WithdrawalResult struct {
	Success         bool            `json:"success"`
	WithdrawnAmount decimal.Decimal `json:"withdrawnAmount"`
	NewState        PetSnapshot     `json:"newState"`
	Penalty         StatChanges     `json:"penalty"`
	Message         string          `json:"message"`
}

// PetStateView is the display read model of a pet and its goal
type PetStateView struct {
	PetName     string  `json:"petName"`
	PetType     string  `json:"petType"`
	Health      int     `json:"health"`
	Happiness   int     `json:"happiness"`
	GrowthLevel int     `json:"growthLevel"`
	StreakDays  int     `json:"streakDays"`
	TotalSaved  float64 `json:"totalSaved"`
	GoalAmount  float64 `json:"goalAmount"`
}

// DepositHistoryEntry represents a deposit or withdrawal in the user's history
type DepositHistoryEntry struct {
	Id         string          `json:"id"`
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	OnSchedule bool            `json:"onSchedule"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// LeaderboardEntry is one ranked pet
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	User       string  `json:"user"`
	PetName    string  `json:"petName"`
	PetType    string  `json:"petType"`
	TotalSaved float64 `json:"totalSaved"`
	StreakDays int     `json:"streakDays"`
	Health     int     `json:"health"`
}

// CreateGoalRequest is the input to CreateGoal. Amounts are pointers so a
// missing field can be told apart from zero.
type CreateGoalRequest struct {
	WalletAddress string           `json:"walletAddress"`
	PetName       string           `json:"petName"`
	PetType       string           `json:"petType"`
	GoalAmount    *decimal.Decimal `json:"goalAmount"`
	DepositAmount *decimal.Decimal `json:"depositAmount"`
}

// DepositRequest is a deposit reported for a wallet. ScheduledAmount falls
// back to the current goal's per-period amount when omitted.
type DepositRequest struct {
	WalletAddress   string           `json:"walletAddress"`
	DepositAmount   *decimal.Decimal `json:"depositAmount"`
	ScheduledAmount *decimal.Decimal `json:"scheduledAmount"`
	OnTime          bool             `json:"onTime"`
}

// WithdrawalRequest is an early withdrawal from savings
type WithdrawalRequest struct {
	WalletAddress string           `json:"walletAddress"`
	Amount        *decimal.Decimal `json:"amount"`
}

// HealthStatus reports service liveness
type HealthStatus struct {
	Status         string    `json:"status"`
	HistoryBackend string    `json:"historyBackend"`
	Timestamp      time.Time `json:"timestamp"`
}
