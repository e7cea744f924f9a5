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

// User is keyed by wallet address; Id is the internal surrogate key.
type User struct {
	Id            string    `db:"id"`
	WalletAddress string    `db:"wallet_address"`
	CreatedAt     time.Time `db:"created_at"`
}

// Goal is a savings target plus the recurring per-period deposit expectation.
type Goal struct {
	Id              string          `db:"id" json:"id"`
	UserId          string          `db:"user_id" json:"userId"`
	GoalAmount      decimal.Decimal `db:"goal_amount" json:"goalAmount"`
	DepositAmount   decimal.Decimal `db:"deposit_amount" json:"depositAmount"`
	Frequency       Frequency       `db:"frequency" json:"frequency"`
	LastDepositDate time.Time       `db:"last_deposit_date" json:"lastDepositDate"`
	NextDepositDue  time.Time       `db:"next_deposit_due" json:"nextDepositDue"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
}

// PetState is the gamified view of a user's saving behaviour.
type PetState struct {
	Id          string          `db:"id" json:"id"`
	UserId      string          `db:"user_id" json:"userId"`
	PetName     string          `db:"pet_name" json:"petName"`
	PetType     string          `db:"pet_type" json:"petType"`
	Health      int             `db:"health" json:"health"`
	Happiness   int             `db:"happiness" json:"happiness"`
	GrowthLevel int             `db:"growth_level" json:"growthLevel"`
	StreakDays  int             `db:"streak_days" json:"streakDays"`
	TotalSaved  decimal.Decimal `db:"total_saved" json:"totalSaved"`
	Version     int64           `db:"version" json:"-"`
	LastUpdated time.Time       `db:"last_updated" json:"lastUpdated"`
}

// DepositRecord is one append-only history entry.
type DepositRecord struct {
	Id              string          `db:"id"`
	UserId          string          `db:"user_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	OnSchedule      bool            `db:"on_schedule"`
	CreatedAt       time.Time       `db:"created_at"`
}

// LeaderboardRow is a pet ranked by total saved.
type LeaderboardRow struct {
	WalletAddress string
	PetName       string
	PetType       string
	Health        int
	StreakDays    int
	TotalSaved    decimal.Decimal
}
