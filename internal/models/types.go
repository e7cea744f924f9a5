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

import "time"

// Frequency is the goal cadence. Only weekly is in use.
type Frequency string

const (
	FrequencyWeekly Frequency = "weekly"
)

// Period returns the length of one cadence period. Unknown cadences fall
// back to weekly.
func (f Frequency) Period() time.Duration {
	return 7 * 24 * time.Hour
}

// TransactionType classifies a DepositRecord.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

// Initial pet values at goal creation.
const (
	InitialHealth    = 50
	InitialHappiness = 50
	DefaultPetName   = "My Pet"
	DefaultPetType   = "dragon"
)
