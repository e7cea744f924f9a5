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

// Package pet holds the rules that move a pet's health, happiness, streak
// and total saved in response to deposit and withdrawal events. Everything
// here is pure: callers load the state, apply an event, and persist the
// result.
package pet

import (
	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
)

const (
	MinStat = 0
	MaxStat = 100
)

// Deltas per classification.
var (
	onTimeChanges   = models.StatChanges{HealthChange: 5, HappinessChange: 10}
	lateChanges     = models.StatChanges{HealthChange: -10, HappinessChange: -15}
	underChanges    = models.StatChanges{HealthChange: 2, HappinessChange: 5}
	withdrawPenalty = models.StatChanges{HealthChange: -30, HappinessChange: -40}
)

// Classification names how a deposit was judged.
type Classification string

const (
	OnTimeSufficient   Classification = "on_time"
	Late               Classification = "late"
	OnTimeInsufficient Classification = "under_amount"
	Withdrawal         Classification = "withdrawal"
)

// DepositEvent is a deposit as reported by the caller. OnTime is supplied,
// never derived from timestamps.
type DepositEvent struct {
	Amount          decimal.Decimal
	ScheduledAmount decimal.Decimal
	OnTime          bool
}

// WithdrawalEvent is an early withdrawal from savings.
type WithdrawalEvent struct {
	Amount decimal.Decimal
}

// Outcome is the new state plus what was applied to get there.
type Outcome struct {
	State          models.PetState
	Changes        models.StatChanges
	Classification Classification
}

// Clamp bounds a stat to [MinStat, MaxStat].
func Clamp(v int) int {
	return max(MinStat, min(MaxStat, v))
}

// ClassifyDeposit applies the precedence on-time+sufficient, then late, then
// on-time+insufficient. A late deposit is late whatever its amount.
func ClassifyDeposit(ev DepositEvent) Classification {
	switch {
	case ev.OnTime && ev.Amount.GreaterThanOrEqual(ev.ScheduledAmount):
		return OnTimeSufficient
	case !ev.OnTime:
		return Late
	default:
		return OnTimeInsufficient
	}
}

// ApplyDeposit returns the state after a deposit. Total saved grows by the
// deposit amount regardless of classification.
func ApplyDeposit(state models.PetState, ev DepositEvent) Outcome {
	class := ClassifyDeposit(ev)

	next := state
	var changes models.StatChanges
	switch class {
	case OnTimeSufficient:
		changes = onTimeChanges
		next.StreakDays = state.StreakDays + 1
	case Late:
		changes = lateChanges
		next.StreakDays = 0
	default:
		changes = underChanges
	}

	next.Health = Clamp(state.Health + changes.HealthChange)
	next.Happiness = Clamp(state.Happiness + changes.HappinessChange)
	next.TotalSaved = state.TotalSaved.Add(ev.Amount)

	return Outcome{State: next, Changes: changes, Classification: class}
}

// ApplyWithdrawal returns the state after a withdrawal: a flat penalty, a
// broken streak, and total saved reduced but never below zero.
func ApplyWithdrawal(state models.PetState, ev WithdrawalEvent) Outcome {
	next := state
	next.Health = Clamp(state.Health + withdrawPenalty.HealthChange)
	next.Happiness = Clamp(state.Happiness + withdrawPenalty.HappinessChange)
	next.StreakDays = 0
	next.TotalSaved = decimal.Max(decimal.Zero, state.TotalSaved.Sub(ev.Amount))

	return Outcome{State: next, Changes: withdrawPenalty, Classification: Withdrawal}
}
