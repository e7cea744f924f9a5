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
	"fmt"
	"strings"

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/pet"
	"stellar-pets-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	messageHappy      = "Pet is happy!"
	messageSad        = "Pet is sad!"
	messageWithdrawal = "Withdrawal successful, but pet is very sad!"
)

// ApplyDeposit runs a reported deposit through the pet rules, advances the
// goal schedule and appends the deposit to the history.
func (s *PetService) ApplyDeposit(ctx context.Context, req models.DepositRequest) (*models.DepositResult, error) {
	wallet := strings.TrimSpace(req.WalletAddress)
	if wallet == "" {
		return nil, fmt.Errorf("%w: walletAddress", ErrMissingField)
	}
	if req.DepositAmount == nil {
		return nil, fmt.Errorf("%w: depositAmount", ErrMissingField)
	}
	if req.DepositAmount.IsNegative() {
		return nil, fmt.Errorf("%w: depositAmount cannot be negative", ErrInvalidInput)
	}
	if req.ScheduledAmount != nil && req.ScheduledAmount.IsNegative() {
		return nil, fmt.Errorf("%w: scheduledAmount cannot be negative", ErrInvalidInput)
	}

	amount := *req.DepositAmount
	var applied pet.Outcome

	transition := func(current models.PetState, goal *models.Goal) (models.PetState, error) {
		var scheduled decimal.Decimal
		switch {
		case req.ScheduledAmount != nil:
			scheduled = *req.ScheduledAmount
		case goal != nil:
			scheduled = goal.DepositAmount
		default:
			return models.PetState{}, fmt.Errorf("%w: no scheduled amount for %s", store.ErrGoalNotFound, wallet)
		}

		applied = pet.ApplyDeposit(current, pet.DepositEvent{
			Amount:          amount,
			ScheduledAmount: scheduled,
			OnTime:          req.OnTime,
		})
		return pet.Evolve(applied.State, s.catalog.EvolutionSteps), nil
	}

	unlock := s.locks.Lock(wallet)
	defer unlock()

	outcome, err := s.store.ProcessPetEvent(ctx, store.PetEventParams{
		WalletAddress:   wallet,
		TransactionType: models.TransactionDeposit,
		Amount:          amount,
		OnSchedule:      req.OnTime,
		AdvanceSchedule: true,
		Now:             s.now(),
		Transition:      transition,
	})
	if err != nil {
		zap.L().Error("Deposit processing failed", zap.String("wallet_address", wallet), zap.Error(err))
		s.record(string(models.TransactionDeposit), "error")
		return nil, err
	}

	s.mirrorRecord(ctx, outcome.User, outcome.Record)
	s.record(string(models.TransactionDeposit), string(applied.Classification))

	message := messageSad
	if req.OnTime {
		message = messageHappy
	}

	zap.L().Info("Deposit applied to pet",
		zap.String("wallet_address", wallet),
		zap.String("classification", string(applied.Classification)),
		zap.Int("growth_level", outcome.PetState.GrowthLevel))

	return &models.DepositResult{
		Success:  true,
		NewState: snapshot(outcome.PetState),
		Changes:  applied.Changes,
		Message:  message,
	}, nil
}

// ApplyWithdrawal penalizes the pet for an early withdrawal. The goal
// schedule is left untouched.
func (s *PetService) ApplyWithdrawal(ctx context.Context, req models.WithdrawalRequest) (*models.WithdrawalResult, error) {
	wallet := strings.TrimSpace(req.WalletAddress)
	if wallet == "" {
		return nil, fmt.Errorf("%w: walletAddress", ErrMissingField)
	}
	if req.Amount == nil {
		return nil, fmt.Errorf("%w: amount", ErrMissingField)
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	amount := *req.Amount
	var applied pet.Outcome

	transition := func(current models.PetState, _ *models.Goal) (models.PetState, error) {
		applied = pet.ApplyWithdrawal(current, pet.WithdrawalEvent{Amount: amount})
		return pet.Evolve(applied.State, s.catalog.EvolutionSteps), nil
	}

	unlock := s.locks.Lock(wallet)
	defer unlock()

	outcome, err := s.store.ProcessPetEvent(ctx, store.PetEventParams{
		WalletAddress:   wallet,
		TransactionType: models.TransactionWithdrawal,
		Amount:          amount,
		OnSchedule:      false,
		Now:             s.now(),
		Transition:      transition,
	})
	if err != nil {
		zap.L().Error("Withdrawal processing failed", zap.String("wallet_address", wallet), zap.Error(err))
		s.record(string(models.TransactionWithdrawal), "error")
		return nil, err
	}

	s.mirrorRecord(ctx, outcome.User, outcome.Record)
	s.record(string(models.TransactionWithdrawal), string(applied.Classification))

	zap.L().Info("Withdrawal applied to pet",
		zap.String("wallet_address", wallet),
		zap.String("amount", amount.String()),
		zap.String("total_saved", outcome.PetState.TotalSaved.String()))

	return &models.WithdrawalResult{
		Success:         true,
		WithdrawnAmount: amount,
		NewState:        snapshot(outcome.PetState),
		Penalty:         applied.Changes,
		Message:         messageWithdrawal,
	}, nil
}

func snapshot(state models.PetState) models.PetSnapshot {
	return models.PetSnapshot{
		Health:      state.Health,
		Happiness:   state.Happiness,
		GrowthLevel: state.GrowthLevel,
		StreakDays:  state.StreakDays,
		TotalSaved:  state.TotalSaved.InexactFloat64(),
	}
}
