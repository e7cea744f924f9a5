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

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateGoal resolves the user, records a new current goal and creates the
// pet if the user has none, all in one transaction.
func (s *Service) CreateGoal(ctx context.Context, params store.CreateGoalParams) (*store.CreateGoalOutcome, error) {
	zap.L().Info("Creating goal",
		zap.String("wallet_address", params.WalletAddress),
		zap.String("goal_amount", params.GoalAmount.String()),
		zap.String("deposit_amount", params.DepositAmount.String()))

	now := params.Now.UTC()
	frequency := params.Frequency
	if frequency == "" {
		frequency = models.FrequencyWeekly
	}

	outcome := &store.CreateGoalOutcome{}
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		user, created, err := resolveUser(ctx, tx, params.WalletAddress, now)
		if err != nil {
			return err
		}
		outcome.User = user
		outcome.UserCreated = created

		goal := &models.Goal{
			Id:              uuid.New().String(),
			UserId:          user.Id,
			GoalAmount:      params.GoalAmount,
			DepositAmount:   params.DepositAmount,
			Frequency:       frequency,
			LastDepositDate: now,
			NextDepositDue:  now.Add(frequency.Period()),
			CreatedAt:       now,
		}
		_, err = tx.ExecContext(ctx, queryInsertGoal,
			goal.Id, goal.UserId, goal.GoalAmount.String(), goal.DepositAmount.String(),
			string(goal.Frequency), goal.LastDepositDate, goal.NextDepositDue, goal.CreatedAt)
		if err != nil {
			zap.L().Error("Failed to insert goal", zap.String("user_id", user.Id), zap.Error(err))
			return fmt.Errorf("unable to insert goal: %w", err)
		}
		outcome.Goal = goal

		// A user keeps the pet they already have when setting a new goal
		_, err = tx.ExecContext(ctx, queryInsertPetState,
			uuid.New().String(), user.Id, params.PetName, params.PetType,
			models.InitialHealth, models.InitialHappiness, now)
		if err != nil {
			zap.L().Error("Failed to insert pet state", zap.String("user_id", user.Id), zap.Error(err))
			return fmt.Errorf("unable to insert pet state: %w", err)
		}

		pet, err := getPetState(ctx, tx, user.Id)
		if err != nil {
			return err
		}
		outcome.PetState = pet
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Goal created",
		zap.String("user_id", outcome.User.Id),
		zap.String("goal_id", outcome.Goal.Id),
		zap.Bool("user_created", outcome.UserCreated),
		zap.Time("next_deposit_due", outcome.Goal.NextDepositDue))
	return outcome, nil
}

func (s *Service) GetCurrentGoal(ctx context.Context, userId string) (*models.Goal, error) {
	return getCurrentGoal(ctx, s.db, userId)
}

// AdvanceSchedule moves the current goal's dates forward from now.
func (s *Service) AdvanceSchedule(ctx context.Context, userId string, now time.Time) (*models.Goal, error) {
	var goal *models.Goal
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		goal, err = advanceSchedule(ctx, tx, userId, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func getCurrentGoal(ctx context.Context, q querier, userId string) (*models.Goal, error) {
	zap.L().Debug("Querying current goal", zap.String("user_id", userId))

	goal, err := scanGoal(q.QueryRowContext(ctx, queryGetCurrentGoal, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", store.ErrGoalNotFound, userId)
		}
		zap.L().Error("Failed to query current goal", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query current goal: %w", err)
	}
	return goal, nil
}

func advanceSchedule(ctx context.Context, q querier, userId string, now time.Time) (*models.Goal, error) {
	goal, err := getCurrentGoal(ctx, q, userId)
	if err != nil {
		return nil, err
	}
	if err := advanceGoal(ctx, q, goal, now); err != nil {
		return nil, err
	}
	return goal, nil
}

// advanceGoal sets last deposit to now and next due one period later,
// regardless of whether the deposit was late.
func advanceGoal(ctx context.Context, q querier, goal *models.Goal, now time.Time) error {
	now = now.UTC()
	goal.LastDepositDate = now
	goal.NextDepositDue = now.Add(goal.Frequency.Period())

	if _, err := q.ExecContext(ctx, queryAdvanceSchedule, goal.LastDepositDate, goal.NextDepositDue, goal.Id); err != nil {
		zap.L().Error("Failed to advance schedule", zap.String("goal_id", goal.Id), zap.Error(err))
		return fmt.Errorf("unable to advance schedule: %w", err)
	}

	zap.L().Debug("Advanced deposit schedule",
		zap.String("goal_id", goal.Id),
		zap.Time("next_deposit_due", goal.NextDepositDue))
	return nil
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var (
		goal                      models.Goal
		goalAmountStr, depositStr string
		frequency                 string
	)
	err := row.Scan(&goal.Id, &goal.UserId, &goalAmountStr, &depositStr, &frequency,
		&goal.LastDepositDate, &goal.NextDepositDue, &goal.CreatedAt)
	if err != nil {
		return nil, err
	}

	if goal.GoalAmount, err = decimal.NewFromString(goalAmountStr); err != nil {
		return nil, fmt.Errorf("failed to parse goal amount '%s': %w", goalAmountStr, err)
	}
	if goal.DepositAmount, err = decimal.NewFromString(depositStr); err != nil {
		return nil, fmt.Errorf("failed to parse deposit amount '%s': %w", depositStr, err)
	}
	goal.Frequency = models.Frequency(frequency)
	return &goal, nil
}
