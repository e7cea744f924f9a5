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

	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Service) GetPetState(ctx context.Context, userId string) (*models.PetState, error) {
	return getPetState(ctx, s.db, userId)
}

// ProcessPetEvent applies one deposit or withdrawal for a wallet. The pet
// update, the optional schedule advance and the history append commit
// together or not at all.
func (s *Service) ProcessPetEvent(ctx context.Context, params store.PetEventParams) (*store.PetEventOutcome, error) {
	if params.Transition == nil {
		return nil, fmt.Errorf("pet transition is required")
	}

	zap.L().Info("Processing pet event",
		zap.String("wallet_address", params.WalletAddress),
		zap.String("type", string(params.TransactionType)),
		zap.String("amount", params.Amount.String()),
		zap.Bool("on_schedule", params.OnSchedule))

	now := params.Now.UTC()
	outcome := &store.PetEventOutcome{}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		user, err := getUserByWallet(ctx, tx, params.WalletAddress)
		if err != nil {
			return err
		}
		outcome.User = user

		current, err := getPetState(ctx, tx, user.Id)
		if err != nil {
			return err
		}
		outcome.Previous = *current

		goal, err := getCurrentGoal(ctx, tx, user.Id)
		if err != nil && !errors.Is(err, store.ErrGoalNotFound) {
			return err
		}

		next, err := params.Transition(*current, goal)
		if err != nil {
			return err
		}
		next.LastUpdated = now

		result, err := tx.ExecContext(ctx, queryUpdatePetState,
			next.Health, next.Happiness, next.GrowthLevel, next.StreakDays, next.TotalSaved.String(),
			next.LastUpdated, current.Id, current.Version)
		if err != nil {
			zap.L().Error("Failed to update pet state", zap.String("pet_id", current.Id), zap.Error(err))
			return fmt.Errorf("unable to update pet state: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("unable to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			zap.L().Warn("Pet state changed underneath event",
				zap.String("pet_id", current.Id),
				zap.Int64("version", current.Version))
			return fmt.Errorf("pet update failed - %w", store.ErrConcurrentModification)
		}
		next.Version = current.Version + 1
		outcome.PetState = next

		if params.AdvanceSchedule {
			if goal == nil {
				zap.L().Warn("No goal to advance for deposit", zap.String("user_id", user.Id))
			} else if err := advanceGoal(ctx, tx, goal, now); err != nil {
				return err
			}
		}
		outcome.Goal = goal

		record := models.DepositRecord{
			Id:              uuid.New().String(),
			UserId:          user.Id,
			Amount:          params.Amount,
			TransactionType: params.TransactionType,
			OnSchedule:      params.OnSchedule,
			CreatedAt:       now,
		}
		if err := insertDeposit(ctx, tx, record); err != nil {
			return err
		}
		outcome.Record = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("Pet event processed",
		zap.String("user_id", outcome.User.Id),
		zap.String("record_id", outcome.Record.Id),
		zap.Int("health", outcome.PetState.Health),
		zap.Int("happiness", outcome.PetState.Happiness),
		zap.Int("streak_days", outcome.PetState.StreakDays),
		zap.String("total_saved", outcome.PetState.TotalSaved.String()))
	return outcome, nil
}

func (s *Service) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardRow, error) {
	zap.L().Debug("Querying leaderboard", zap.Int("limit", limit))

	rows, err := s.db.QueryContext(ctx, queryGetLeaderboard, limit)
	if err != nil {
		zap.L().Error("Failed to query leaderboard", zap.Error(err))
		return nil, fmt.Errorf("unable to query leaderboard: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var board []models.LeaderboardRow
	for rows.Next() {
		var (
			row      models.LeaderboardRow
			totalStr string
		)
		if err := rows.Scan(&row.WalletAddress, &row.PetName, &row.PetType, &row.Health, &row.StreakDays, &totalStr); err != nil {
			return nil, fmt.Errorf("unable to scan leaderboard row: %w", err)
		}
		if row.TotalSaved, err = decimal.NewFromString(totalStr); err != nil {
			return nil, fmt.Errorf("failed to parse total saved '%s': %w", totalStr, err)
		}
		board = append(board, row)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during leaderboard row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating leaderboard rows: %w", err)
	}

	return board, nil
}

func getPetState(ctx context.Context, q querier, userId string) (*models.PetState, error) {
	zap.L().Debug("Querying pet state", zap.String("user_id", userId))

	var (
		pet      models.PetState
		totalStr string
	)
	err := q.QueryRowContext(ctx, queryGetPetState, userId).Scan(
		&pet.Id, &pet.UserId, &pet.PetName, &pet.PetType, &pet.Health, &pet.Happiness,
		&pet.GrowthLevel, &pet.StreakDays, &totalStr, &pet.Version, &pet.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %s", store.ErrPetNotFound, userId)
		}
		zap.L().Error("Failed to query pet state", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query pet state: %w", err)
	}

	if pet.TotalSaved, err = decimal.NewFromString(totalStr); err != nil {
		return nil, fmt.Errorf("failed to parse total saved '%s': %w", totalStr, err)
	}
	return &pet, nil
}
