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
)

const (
	DefaultHistoryLimit     = 20
	DefaultLeaderboardLimit = 10
	MaxPageSize             = 100
)

// GetPetState assembles the display view of a wallet's pet and goal.
func (s *PetService) GetPetState(ctx context.Context, walletAddress string) (*models.PetStateView, error) {
	wallet := strings.TrimSpace(walletAddress)
	if wallet == "" {
		return nil, fmt.Errorf("%w: walletAddress", ErrMissingField)
	}

	user, err := s.store.GetUserByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}

	state, err := s.store.GetPetState(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	goal, err := s.store.GetCurrentGoal(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	return &models.PetStateView{
		PetName:     state.PetName,
		PetType:     state.PetType,
		Health:      state.Health,
		Happiness:   state.Happiness,
		GrowthLevel: state.GrowthLevel,
		StreakDays:  state.StreakDays,
		TotalSaved:  state.TotalSaved.InexactFloat64(),
		GoalAmount:  goal.GoalAmount.InexactFloat64(),
	}, nil
}

// GetDepositHistory pages through a wallet's deposits and withdrawals,
// newest first. A zero limit selects the default page size.
func (s *PetService) GetDepositHistory(ctx context.Context, walletAddress string, limit, offset int) ([]models.DepositHistoryEntry, error) {
	wallet := strings.TrimSpace(walletAddress)
	if wallet == "" {
		return nil, fmt.Errorf("%w: walletAddress", ErrMissingField)
	}
	limit, err := pageLimit(limit, DefaultHistoryLimit)
	if err != nil {
		return nil, err
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset cannot be negative", ErrInvalidInput)
	}

	user, err := s.store.GetUserByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}

	records, err := s.store.GetDepositHistory(ctx, user.Id, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]models.DepositHistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, models.DepositHistoryEntry{
			Id:         r.Id,
			Type:       r.TransactionType,
			Amount:     r.Amount,
			OnSchedule: r.OnSchedule,
			CreatedAt:  r.CreatedAt,
		})
	}
	return entries, nil
}

// GetLeaderboard ranks pets by total saved.
func (s *PetService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	limit, err := pageLimit(limit, DefaultLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	rows, err := s.store.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, row := range rows {
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			User:       row.WalletAddress,
			PetName:    row.PetName,
			PetType:    row.PetType,
			TotalSaved: row.TotalSaved.InexactFloat64(),
			StreakDays: row.StreakDays,
			Health:     row.Health,
		})
	}
	return entries, nil
}

func pageLimit(limit, fallback int) (int, error) {
	if limit == 0 {
		return fallback, nil
	}
	if limit < 0 || limit > MaxPageSize {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxPageSize)
	}
	return limit, nil
}
