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
	"stellar-pets-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateGoal sets up a savings goal for a wallet, creating the user and the
// pet on first use. A wallet that already has a pet keeps it.
func (s *PetService) CreateGoal(ctx context.Context, req models.CreateGoalRequest) (*models.CreateGoalResult, error) {
	wallet := strings.TrimSpace(req.WalletAddress)
	if wallet == "" {
		return nil, fmt.Errorf("%w: walletAddress", ErrMissingField)
	}
	if req.GoalAmount == nil {
		return nil, fmt.Errorf("%w: goalAmount", ErrMissingField)
	}
	if req.DepositAmount == nil {
		return nil, fmt.Errorf("%w: depositAmount", ErrMissingField)
	}
	if !req.GoalAmount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: goalAmount must be positive", ErrInvalidInput)
	}
	if !req.DepositAmount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: depositAmount must be positive", ErrInvalidInput)
	}

	petName := strings.TrimSpace(req.PetName)
	if petName == "" {
		petName = s.catalog.DefaultName
	}
	petType := strings.ToLower(strings.TrimSpace(req.PetType))
	if petType == "" {
		petType = s.catalog.DefaultType
	}
	if _, ok := s.catalog.Lookup(petType); !ok {
		return nil, fmt.Errorf("%w: unknown petType %q", ErrInvalidInput, petType)
	}

	unlock := s.locks.Lock(wallet)
	defer unlock()

	outcome, err := s.store.CreateGoal(ctx, store.CreateGoalParams{
		WalletAddress: wallet,
		PetName:       petName,
		PetType:       petType,
		GoalAmount:    *req.GoalAmount,
		DepositAmount: *req.DepositAmount,
		Frequency:     models.FrequencyWeekly,
		Now:           s.now(),
	})
	if err != nil {
		zap.L().Error("Goal creation failed", zap.String("wallet_address", wallet), zap.Error(err))
		return nil, err
	}

	return &models.CreateGoalResult{
		Success:  true,
		UserId:   outcome.User.Id,
		Goal:     outcome.Goal,
		PetState: outcome.PetState,
	}, nil
}
