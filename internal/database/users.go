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
	"go.uber.org/zap"
)

// ResolveUser returns the user for a wallet address, creating it on first
// sight. The bool reports whether a new user was inserted.
func (s *Service) ResolveUser(ctx context.Context, walletAddress string) (*models.User, bool, error) {
	var (
		user    *models.User
		created bool
	)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		user, created, err = resolveUser(ctx, tx, walletAddress, time.Now().UTC())
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return user, created, nil
}

func (s *Service) GetUserByWallet(ctx context.Context, walletAddress string) (*models.User, error) {
	return getUserByWallet(ctx, s.db, walletAddress)
}

func getUserByWallet(ctx context.Context, q querier, walletAddress string) (*models.User, error) {
	zap.L().Debug("Querying user by wallet", zap.String("wallet_address", walletAddress))

	var user models.User
	err := q.QueryRowContext(ctx, queryGetUserByWallet, walletAddress).Scan(
		&user.Id, &user.WalletAddress, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrUserNotFound, walletAddress)
		}
		zap.L().Error("Failed to query user by wallet", zap.String("wallet_address", walletAddress), zap.Error(err))
		return nil, fmt.Errorf("unable to query user by wallet: %w", err)
	}

	return &user, nil
}

// resolveUser inserts the user if absent and reads it back. INSERT OR IGNORE
// on the unique wallet column makes concurrent first deposits converge on a
// single row.
func resolveUser(ctx context.Context, q querier, walletAddress string, now time.Time) (*models.User, bool, error) {
	result, err := q.ExecContext(ctx, queryInsertUser, uuid.New().String(), walletAddress, now)
	if err != nil {
		zap.L().Error("Failed to insert user", zap.String("wallet_address", walletAddress), zap.Error(err))
		return nil, false, fmt.Errorf("unable to insert user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("unable to get rows affected: %w", err)
	}

	user, err := getUserByWallet(ctx, q, walletAddress)
	if err != nil {
		return nil, false, err
	}

	if rowsAffected > 0 {
		zap.L().Info("User created", zap.String("user_id", user.Id), zap.String("wallet_address", walletAddress))
	}
	return user, rowsAffected > 0, nil
}
