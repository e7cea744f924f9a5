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

package common

import (
	"context"
	"fmt"

	"stellar-pets-go/internal/store"

	"go.uber.org/zap"
)

// WalletInfo represents simplified saver information for command-line utilities
type WalletInfo struct {
	UserId        string
	WalletAddress string
}

// InitializeWallets resolves the wallets a CLI should report on.
// If walletFilter is provided, returns the single saver with that wallet.
// If walletFilter is empty, returns the top savers from the leaderboard.
func InitializeWallets(ctx context.Context, petStore store.PetStore, walletFilter string, limit int, logger *zap.Logger) ([]WalletInfo, error) {
	var wallets []WalletInfo

	if walletFilter != "" {
		logger.Info("Looking up saver by wallet", zap.String("wallet_address", walletFilter))
		user, err := petStore.GetUserByWallet(ctx, walletFilter)
		if err != nil {
			return nil, fmt.Errorf("saver not found: %w", err)
		}
		wallets = append(wallets, WalletInfo{UserId: user.Id, WalletAddress: user.WalletAddress})
	} else {
		rows, err := petStore.GetLeaderboard(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to get leaderboard: %w", err)
		}
		for _, row := range rows {
			user, err := petStore.GetUserByWallet(ctx, row.WalletAddress)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve %s: %w", row.WalletAddress, err)
			}
			wallets = append(wallets, WalletInfo{UserId: user.Id, WalletAddress: user.WalletAddress})
		}
	}

	logger.Info("Retrieved savers", zap.Int("count", len(wallets)))
	return wallets, nil
}
