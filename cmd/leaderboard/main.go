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


package main

import (
	"context"
	"flag"
	"fmt"

	"stellar-pets-go/internal/common"
	"stellar-pets-go/internal/config"
	"stellar-pets-go/internal/formance"
	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type leaderboardStats struct {
	totalSavers    int
	saversReported int
	totalSaved     decimal.Decimal
	totalEvents    int
}

func printSaverHeader(rank int, saver common.WalletInfo, view *models.PetStateView) {
	fmt.Printf("\n┌─ #%d %s the %s (%s)\n", rank, view.PetName, view.PetType, saver.WalletAddress)
	fmt.Printf("│  User ID: %s\n", saver.UserId)
	fmt.Printf("│  Saved: %.2f of %.2f (growth level %d, %d day streak)\n",
		view.TotalSaved, view.GoalAmount, view.GrowthLevel, view.StreakDays)
	fmt.Printf("│  Health:    %s\n", common.StatBar(view.Health))
	fmt.Printf("│  Happiness: %s\n", common.StatBar(view.Happiness))
	common.PrintBoxSeparator(78)
}

func printHistory(history []models.DepositHistoryEntry) {
	if len(history) == 0 {
		fmt.Printf("%s no deposits yet\n", common.BoxPrefix(true))
		return
	}
	for i, entry := range history {
		schedule := "late"
		if entry.Type == models.TransactionWithdrawal {
			schedule = "early"
		} else if entry.OnSchedule {
			schedule = "on time"
		}
		fmt.Printf("%s %-10s %12s  %-8s (%s, %s)\n",
			common.BoxPrefix(i == len(history)-1),
			entry.Type,
			entry.Amount.StringFixed(2),
			schedule,
			common.ShortId(entry.Id),
			entry.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}

// printLedgerBalance shows the saved balance held by the Formance ledger, if
// that is where history is mirrored.
func printLedgerBalance(ctx context.Context, services *common.Services, saver common.WalletInfo) {
	ledger, ok := services.Mirror.(*formance.Service)
	if !ok {
		return
	}
	balance, err := ledger.SavedBalance(ctx, saver.UserId)
	if err != nil {
		zap.L().Warn("Unable to read ledger balance",
			zap.String("user_id", saver.UserId),
			zap.Error(err))
		return
	}
	fmt.Printf("%s ledger balance: %s\n", common.BoxDetailPrefix(true), balance.String())
}

func processSaver(ctx context.Context, rank int, saver common.WalletInfo, services *common.Services, historyLimit int) (*models.PetStateView, int, error) {
	view, err := services.PetService.GetPetState(ctx, saver.WalletAddress)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get pet state: %w", err)
	}

	history, err := services.PetService.GetDepositHistory(ctx, saver.WalletAddress, historyLimit, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get deposit history: %w", err)
	}

	printSaverHeader(rank, saver, view)
	printHistory(history)
	printLedgerBalance(ctx, services, saver)

	return view, len(history), nil
}

func processSaversAndGenerateReport(ctx context.Context, savers []common.WalletInfo, services *common.Services, historyLimit int, logger *zap.Logger) leaderboardStats {
	stats := leaderboardStats{totalSaved: decimal.Zero}

	for i, saver := range savers {
		stats.totalSavers++

		view, events, err := processSaver(ctx, i+1, saver, services, historyLimit)
		if err != nil {
			logger.Error("Failed to process saver",
				zap.String("user_id", saver.UserId),
				zap.String("wallet_address", saver.WalletAddress),
				zap.Error(err))
			continue
		}

		stats.saversReported++
		stats.totalEvents += events
		stats.totalSaved = stats.totalSaved.Add(decimal.NewFromFloat(view.TotalSaved))
	}

	return stats
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	walletFlag := flag.String("wallet", "", "Report a single wallet (optional)")
	limitFlag := flag.Int("limit", 10, "Number of top savers to report")
	historyFlag := flag.Int("history", 5, "Deposits to show per saver")
	flag.Parse()

	logger.Info("Starting leaderboard report")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	savers, err := common.InitializeWallets(ctx, services.DbService, *walletFlag, *limitFlag, logger)
	if err != nil {
		logger.Fatal("Failed to resolve savers", zap.Error(err))
	}

	common.PrintHeader("SAVINGS PET LEADERBOARD", common.WideWidth)

	stats := processSaversAndGenerateReport(ctx, savers, services, *historyFlag, logger)

	summary := fmt.Sprintf("SUMMARY: %d of %d savers reported, %s saved in total (%d recent events shown)",
		stats.saversReported, stats.totalSavers, stats.totalSaved.StringFixed(2), stats.totalEvents)
	common.PrintFooter(summary, common.WideWidth)

	logger.Info("Leaderboard report completed",
		zap.Int("savers_queried", stats.totalSavers),
		zap.Int("savers_reported", stats.saversReported),
		zap.String("total_saved", stats.totalSaved.String()))
}
