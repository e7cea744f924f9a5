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
	"strings"

	"stellar-pets-go/internal/common"
	"stellar-pets-go/internal/config"
	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func validateWallet(wallet string) error {
	if wallet == "" {
		return fmt.Errorf("wallet cannot be empty")
	}
	if strings.ContainsAny(wallet, " \t\n") {
		return fmt.Errorf("invalid wallet address: %q", wallet)
	}
	return nil
}

func parseAmount(name, raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, fmt.Errorf("%s is required", name)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%s must be greater than zero", name)
	}
	return &amount, nil
}

func printResult(result *models.CreateGoalResult, wallet string) {
	common.PrintHeader("SAVINGS GOAL CREATED", common.DefaultWidth)

	fmt.Printf("\n┌─ Wallet: %s\n", wallet)
	fmt.Printf("│  User ID: %s\n", result.UserId)
	common.PrintBoxSeparator(78)
	fmt.Printf("%s Goal:      %s (%s per %s)\n", common.BoxPrefix(false),
		result.Goal.GoalAmount.String(), result.Goal.DepositAmount.String(), result.Goal.Frequency)
	fmt.Printf("%s Next due:  %s\n", common.BoxPrefix(false),
		result.Goal.NextDepositDue.Format("2006-01-02 15:04:05"))
	fmt.Printf("%s Pet:       %s the %s\n", common.BoxPrefix(false),
		result.PetState.PetName, result.PetState.PetType)
	fmt.Printf("%s Stats:     health %d, happiness %d, growth %d, streak %d\n", common.BoxPrefix(true),
		result.PetState.Health, result.PetState.Happiness, result.PetState.GrowthLevel, result.PetState.StreakDays)

	common.PrintFooter(fmt.Sprintf("Total saved so far: %s", result.PetState.TotalSaved.String()), common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	walletFlag := flag.String("wallet", "", "Wallet address (required)")
	goalFlag := flag.String("goal", "", "Savings goal amount (required)")
	depositFlag := flag.String("deposit", "", "Deposit amount expected each period (required)")
	nameFlag := flag.String("name", "", "Pet name (optional)")
	typeFlag := flag.String("type", "", "Pet type from the catalog (optional)")
	flag.Parse()

	if err := validateWallet(*walletFlag); err != nil {
		logger.Fatal("Invalid wallet", zap.Error(err))
	}
	goalAmount, err := parseAmount("goal", *goalFlag)
	if err != nil {
		logger.Fatal("Invalid goal amount", zap.Error(err))
	}
	depositAmount, err := parseAmount("deposit", *depositFlag)
	if err != nil {
		logger.Fatal("Invalid deposit amount", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	logger.Info("Creating savings goal",
		zap.String("wallet_address", *walletFlag),
		zap.String("goal_amount", goalAmount.String()),
		zap.String("deposit_amount", depositAmount.String()))

	result, err := services.PetService.CreateGoal(ctx, models.CreateGoalRequest{
		WalletAddress: *walletFlag,
		PetName:       *nameFlag,
		PetType:       *typeFlag,
		GoalAmount:    goalAmount,
		DepositAmount: depositAmount,
	})
	if err != nil {
		logger.Fatal("Failed to create goal", zap.Error(err))
	}

	printResult(result, *walletFlag)

	logger.Info("Savings goal created",
		zap.String("user_id", result.UserId),
		zap.String("goal_id", result.Goal.Id),
		zap.String("pet_id", result.PetState.Id))
}
