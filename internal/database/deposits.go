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
	"fmt"

	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordDeposit appends a history entry outside of a pet event.
func (s *Service) RecordDeposit(ctx context.Context, record models.DepositRecord) error {
	return insertDeposit(ctx, s.db, record)
}

func (s *Service) GetDepositHistory(ctx context.Context, userId string, limit, offset int) ([]models.DepositRecord, error) {
	zap.L().Debug("Querying deposit history",
		zap.String("user_id", userId),
		zap.Int("limit", limit),
		zap.Int("offset", offset))

	rows, err := s.db.QueryContext(ctx, queryGetDepositHistory, userId, limit, offset)
	if err != nil {
		zap.L().Error("Failed to query deposit history", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query deposit history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var records []models.DepositRecord
	for rows.Next() {
		var (
			record    models.DepositRecord
			amountStr string
			txType    string
		)
		if err := rows.Scan(&record.Id, &record.UserId, &amountStr, &txType, &record.OnSchedule, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan deposit row: %w", err)
		}
		if record.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
		}
		record.TransactionType = models.TransactionType(txType)
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during deposit row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating deposit rows: %w", err)
	}

	return records, nil
}

func insertDeposit(ctx context.Context, q querier, record models.DepositRecord) error {
	_, err := q.ExecContext(ctx, queryInsertDeposit,
		record.Id, record.UserId, record.Amount.String(), string(record.TransactionType),
		record.OnSchedule, record.CreatedAt.UTC())
	if err != nil {
		zap.L().Error("Failed to insert deposit record",
			zap.String("user_id", record.UserId),
			zap.String("type", string(record.TransactionType)),
			zap.Error(err))
		return fmt.Errorf("unable to insert deposit record: %w", err)
	}
	return nil
}
