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

const (
	// User queries
	queryInsertUser = `
		INSERT OR IGNORE INTO users (id, wallet_address, created_at) VALUES (?, ?, ?)`

	queryGetUserByWallet = `
		SELECT id, wallet_address, created_at
		FROM users
		WHERE wallet_address = ?`

	// Goal queries
	queryInsertGoal = `
		INSERT INTO goals (id, user_id, goal_amount, deposit_amount, frequency, last_deposit_date, next_deposit_due, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryGetCurrentGoal = `
		SELECT id, user_id, goal_amount, deposit_amount, frequency, last_deposit_date, next_deposit_due, created_at
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1`

	queryAdvanceSchedule = `
		UPDATE goals
		SET last_deposit_date = ?, next_deposit_due = ?
		WHERE id = ?`

	// Pet state queries
	queryInsertPetState = `
		INSERT OR IGNORE INTO pet_states
			(id, user_id, pet_name, pet_type, health, happiness, growth_level, streak_days, total_saved, version, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, 0, 0, '0', 1, ?)`

	queryGetPetState = `
		SELECT id, user_id, pet_name, pet_type, health, happiness, growth_level, streak_days, total_saved, version, last_updated
		FROM pet_states
		WHERE user_id = ?`

	queryUpdatePetState = `
		UPDATE pet_states
		SET health = ?, happiness = ?, growth_level = ?, streak_days = ?, total_saved = ?,
		    version = version + 1, last_updated = ?
		WHERE id = ? AND version = ?`

	queryGetLeaderboard = `
		SELECT u.wallet_address, p.pet_name, p.pet_type, p.health, p.streak_days, p.total_saved
		FROM pet_states p
		JOIN users u ON u.id = p.user_id
		ORDER BY CAST(p.total_saved AS REAL) DESC, p.streak_days DESC, p.last_updated ASC
		LIMIT ?`

	// Deposit history queries
	queryInsertDeposit = `
		INSERT INTO deposits (id, user_id, amount, transaction_type, on_schedule, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryGetDepositHistory = `
		SELECT id, user_id, amount, transaction_type, on_schedule, created_at
		FROM deposits
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`
)
