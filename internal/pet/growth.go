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

package pet

import (
	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
)

// GrowthLevel returns the highest index whose threshold totalSaved has
// reached. thresholds must be ascending; an empty list yields 0.
func GrowthLevel(totalSaved decimal.Decimal, thresholds []decimal.Decimal) int {
	level := 0
	for i, t := range thresholds {
		if totalSaved.GreaterThanOrEqual(t) {
			level = i
		}
	}
	return level
}

// Evolve raises GrowthLevel to match totalSaved. Growth never goes down, so
// a withdrawal below a threshold keeps the stage already reached.
func Evolve(state models.PetState, thresholds []decimal.Decimal) models.PetState {
	if len(thresholds) == 0 {
		return state
	}
	if level := GrowthLevel(state.TotalSaved, thresholds); level > state.GrowthLevel {
		state.GrowthLevel = level
	}
	return state
}
