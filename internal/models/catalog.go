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

package models

import "github.com/shopspring/decimal"

// PetSpecies is one selectable pet type
type PetSpecies struct {
	Id          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// PetCatalog lists the species a wallet may choose and how pets evolve
type PetCatalog struct {
	Species        []PetSpecies
	DefaultName    string
	DefaultType    string
	EvolutionSteps []decimal.Decimal
}

// Lookup finds a species by id.
func (c *PetCatalog) Lookup(id string) (PetSpecies, bool) {
	for _, species := range c.Species {
		if species.Id == id {
			return species, true
		}
	}
	return PetSpecies{}, false
}

// DefaultPetCatalog is the built-in catalog used when no file is configured.
func DefaultPetCatalog() *PetCatalog {
	return &PetCatalog{
		Species: []PetSpecies{
			{Id: "dragon", Name: "Dragon", Description: "Breathes fire when your streak is alive"},
			{Id: "pig", Name: "Piggy", Description: "A classic piggy bank that loves every coin"},
			{Id: "puppy", Name: "Puppy", Description: "Wags happily at every on-time deposit"},
		},
		DefaultName: DefaultPetName,
		DefaultType: DefaultPetType,
		EvolutionSteps: []decimal.Decimal{
			decimal.NewFromInt(0),
			decimal.NewFromInt(100),
			decimal.NewFromInt(500),
			decimal.NewFromInt(2000),
		},
	}
}
