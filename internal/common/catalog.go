package common

import (
	"fmt"
	"os"
	"path/filepath"

	"stellar-pets-go/internal/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"
)

type PetDefaults struct {
	Name string `yaml:"pet_name"`
	Type string `yaml:"pet_type"`
}

type PetsFile struct {
	Defaults            PetDefaults         `yaml:"defaults"`
	EvolutionThresholds []float64           `yaml:"evolution_thresholds"`
	Pets                []models.PetSpecies `yaml:"pets"`
}

// LoadPetCatalog reads the species catalog. Relative paths resolve against
// the working directory.
func LoadPetCatalog(petsFile string) (*models.PetCatalog, error) {
	var petsPath string
	if filepath.IsAbs(petsFile) {
		petsPath = petsFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		petsPath = filepath.Join(wd, petsFile)
	}

	data, err := os.ReadFile(petsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", petsFile, err)
	}

	return ParsePetCatalog(data)
}

func ParsePetCatalog(data []byte) (*models.PetCatalog, error) {
	var file PetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unable to parse pet catalog: %w", err)
	}

	if len(file.Pets) == 0 {
		return nil, fmt.Errorf("pet catalog lists no pets")
	}

	seen := make(map[string]bool, len(file.Pets))
	for i, pet := range file.Pets {
		if pet.Id == "" {
			return nil, fmt.Errorf("pet at index %d missing id", i)
		}
		if seen[pet.Id] {
			return nil, fmt.Errorf("duplicate pet id %q", pet.Id)
		}
		seen[pet.Id] = true
	}

	catalog := &models.PetCatalog{
		Species:     file.Pets,
		DefaultName: file.Defaults.Name,
		DefaultType: file.Defaults.Type,
	}
	if catalog.DefaultName == "" {
		catalog.DefaultName = models.DefaultPetName
	}
	if catalog.DefaultType == "" {
		catalog.DefaultType = models.DefaultPetType
	}
	if _, ok := catalog.Lookup(catalog.DefaultType); !ok {
		return nil, fmt.Errorf("default pet type %q is not in the catalog", catalog.DefaultType)
	}

	for i, threshold := range file.EvolutionThresholds {
		step := decimal.NewFromFloat(threshold)
		if step.IsNegative() {
			return nil, fmt.Errorf("evolution threshold %d is negative", i)
		}
		if i > 0 && !step.GreaterThan(catalog.EvolutionSteps[i-1]) {
			return nil, fmt.Errorf("evolution thresholds must be strictly ascending")
		}
		catalog.EvolutionSteps = append(catalog.EvolutionSteps, step)
	}

	return catalog, nil
}
