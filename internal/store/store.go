// Package store loads the category seed tree from YAML.
package store

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed default_categories.yaml
var defaultCategories []byte

// SeedStore loads category seeds from a YAML file, or from the built-in
// tree when no file is configured.
type SeedStore struct {
	SeedFile string
	logger   logging.Logger
}

// NewSeedStore creates a new store. An empty seedFile selects the built-in tree.
func NewSeedStore(seedFile string, logger logging.Logger) *SeedStore {
	return &SeedStore{
		SeedFile: seedFile,
		logger:   logging.OrDefault(logger),
	}
}

// FindConfigFile looks for a seed file in standard locations
func (s *SeedStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("database", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".fintrack", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadSeeds returns the configured seed tree. A configured file that cannot
// be found is an error; no configured file yields the built-in tree.
func (s *SeedStore) LoadSeeds() ([]models.CategorySeed, error) {
	if s.SeedFile == "" {
		seeds, err := ParseSeeds(defaultCategories)
		if err != nil {
			return nil, fmt.Errorf("error parsing built-in categories: %w", err)
		}
		s.logger.Debug("Loaded built-in category seeds",
			logging.F(logging.FieldCount, len(seeds)))
		return seeds, nil
	}

	filePath, err := s.FindConfigFile(s.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("categories seed file not found: %s: %w", s.SeedFile, err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	seeds, err := ParseSeeds(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}

	s.logger.Debug("Loaded category seeds",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(seeds)))
	return seeds, nil
}

// ParseSeeds decodes a seed document. Both the "categories:" wrapper and a
// bare list are accepted. Keywords are lowercased and blank entries dropped.
func ParseSeeds(data []byte) ([]models.CategorySeed, error) {
	var cfg models.CategoriesConfig
	cfgErr := yaml.Unmarshal(data, &cfg)
	if cfgErr != nil || len(cfg.Categories) == 0 {
		var list []models.CategorySeed
		if listErr := yaml.Unmarshal(data, &list); listErr == nil {
			cfg.Categories = list
		} else if cfgErr != nil {
			return nil, cfgErr
		}
	}

	for i := range cfg.Categories {
		seed := &cfg.Categories[i]
		seed.Name = strings.TrimSpace(seed.Name)
		if seed.Name == "" {
			return nil, fmt.Errorf("category %d has no name", i+1)
		}
		for j := range seed.Children {
			child := &seed.Children[j]
			child.Name = strings.TrimSpace(child.Name)
			if child.Name == "" {
				return nil, fmt.Errorf("child %d of category %q has no name", j+1, seed.Name)
			}
			child.Keywords = normalizeKeywords(child.Keywords)
		}
	}

	return cfg.Categories, nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			out = append(out, k)
		}
	}
	return out
}
