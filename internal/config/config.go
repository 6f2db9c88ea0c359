// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/degreeplan/internal/domain"
)

// Config holds the settings the CLI is wired with.
type Config struct {
	DBPath      string
	TemplateDir string
	LogUseCases bool
	// PlannerYears is the length of planners created without a template.
	PlannerYears int
}

// maxPlannerYears bounds DEGREEPLAN_YEARS.
const maxPlannerYears = 8

// Load reads configuration from environment variables, falling back to
// defaults under the user's home directory for any unset values.
func Load() (Config, error) {
	cfg := Config{PlannerYears: domain.DefaultYears}

	if v := os.Getenv("DEGREEPLAN_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("DEGREEPLAN_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxPlannerYears {
			cfg.PlannerYears = n
		}
	}

	cfg.DBPath = os.Getenv("DEGREEPLAN_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".degreeplan", "degreeplan.db")
	}

	cfg.TemplateDir = os.Getenv("DEGREEPLAN_TEMPLATES")
	if cfg.TemplateDir == "" {
		// ./templates wins during development.
		if stat, err := os.Stat("./templates"); err == nil && stat.IsDir() {
			cfg.TemplateDir = "./templates"
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return Config{}, fmt.Errorf("finding home directory: %w", err)
			}
			cfg.TemplateDir = filepath.Join(home, ".degreeplan", "templates")
		}
	}

	return cfg, nil
}
