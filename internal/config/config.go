// Package config loads runtime settings from the environment and the group
// roster from a YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/santa/internal/models"
)

// Config holds everything the server needs: runtime settings from the
// environment plus the full group roster from the YAML config file.
type Config struct {
	// ListenAddr is the HTTP bind address.
	ListenAddr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret signs session tokens.
	JWTSecret string

	// TokenTTL is how long a login session stays valid.
	TokenTTL time.Duration

	// Groups is the validated roster snapshot. Handed to the services at
	// construction; nothing reads config globals after startup.
	Groups []models.Group
}

// rosterFile mirrors the YAML layout of the config file.
type rosterFile struct {
	Groups []models.Group `yaml:"groups"`
}

// Load reads environment variables (via .env if present) and the roster
// file, then validates the roster. Any validation failure is fatal: serving
// with a broken roster would strand whole groups.
func Load() (*Config, error) {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr: getEnvDefault("LISTEN_ADDR", ":8080"),
		DBPath:     getEnvDefault("DB_PATH", "./data/santa.db"),
		JWTSecret:  getEnvDefault("JWT_SECRET", "dev-only-change-me"),
	}

	ttl, err := time.ParseDuration(getEnvDefault("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	cfg.TokenTTL = ttl

	rosterPath := getEnvDefault("CONFIG_PATH", "./config.yaml")
	groups, err := loadRoster(rosterPath)
	if err != nil {
		return nil, err
	}
	cfg.Groups = groups

	return cfg, nil
}

// loadRoster parses and validates the group roster file.
func loadRoster(path string) ([]models.Group, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %w", path, err)
	}

	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %w", path, err)
	}

	if err := ValidateGroups(file.Groups); err != nil {
		return nil, fmt.Errorf("invalid roster file %s: %w", path, err)
	}

	return file.Groups, nil
}

// ValidateGroups checks the roster invariants: unique non-empty group IDs,
// positive budgets, at least two participants per group, usernames unique
// within a group, and exclusions that reference actual group members.
func ValidateGroups(groups []models.Group) error {
	if len(groups) == 0 {
		return fmt.Errorf("no groups configured")
	}

	groupIDs := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g.ID == "" {
			return fmt.Errorf("group %q has no id", g.Name)
		}
		if groupIDs[g.ID] {
			return fmt.Errorf("duplicate group id %q", g.ID)
		}
		groupIDs[g.ID] = true

		if g.Budget <= 0 {
			return fmt.Errorf("group %q: budget must be positive, got %v", g.ID, g.Budget)
		}
		if len(g.Participants) < 2 {
			return fmt.Errorf("group %q: need at least 2 participants, got %d", g.ID, len(g.Participants))
		}

		members := make(map[string]bool, len(g.Participants))
		for _, p := range g.Participants {
			if p.Username == "" {
				return fmt.Errorf("group %q: participant %q has no username", g.ID, p.Name)
			}
			if members[p.Username] {
				return fmt.Errorf("group %q: duplicate username %q", g.ID, p.Username)
			}
			members[p.Username] = true
			if p.Password == "" {
				return fmt.Errorf("group %q: participant %q has no password", g.ID, p.Username)
			}
		}

		for _, p := range g.Participants {
			for _, excl := range p.Exclude {
				if excl == p.Username {
					return fmt.Errorf("group %q: %q excludes themselves (self-exclusion is implicit)", g.ID, p.Username)
				}
				if !members[excl] {
					return fmt.Errorf("group %q: %q excludes %q, who is not in the group", g.ID, p.Username, excl)
				}
			}
		}
	}

	return nil
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
