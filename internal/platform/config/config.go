package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// ConsensusThreshold is the percentage an option must strictly exceed
	// before it is chosen for a term.
	ConsensusThreshold int
	// MarketplacePageSize bounds a single reviewable-assignments fetch.
	MarketplacePageSize int
	// MarketplaceSandbox routes HITs to the marketplace sandbox endpoint.
	MarketplaceSandbox bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "quorum"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName: service,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		ConsensusThreshold:  envIntInRange("CONSENSUS_THRESHOLD", 75, 0, 100),
		MarketplacePageSize: envInt("MARKETPLACE_PAGE_SIZE", 100),
		MarketplaceSandbox:  envBool("MARKETPLACE_SANDBOX", true),
	}, nil
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envIntInRange(name string, fallback, min, max int) int {
	value := envInt(name, fallback)
	if value < min || value > max {
		return fallback
	}
	return value
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
