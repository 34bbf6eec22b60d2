package config

import (
	"os"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	// OperatorAccount is the single account allowed to run operator-only
	// operations (custom enroll, removal, sweep, distribution, withdrawal).
	OperatorAccount string
	// EngineAccount identifies the distribution engine when asset registries
	// are asked whether transfer authorization has been granted to it.
	EngineAccount string

	SweepInterval       time.Duration
	OutboxPollInterval  time.Duration
	EnableExpirySweeper bool
	EnableOutboxRelay   bool
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "croesus"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	operator := strings.TrimSpace(os.Getenv("OPERATOR_ACCOUNT"))
	if operator == "" {
		operator = "operator"
	}
	engine := strings.TrimSpace(os.Getenv("ENGINE_ACCOUNT"))
	if engine == "" {
		engine = "croesus-engine"
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		OperatorAccount: operator,
		EngineAccount:   engine,

		SweepInterval:       envDuration("SWEEP_INTERVAL", time.Hour),
		OutboxPollInterval:  envDuration("OUTBOX_POLL_INTERVAL", 5*time.Second),
		EnableExpirySweeper: envBool("ENABLE_EXPIRY_SWEEPER", true),
		EnableOutboxRelay:   envBool("ENABLE_OUTBOX_RELAY", true),
	}, nil
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

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
