package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bibbank/credit-engine/internal/domain/policy"
)

// Config holds the runtime configuration of the credit engine.
type Config struct {
	LogLevel    string
	LogFormat   string
	MetricsPort int

	// Kafka audit sink. Empty brokers means audit goes to the logger only.
	KafkaBrokers []string
	AuditTopic   string

	// Optional YAML file with policy overrides.
	PolicyFile string

	// Enrichment guard tuning.
	EnrichmentRateLimit  int
	EnrichmentWindowSecs int
	BreakerThreshold     int
	BreakerResetSecs     int
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		MetricsPort: getEnvInt("METRICS_PORT", 9102),

		KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
		AuditTopic:   getEnv("AUDIT_TOPIC", "credit.audit.v1"),

		PolicyFile: getEnv("POLICY_FILE", ""),

		EnrichmentRateLimit:  getEnvInt("ENRICHMENT_RATE_LIMIT", 10),
		EnrichmentWindowSecs: getEnvInt("ENRICHMENT_WINDOW_SECS", 60),
		BreakerThreshold:     getEnvInt("BREAKER_THRESHOLD", 5),
		BreakerResetSecs:     getEnvInt("BREAKER_RESET_SECS", 30),
	}
}

// LoadPolicyOverrides reads policy overrides from the configured YAML file.
// A missing PolicyFile yields empty overrides, not an error.
func (c *Config) LoadPolicyOverrides() (policy.Overrides, error) {
	var ov policy.Overrides
	if c.PolicyFile == "" {
		return ov, nil
	}

	data, err := os.ReadFile(c.PolicyFile)
	if err != nil {
		return ov, fmt.Errorf("read policy file %s: %w", c.PolicyFile, err)
	}
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return ov, fmt.Errorf("parse policy file %s: %w", c.PolicyFile, err)
	}
	return ov, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
