package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// Enrichment adapter – structured for real integration
// ---------------------------------------------------------------------------

// Provider identifies an alternative-data enrichment provider.
type Provider string

const (
	ProviderUtilityBureau Provider = "UTILITY_BUREAU"
	ProviderTelecomScore  Provider = "TELECOM_SCORE"
	ProviderOpenBanking   Provider = "OPEN_BANKING"
)

// EnrichmentConfig holds configuration for the enrichment adapter.
type EnrichmentConfig struct {
	// PrimaryProvider is the preferred source for enrichment pulls.
	PrimaryProvider Provider
	// BaseURL is the base URL for the provider API.
	BaseURL string
	// APIKey is the authentication credential for the provider API.
	APIKey string
	// TimeoutSeconds is the HTTP client timeout.
	TimeoutSeconds int
}

// DefaultEnrichmentConfig returns sensible defaults for development.
func DefaultEnrichmentConfig() EnrichmentConfig {
	return EnrichmentConfig{
		PrimaryProvider: ProviderUtilityBureau,
		BaseURL:         "https://api.enrichment.example.com",
		APIKey:          "dev-api-key",
		TimeoutSeconds:  5,
	}
}

// EnrichmentReport is a parsed response from an enrichment provider.
type EnrichmentReport struct {
	Provider    Provider
	ApplicantID string
	BonusPoints int
	Sources     int
	ReportDate  time.Time
}

// HTTPClient defines the interface for calling enrichment providers. It
// enables testing with mock implementations.
type HTTPClient interface {
	// FetchReport retrieves an enrichment report from the provider.
	FetchReport(ctx context.Context, provider Provider, applicantID string) (EnrichmentReport, error)
}

// EnrichmentAdapter simulates alternative-data provider calls. It implements
// port.EnrichmentClient and is designed to be swapped with a real HTTP-based
// implementation when integrating with a live provider.
type EnrichmentAdapter struct {
	config EnrichmentConfig
	client HTTPClient // nil = use simulated responses
}

// NewEnrichmentAdapter creates a new adapter with the given configuration.
// If client is nil, simulated responses are used (suitable for
// development/testing).
func NewEnrichmentAdapter(config EnrichmentConfig, client HTTPClient) *EnrichmentAdapter {
	return &EnrichmentAdapter{
		config: config,
		client: client,
	}
}

// FetchBonus retrieves enrichment bonus points for the given applicant. It
// implements port.EnrichmentClient. Retry and backoff policy belong to the
// provider integration, not the scoring engine, so a single attempt is made.
func (a *EnrichmentAdapter) FetchBonus(ctx context.Context, applicantID string) (int, error) {
	if applicantID == "" {
		return 0, fmt.Errorf("applicant ID is required")
	}

	if a.client != nil {
		report, err := a.client.FetchReport(ctx, a.config.PrimaryProvider, applicantID)
		if err != nil {
			return 0, fmt.Errorf("enrichment request failed: %w", err)
		}
		return report.BonusPoints, nil
	}

	return a.simulateReport(applicantID).BonusPoints, nil
}

// simulateReport generates a deterministic simulated report. The bonus is
// derived from the applicant ID hash, making results reproducible for tests.
func (a *EnrichmentAdapter) simulateReport(applicantID string) EnrichmentReport {
	h := sha256.Sum256([]byte(applicantID))
	bonus := int(binary.BigEndian.Uint32(h[:4]) % 31)
	sources := 1 + int(binary.BigEndian.Uint16(h[4:6])%4)

	return EnrichmentReport{
		Provider:    a.config.PrimaryProvider,
		ApplicantID: applicantID,
		BonusPoints: bonus,
		Sources:     sources,
		ReportDate:  time.Now().UTC(),
	}
}
