package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// StubEnrichmentClient is a development/test adapter that returns a
// deterministic bonus derived from the applicant ID.
// It implements port.EnrichmentClient.
type StubEnrichmentClient struct{}

// NewStubEnrichmentClient creates a new stub adapter.
func NewStubEnrichmentClient() *StubEnrichmentClient {
	return &StubEnrichmentClient{}
}

// FetchBonus returns a deterministic bonus between 0 and 30 based on a hash
// of the applicant ID. This allows repeatable test scenarios.
func (c *StubEnrichmentClient) FetchBonus(_ context.Context, applicantID string) (int, error) {
	if applicantID == "" {
		return 0, fmt.Errorf("applicant ID is required")
	}

	h := sha256.Sum256([]byte(applicantID))
	num := binary.BigEndian.Uint32(h[:4])
	return int(num % 31), nil // range [0, 30]
}
