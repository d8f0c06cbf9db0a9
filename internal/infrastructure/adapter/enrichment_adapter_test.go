package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPClient struct {
	report EnrichmentReport
	err    error
	calls  int
}

func (f *fakeHTTPClient) FetchReport(_ context.Context, _ Provider, _ string) (EnrichmentReport, error) {
	f.calls++
	return f.report, f.err
}

func TestEnrichmentAdapter_SimulatedBonusIsDeterministic(t *testing.T) {
	a := NewEnrichmentAdapter(DefaultEnrichmentConfig(), nil)

	first, err := a.FetchBonus(context.Background(), "apl-001")
	require.NoError(t, err)
	second, err := a.FetchBonus(context.Background(), "apl-001")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first, 0)
	assert.LessOrEqual(t, first, 30)
}

func TestEnrichmentAdapter_RequiresApplicantID(t *testing.T) {
	a := NewEnrichmentAdapter(DefaultEnrichmentConfig(), nil)
	_, err := a.FetchBonus(context.Background(), "")
	assert.Error(t, err)
}

func TestEnrichmentAdapter_DelegatesToHTTPClient(t *testing.T) {
	client := &fakeHTTPClient{report: EnrichmentReport{BonusPoints: 12}}
	a := NewEnrichmentAdapter(DefaultEnrichmentConfig(), client)

	bonus, err := a.FetchBonus(context.Background(), "apl-001")
	require.NoError(t, err)
	assert.Equal(t, 12, bonus)
	assert.Equal(t, 1, client.calls)
}

func TestEnrichmentAdapter_SingleAttemptOnFailure(t *testing.T) {
	client := &fakeHTTPClient{err: errors.New("provider down")}
	a := NewEnrichmentAdapter(DefaultEnrichmentConfig(), client)

	_, err := a.FetchBonus(context.Background(), "apl-001")
	assert.Error(t, err)
	assert.Equal(t, 1, client.calls, "the engine never retries enrichment")
}

func TestStubEnrichmentClient_BonusWithinBounds(t *testing.T) {
	stub := NewStubEnrichmentClient()

	for _, id := range []string{"a", "b", "apl-001", "apl-002"} {
		bonus, err := stub.FetchBonus(context.Background(), id)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, bonus, 0)
		assert.LessOrEqual(t, bonus, 30)
	}
}
