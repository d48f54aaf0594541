package enricher

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	specs map[string]string
	err   error
	query string
}

func (s *stubSearcher) Search(_ context.Context, query string) (map[string]string, error) {
	s.query = query
	return s.specs, s.err
}

func TestEnrichBuildsQuery(t *testing.T) {
	stub := &stubSearcher{specs: map[string]string{"frequency_response": "20Hz-20kHz"}}
	e := New(stub)

	specs, status := e.Enrich(context.Background(), "Rode", "VideoMic Pro Plus")
	assert.Equal(t, "Rode VideoMic Pro Plus specifications", stub.query)
	assert.Equal(t, StatusSuccess, status)
	assert.Equal(t, "20Hz-20kHz", specs["frequency_response"])
}

func TestEnrichProviderErrorDegrades(t *testing.T) {
	e := New(&stubSearcher{err: fmt.Errorf("scrape blocked")})
	specs, status := e.Enrich(context.Background(), "Canon", "EOS R5")
	assert.Equal(t, StatusFailed, status)
	assert.Empty(t, specs)
}

func TestEnrichMissingBrandOrModel(t *testing.T) {
	e := New(&stubSearcher{specs: map[string]string{"a": "b"}})
	_, status := e.Enrich(context.Background(), "", "EOS R5")
	assert.Equal(t, StatusFailed, status)
	_, status = e.Enrich(context.Background(), "Canon", "  ")
	assert.Equal(t, StatusFailed, status)
}

func TestEnrichCapsEntriesDeterministically(t *testing.T) {
	many := map[string]string{}
	for i := 0; i < 40; i++ {
		many[fmt.Sprintf("spec_%02d", i)] = "v"
	}
	e := New(&stubSearcher{specs: many})

	specs, status := e.Enrich(context.Background(), "Sony", "FX6")
	require.Equal(t, StatusSuccess, status)
	require.Len(t, specs, MaxSpecs)
	// sorted key order: the first MaxSpecs keys survive
	for i := 0; i < MaxSpecs; i++ {
		assert.Contains(t, specs, fmt.Sprintf("spec_%02d", i))
	}
}

func TestMergeNeverOverwrites(t *testing.T) {
	extracted := map[string]string{
		"mount":      "Canon RF",
		"resolution": "45 megapixels",
	}
	scraped := map[string]string{
		"mount":              "WRONG MOUNT",
		"frequency_response": "20Hz-20kHz",
	}

	merged := Merge(extracted, scraped)

	// superset of extraction, extractor keys untouched
	assert.Equal(t, "Canon RF", merged["mount"])
	assert.Equal(t, "45 megapixels", merged["resolution"])
	assert.Equal(t, "20Hz-20kHz", merged["frequency_response"])
	assert.Len(t, merged, 3)

	// inputs are not mutated
	assert.Len(t, extracted, 2)
	assert.Equal(t, "WRONG MOUNT", scraped["mount"])
}

func TestMergeNilInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
	merged := Merge(nil, map[string]string{"a": "b"})
	assert.Equal(t, "b", merged["a"])
}
