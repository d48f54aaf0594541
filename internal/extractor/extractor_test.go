package extractor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockExtractor() *Extractor {
	return &Extractor{UseMock: true}
}

func TestExtractMockCanonEOSR5(t *testing.T) {
	desc := "I have a Canon EOS R5 mirrorless camera here, serial number CAN123456789. It's a professional camera in good condition, bought for 250000 rupees. We rent it out for 2000 rupees per day with a security deposit of 25000 rupees."

	rec, err := mockExtractor().Extract(context.Background(), desc)
	require.NoError(t, err)

	assert.Equal(t, "Canon", rec.Brand)
	assert.Equal(t, "EOS R5", rec.Model)
	assert.Equal(t, "cameras", rec.Category)
	assert.Equal(t, "CAN123456789", rec.SerialNumber)
	assert.Equal(t, 250000.0, rec.PurchasePrice)
	assert.Equal(t, 2000.0, rec.PricePerDay)
	assert.Equal(t, 25000.0, rec.SecurityDeposit)

	// extraction alone yields no scraped specifications
	assert.Empty(t, rec.Specifications)

	// every populated identity field carries a confidence score in (0,1]
	for field, score := range rec.ConfidenceScores {
		assert.Greater(t, score, 0.0, "field %s", field)
		assert.LessOrEqual(t, score, 1.0, "field %s", field)
	}
	assert.NotEmpty(t, rec.ConfidenceScores)
}

func TestExtractNoEquipment(t *testing.T) {
	_, err := mockExtractor().Extract(context.Background(), "the weather is lovely today")
	require.Error(t, err)
	var exErr *ExtractionError
	assert.ErrorAs(t, err, &exErr)
}

func TestExtractEmptyTranscription(t *testing.T) {
	_, err := mockExtractor().Extract(context.Background(), "   ")
	require.Error(t, err)
	var exErr *ExtractionError
	assert.ErrorAs(t, err, &exErr)
}

func TestExtractUnconfiguredGateway(t *testing.T) {
	ex := &Extractor{}
	_, err := ex.Extract(context.Background(), "Sony FX6 cinema camera")
	assert.EqualError(t, err, "llm gateway not configured")
}

func TestBuildPromptCarriesInputs(t *testing.T) {
	p := BuildPrompt("a Rode VideoMic Pro Plus in good condition", map[string]any{"brands": []string{"Rode"}})
	assert.Contains(t, p, "Rode VideoMic Pro Plus in good condition")
	assert.Contains(t, p, `"brands"`)
	assert.Contains(t, p, "RETURN ONLY JSON")
}
