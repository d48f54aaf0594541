package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"camo-inv-go/internal/types"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"250000", 250000},
		{"₹2,50,000", 250000},
		{"Rs. 2000", 2000},
		{"35000 rupees", 35000},
		{"INR 1,200.50", 1200.50},
		{"", 0},
		{"-500", 0},
	}
	for _, c := range cases {
		got, err := ParseMoney(c.in)
		require.NoError(t, err, "input %q", c.in)
		assert.Equal(t, c.want, got, "input %q", c.in)
	}

	_, err := ParseMoney("two thousand")
	assert.Error(t, err)
}

func TestMoneyUnmarshalTolerance(t *testing.T) {
	var raw rawRecord
	body := `{
		"name": "Canon EOS R5", "brand": "Canon", "model": "EOS R5", "category": "cameras",
		"purchasePrice": "₹250,000",
		"currentValue": 230000,
		"pricePerDay": null,
		"securityDeposit": "not mentioned"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	assert.Equal(t, 250000.0, float64(raw.PurchasePrice))
	assert.Equal(t, 230000.0, float64(raw.CurrentValue))
	assert.Zero(t, float64(raw.PricePerDay))
	// unparseable text degrades to "not stated" instead of failing the decode
	assert.Zero(t, float64(raw.SecurityDeposit))
}

func TestNormalizeCondition(t *testing.T) {
	assert.Equal(t, types.ConditionNew, NormalizeCondition("Brand New"))
	assert.Equal(t, types.ConditionNew, NormalizeCondition("excellent condition"))
	assert.Equal(t, types.ConditionGood, NormalizeCondition("like new"))
	assert.Equal(t, types.ConditionGood, NormalizeCondition("good, minor scratches"))
	assert.Equal(t, types.ConditionFair, NormalizeCondition("fairly worn"))
	assert.Equal(t, types.ConditionPoor, NormalizeCondition("damaged"))
	assert.Equal(t, "", NormalizeCondition("  "))
	// unrecognized text is kept, lowercased
	assert.Equal(t, "vintage", NormalizeCondition("Vintage"))
}

func TestNormalizeRequiredFields(t *testing.T) {
	_, err := normalize(rawRecord{Name: "Canon EOS R5", Brand: "Canon", Model: "EOS R5"})
	require.Error(t, err)
	var exErr *ExtractionError
	require.ErrorAs(t, err, &exErr)
	assert.Contains(t, exErr.Error(), "category")
}

func TestNormalizeFiltersConfidenceScores(t *testing.T) {
	rec, err := normalize(rawRecord{
		Name: "Canon EOS R5", Brand: "Canon", Model: "EOS R5", Category: "camera",
		ConfidenceScores: map[string]float64{
			"name":         0.95,
			"brand":        1.4,  // clamped
			"model":        0,    // dropped: never fabricate a zero score
			"weird_field":  0.9,  // dropped: outside the closed set
			"serialNumber": -0.2, // dropped
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "cameras", rec.Category)
	assert.Equal(t, map[types.FieldName]float64{
		types.FieldNameName:  0.95,
		types.FieldNameBrand: 1.0,
	}, rec.ConfidenceScores)
}

func TestExtractJSON(t *testing.T) {
	s := "Here you go:\n```json\n{\"name\": \"Sony FX6\", \"specs\": {\"a\": \"b\"}}\n```\nthanks"
	assert.Equal(t, `{"name": "Sony FX6", "specs": {"a": "b"}}`, extractJSON(s))
	assert.Equal(t, "", extractJSON("no json here"))
	assert.Equal(t, "", extractJSON(""))
}

func TestExtractContentFromChoices(t *testing.T) {
	body := []byte(`{"choices":[{"message":{"content":"{\"name\":\"Rode VideoMic Pro Plus\"}"}}]}`)
	assert.Equal(t, `{"name":"Rode VideoMic Pro Plus"}`, extractContentFromChoices(body))
	assert.Equal(t, "", extractContentFromChoices([]byte(`{"choices":[]}`)))
	assert.Equal(t, "", extractContentFromChoices([]byte(`not json`)))
}
