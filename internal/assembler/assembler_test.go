package assembler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"camo-inv-go/internal/samples"
	"camo-inv-go/internal/types"
)

func TestAssembleRenamesFields(t *testing.T) {
	rec := samples.Default().Clone()

	payload, err := Assemble(rec)
	require.NoError(t, err)

	b, err := json.Marshal(payload)
	require.NoError(t, err)
	var flat map[string]any
	require.NoError(t, json.Unmarshal(b, &flat))

	assert.Equal(t, "CAN123456789", flat["serial_number"])
	assert.Equal(t, 250000.0, flat["purchase_price"])
	assert.Equal(t, 230000.0, flat["current_value"])
	assert.Equal(t, 2000.0, flat["price_per_day"])
	assert.Equal(t, 25000.0, flat["security_deposit"])
	assert.NotContains(t, flat, "serialNumber")
	assert.NotContains(t, flat, "purchasePrice")
	assert.NotContains(t, flat, "confidence_scores")
}

func TestAssembleIdempotent(t *testing.T) {
	rec := samples.Default().Clone()
	first, err := Assemble(rec)
	require.NoError(t, err)
	second, err := Assemble(rec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssembleMissingModel(t *testing.T) {
	rec := samples.Default().Clone()
	rec.Model = ""

	_, err := Assemble(rec)
	require.Error(t, err)
	var asmErr *AssemblyError
	require.ErrorAs(t, err, &asmErr)
	assert.Equal(t, []string{"model"}, asmErr.Missing)
}

func TestAssembleCopiesSpecifications(t *testing.T) {
	rec := samples.Default().Clone()
	payload, err := Assemble(rec)
	require.NoError(t, err)

	payload.Specifications["resolution"] = "changed"
	assert.Equal(t, "45 megapixels", rec.Specifications["resolution"])
}

func TestPopulatedCount(t *testing.T) {
	payload, err := Assemble(samples.Default().Clone())
	require.NoError(t, err)
	// name, brand, model, category, serial, condition, description, notes,
	// location, 4 financial fields, specifications
	assert.Equal(t, 14, payload.PopulatedCount())

	minimal := types.FormPayload{Name: "X", Brand: "Y", Model: "Z", Category: "cameras"}
	assert.Equal(t, 4, minimal.PopulatedCount())
}
