package extractor

import (
	"encoding/json"
	"fmt"
)

// BuildPrompt builds the strict-schema extraction prompt from a transcription
// and optional catalog context (any JSON-marshallable value).
func BuildPrompt(transcription string, catalog any) string {
	catJSON := []byte("{}")
	if catalog != nil {
		catJSON, _ = json.MarshalIndent(catalog, "", "  ")
	}

	prompt := `You are an equipment intake engine for a camera rental inventory.

Your job is to analyze a spoken description of ONE piece of rental equipment
and produce a structured record strictly following the JSON schema below.
Your answers MUST be grounded in:
- The transcription
- The provided equipment catalog context
- NO outside knowledge
- NO invented serial numbers, prices or locations

If information is missing, leave string fields empty and numeric fields 0
instead of inventing details.

----------------------------------------------------------------------
SCHEMA (STRICT - RETURN ONLY JSON)
{
  "name": "",
  "brand": "",
  "model": "",
  "category": "",
  "serialNumber": "",
  "barcode": "",
  "condition": "",
  "description": "",
  "notes": "",
  "location": "",
  "purchasePrice": 0,
  "currentValue": 0,
  "pricePerDay": 0,
  "securityDeposit": 0,
  "specifications": {},
  "confidence_scores": {}
}
----------------------------------------------------------------------

RULES:

1. category must be one of: cameras, lenses, audio, lighting, tripods,
   drones, accessories.
2. condition must be one of: new, good, fair, poor.
3. All prices are plain numbers: no currency symbols, no separators,
   no words like "rupees".
4. specifications is a flat map of technical spec name to value, only for
   specs actually stated in the transcription.
5. confidence_scores maps a field name (name, brand, model, category,
   serialNumber, condition, purchasePrice, currentValue, pricePerDay,
   securityDeposit, location) to your confidence in [0,1]. Include a score
   ONLY for fields you populated and could assess. Never include 0 scores.
6. DO NOT include commentary. DO NOT wrap JSON in backticks.

----------------------------------------------------------------------
EQUIPMENT CATALOG CONTEXT (known brands and categories):
%s

TRANSCRIPTION:
%s

----------------------------------------------------------------------
Return ONLY valid JSON that exactly matches the schema.
`
	return fmt.Sprintf(prompt, string(catJSON), transcription)
}
