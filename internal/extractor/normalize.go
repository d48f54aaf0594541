package extractor

import (
	"encoding/json"
	"strconv"
	"strings"

	"camo-inv-go/internal/types"
)

// rawRecord is the tolerant shape decoded straight from LLM output. Prices
// may arrive as numbers or as free-text strings with currency markers, and
// confidence keys are unvalidated strings.
type rawRecord struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber"`
	Barcode      string `json:"barcode"`
	Condition    string `json:"condition"`
	Description  string `json:"description"`
	Notes        string `json:"notes"`
	Location     string `json:"location"`

	PurchasePrice   money `json:"purchasePrice"`
	CurrentValue    money `json:"currentValue"`
	PricePerDay     money `json:"pricePerDay"`
	SecurityDeposit money `json:"securityDeposit"`

	Specifications   map[string]string  `json:"specifications"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
}

// money accepts a JSON number, a quoted amount with currency markers, or
// null. Unparseable or negative amounts decode to zero, meaning "not stated".
type money float64

func (m *money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*m = 0
		return nil
	}
	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal(b, &inner); err != nil {
			return err
		}
		v, err := ParseMoney(inner)
		if err != nil {
			*m = 0
			return nil
		}
		*m = money(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		*m = 0
		return nil
	}
	if f < 0 {
		f = 0
	}
	*m = money(f)
	return nil
}

// ParseMoney turns a spoken or formatted amount ("₹2,50,000", "250000
// rupees", "Rs. 2000") into a plain non-negative number.
func ParseMoney(s string) (float64, error) {
	cleaned := strings.ToLower(strings.TrimSpace(s))
	for _, tok := range []string{"₹", "rs.", "rs", "inr", "rupees", "rupee"} {
		cleaned = strings.ReplaceAll(cleaned, tok, "")
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, nil
	}
	return v, nil
}

// normalize validates and shapes a raw LLM record into the canonical
// EquipmentRecord, enforcing the extractor contract.
func normalize(raw rawRecord) (types.EquipmentRecord, error) {
	rec := types.EquipmentRecord{
		Name:            strings.TrimSpace(raw.Name),
		Brand:           strings.TrimSpace(raw.Brand),
		Model:           strings.TrimSpace(raw.Model),
		Category:        normalizeCategory(raw.Category),
		SerialNumber:    strings.TrimSpace(raw.SerialNumber),
		Barcode:         strings.TrimSpace(raw.Barcode),
		Condition:       NormalizeCondition(raw.Condition),
		Description:     strings.TrimSpace(raw.Description),
		Notes:           strings.TrimSpace(raw.Notes),
		Location:        strings.TrimSpace(raw.Location),
		PurchasePrice:   float64(raw.PurchasePrice),
		CurrentValue:    float64(raw.CurrentValue),
		PricePerDay:     float64(raw.PricePerDay),
		SecurityDeposit: float64(raw.SecurityDeposit),
	}

	if missing := rec.MissingRequired(); len(missing) > 0 {
		return types.EquipmentRecord{}, &ExtractionError{
			Reason: "no recognizable equipment: missing " + strings.Join(missing, ", "),
		}
	}

	if len(raw.Specifications) > 0 {
		rec.Specifications = make(map[string]string, len(raw.Specifications))
		for k, v := range raw.Specifications {
			k = strings.TrimSpace(k)
			v = strings.TrimSpace(v)
			if k != "" && v != "" {
				rec.Specifications[k] = v
			}
		}
	}

	rec.ConfidenceScores = filterScores(raw.ConfidenceScores)
	return rec, nil
}

// filterScores keeps only scores for the closed FieldName set, clamped to
// [0,1]. Zero and negative scores are dropped rather than carried: a score
// the extractor did not assess stays absent.
func filterScores(in map[string]float64) map[types.FieldName]float64 {
	if len(in) == 0 {
		return nil
	}
	out := make(map[types.FieldName]float64)
	for k, v := range in {
		name := types.FieldName(strings.TrimSpace(k))
		if !types.IsKnownFieldName(name) {
			continue
		}
		if v <= 0 {
			continue
		}
		if v > 1 {
			v = 1
		}
		out[name] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// NormalizeCondition folds free-text condition phrases toward the fixed
// enum. Unrecognized non-empty text is kept lowercased so nothing stated is
// lost.
func NormalizeCondition(s string) string {
	c := strings.ToLower(strings.TrimSpace(s))
	switch {
	case c == "":
		return ""
	case strings.Contains(c, "brand new"), strings.Contains(c, "excellent"),
		strings.Contains(c, "mint"), c == "new", strings.Contains(c, "unused"):
		return types.ConditionNew
	case strings.Contains(c, "like new"), strings.Contains(c, "good"),
		strings.Contains(c, "working"), strings.Contains(c, "minor"):
		return types.ConditionGood
	case strings.Contains(c, "fair"), strings.Contains(c, "average"),
		strings.Contains(c, "worn"), strings.Contains(c, "used"):
		return types.ConditionFair
	case strings.Contains(c, "poor"), strings.Contains(c, "damaged"),
		strings.Contains(c, "broken"), strings.Contains(c, "bad"):
		return types.ConditionPoor
	default:
		return c
	}
}

// normalizeCategory folds singular and synonym category names onto the fixed
// set. Text outside the set is kept as given; the record is not worth losing
// over an unlisted category.
func normalizeCategory(s string) string {
	c := strings.ToLower(strings.TrimSpace(s))
	if types.IsKnownCategory(c) {
		return c
	}
	switch c {
	case "camera":
		return "cameras"
	case "lens":
		return "lenses"
	case "microphone", "microphones", "sound", "audio equipment":
		return "audio"
	case "light", "lights":
		return "lighting"
	case "tripod":
		return "tripods"
	case "drone":
		return "drones"
	case "accessory":
		return "accessories"
	}
	return c
}
