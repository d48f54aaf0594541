package types

// Condition of a piece of rental equipment. Free text from the extractor is
// normalized toward one of these values.
const (
	ConditionNew  = "new"
	ConditionGood = "good"
	ConditionFair = "fair"
	ConditionPoor = "poor"
)

// Categories match the fixed set used by the inventory service.
var Categories = []string{
	"cameras",
	"lenses",
	"audio",
	"lighting",
	"tripods",
	"drones",
	"accessories",
}

// IsKnownCategory reports whether c is one of the fixed category values.
func IsKnownCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// FieldName is the closed set of keys allowed in ConfidenceScores.
type FieldName string

const (
	FieldNameName      FieldName = "name"
	FieldNameBrand     FieldName = "brand"
	FieldNameModel     FieldName = "model"
	FieldNameCategory  FieldName = "category"
	FieldNameSerial    FieldName = "serialNumber"
	FieldNameCondition FieldName = "condition"
	FieldNamePurchase  FieldName = "purchasePrice"
	FieldNameValue     FieldName = "currentValue"
	FieldNamePerDay    FieldName = "pricePerDay"
	FieldNameDeposit   FieldName = "securityDeposit"
	FieldNameLocation  FieldName = "location"
)

// KnownFieldNames lists every FieldName the extractor may score.
var KnownFieldNames = []FieldName{
	FieldNameName,
	FieldNameBrand,
	FieldNameModel,
	FieldNameCategory,
	FieldNameSerial,
	FieldNameCondition,
	FieldNamePurchase,
	FieldNameValue,
	FieldNamePerDay,
	FieldNameDeposit,
	FieldNameLocation,
}

// IsKnownFieldName reports whether n is part of the closed FieldName set.
func IsKnownFieldName(n FieldName) bool {
	for _, k := range KnownFieldNames {
		if k == n {
			return true
		}
	}
	return false
}

// EquipmentRecord is the canonical structured output of extraction and
// enrichment. JSON tags use camelCase so a flattened record matches the
// process-audio response contract. Zero-valued financial fields mean
// "not stated".
type EquipmentRecord struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Category     string `json:"category"`
	SerialNumber string `json:"serialNumber,omitempty"`
	Barcode      string `json:"barcode,omitempty"`

	Condition string `json:"condition,omitempty"`

	PurchasePrice   float64 `json:"purchasePrice,omitempty"`
	CurrentValue    float64 `json:"currentValue,omitempty"`
	PricePerDay     float64 `json:"pricePerDay,omitempty"`
	SecurityDeposit float64 `json:"securityDeposit,omitempty"`

	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Location    string `json:"location,omitempty"`

	Specifications   map[string]string     `json:"specifications,omitempty"`
	ConfidenceScores map[FieldName]float64 `json:"confidence_scores,omitempty"`
}

// MissingRequired returns the names of required identity fields that are
// empty. name, brand, model and category must be present before a record may
// reach the form assembler.
func (r EquipmentRecord) MissingRequired() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Brand == "" {
		missing = append(missing, "brand")
	}
	if r.Model == "" {
		missing = append(missing, "model")
	}
	if r.Category == "" {
		missing = append(missing, "category")
	}
	return missing
}
