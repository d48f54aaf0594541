package types

// FormPayload is the flat object the inventory-creation API accepts.
// Key names are the snake_case form field names; confidence scores and any
// extractor-internal metadata never appear here.
type FormPayload struct {
	Name            string            `json:"name"`
	Brand           string            `json:"brand"`
	Model           string            `json:"model"`
	Category        string            `json:"category"`
	Description     string            `json:"description,omitempty"`
	SerialNumber    string            `json:"serial_number,omitempty"`
	Barcode         string            `json:"barcode,omitempty"`
	Condition       string            `json:"condition,omitempty"`
	PurchasePrice   float64           `json:"purchase_price,omitempty"`
	CurrentValue    float64           `json:"current_value,omitempty"`
	PricePerDay     float64           `json:"price_per_day,omitempty"`
	SecurityDeposit float64           `json:"security_deposit,omitempty"`
	Location        string            `json:"location,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Specifications  map[string]string `json:"specifications,omitempty"`
	CreatedBy       string            `json:"created_by,omitempty"`
}

// PopulatedCount counts the form fields that carry a value, the summary stat
// shown next to a pre-filled form. CreatedBy is caller metadata and does not
// count.
func (p FormPayload) PopulatedCount() int {
	n := 0
	for _, s := range []string{
		p.Name, p.Brand, p.Model, p.Category, p.Description,
		p.SerialNumber, p.Barcode, p.Condition, p.Location, p.Notes,
	} {
		if s != "" {
			n++
		}
	}
	for _, f := range []float64{p.PurchasePrice, p.CurrentValue, p.PricePerDay, p.SecurityDeposit} {
		if f > 0 {
			n++
		}
	}
	if len(p.Specifications) > 0 {
		n++
	}
	return n
}
