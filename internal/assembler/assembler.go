// Package assembler reshapes an enriched EquipmentRecord into the exact
// payload the inventory-creation API accepts.
package assembler

import (
	"strings"

	"camo-inv-go/internal/types"
)

// AssemblyError is the defensive guard on required identity fields. The
// extractor contract should make it unreachable.
type AssemblyError struct {
	Missing []string
}

func (e *AssemblyError) Error() string {
	return "cannot assemble form: missing " + strings.Join(e.Missing, ", ")
}

// Assemble renames the record's fields into the snake_case form payload.
// Confidence scores and any extractor-internal metadata are dropped. The
// transform is pure: the same record always yields the same payload.
func Assemble(rec types.EquipmentRecord) (types.FormPayload, error) {
	if missing := rec.MissingRequired(); len(missing) > 0 {
		return types.FormPayload{}, &AssemblyError{Missing: missing}
	}

	payload := types.FormPayload{
		Name:            rec.Name,
		Brand:           rec.Brand,
		Model:           rec.Model,
		Category:        rec.Category,
		Description:     rec.Description,
		SerialNumber:    rec.SerialNumber,
		Barcode:         rec.Barcode,
		Condition:       rec.Condition,
		PurchasePrice:   rec.PurchasePrice,
		CurrentValue:    rec.CurrentValue,
		PricePerDay:     rec.PricePerDay,
		SecurityDeposit: rec.SecurityDeposit,
		Location:        rec.Location,
		Notes:           rec.Notes,
	}
	if len(rec.Specifications) > 0 {
		payload.Specifications = make(map[string]string, len(rec.Specifications))
		for k, v := range rec.Specifications {
			payload.Specifications[k] = v
		}
	}
	return payload, nil
}
