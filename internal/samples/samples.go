// Package samples holds the representative equipment records used by sample
// mode and by the offline mock extractor. The records mirror real intake
// sessions for a camera rental inventory.
package samples

import (
	"strings"

	"camo-inv-go/internal/types"
)

// Sample pairs a spoken-style description with the record a correct
// extraction of that description yields.
type Sample struct {
	Key           string
	Transcription string
	Record        types.EquipmentRecord
}

// Library is keyed by the equipment phrase that identifies each sample in a
// transcription.
var Library = []Sample{
	{
		Key:           "canon eos r5",
		Transcription: "I have a Canon EOS R5 mirrorless camera here, serial number CAN123456789. It's a professional camera in good condition, bought for 250000 rupees. It's currently in warehouse section A, shelf 3. The camera has 45 megapixel resolution and can shoot 8K video. We rent it out for 2000 rupees per day with a security deposit of 25000 rupees.",
		Record: types.EquipmentRecord{
			Name:            "Canon EOS R5",
			Brand:           "Canon",
			Model:           "EOS R5",
			Category:        "cameras",
			SerialNumber:    "CAN123456789",
			Condition:       types.ConditionGood,
			Notes:           "Professional mirrorless camera, 45MP resolution, 8K video capability",
			Description:     "Professional mirrorless camera with 45 megapixel resolution and 8K video recording capability",
			PurchasePrice:   250000,
			CurrentValue:    230000,
			PricePerDay:     2000,
			SecurityDeposit: 25000,
			Location:        "Warehouse section A, shelf 3",
			Specifications: map[string]string{
				"resolution": "45 megapixels",
				"video":      "8K recording",
				"type":       "Mirrorless",
				"mount":      "Canon RF",
				"iso_range":  "100-51200",
				"display":    "3.2-inch vari-angle touchscreen",
			},
			ConfidenceScores: map[types.FieldName]float64{
				types.FieldNameName:      0.95,
				types.FieldNameBrand:     0.98,
				types.FieldNameModel:     0.96,
				types.FieldNameSerial:    0.90,
				types.FieldNameCondition: 0.85,
				types.FieldNamePurchase:  0.92,
				types.FieldNamePerDay:    0.94,
				types.FieldNameLocation:  0.88,
			},
		},
	},
	{
		Key:           "sony fx6",
		Transcription: "This is a Sony FX6 cinema camera, model number FX6-001, serial FX6789012. Excellent condition, very expensive piece - we paid 450000 for it. Located in the video equipment section, rack B2. It records in 4K at 120fps, has dual base ISO. Daily rental is 3500 rupees, security deposit 50000.",
		Record: types.EquipmentRecord{
			Name:            "Sony FX6 Cinema Camera",
			Brand:           "Sony",
			Model:           "FX6",
			Category:        "cameras",
			SerialNumber:    "FX6789012",
			Barcode:         "FX6-001",
			Condition:       types.ConditionNew,
			Notes:           "Professional cinema camera, 4K 120fps, dual base ISO",
			Description:     "Professional cinema camera with 4K 120fps recording and dual base ISO",
			PurchasePrice:   450000,
			CurrentValue:    420000,
			PricePerDay:     3500,
			SecurityDeposit: 50000,
			Location:        "Video equipment section, rack B2",
			Specifications: map[string]string{
				"recording": "4K at 120fps",
				"iso":       "Dual base ISO 800/4000",
				"codec":     "XAVC-I, XAVC-L",
				"mount":     "Sony E-mount",
				"display":   "4-inch touchscreen LCD",
				"weight":    "890g body only",
			},
			ConfidenceScores: map[types.FieldName]float64{
				types.FieldNameName:      0.92,
				types.FieldNameBrand:     0.97,
				types.FieldNameModel:     0.94,
				types.FieldNameSerial:    0.89,
				types.FieldNameCondition: 0.91,
				types.FieldNamePurchase:  0.88,
				types.FieldNamePerDay:    0.93,
				types.FieldNameLocation:  0.86,
			},
		},
	},
	{
		Key:           "rode videomic pro plus",
		Transcription: "Here's a Rode VideoMic Pro Plus shotgun microphone, serial RD567890. Good condition, some minor scratches but works perfectly. Cost us 35000 rupees originally. It's in the audio gear cabinet, drawer 5. Has built-in battery, frequency response 20Hz-20kHz. We charge 300 per day, deposit 5000.",
		Record: types.EquipmentRecord{
			Name:            "Rode VideoMic Pro Plus",
			Brand:           "Rode",
			Model:           "VideoMic Pro Plus",
			Category:        "audio",
			SerialNumber:    "RD567890",
			Condition:       types.ConditionGood,
			Notes:           "Shotgun microphone with built-in battery, minor scratches but works perfectly",
			Description:     "Professional shotgun microphone with built-in battery and 20Hz-20kHz frequency response",
			PurchasePrice:   35000,
			CurrentValue:    28000,
			PricePerDay:     300,
			SecurityDeposit: 5000,
			Location:        "Audio gear cabinet, drawer 5",
			Specifications: map[string]string{
				"type":               "Shotgun condenser microphone",
				"frequency_response": "20Hz - 20kHz",
				"power":              "Built-in lithium battery",
				"connectivity":       "3.5mm TRS/TRRS output",
				"dimensions":         "170mm x 21mm",
				"weight":             "122g",
			},
			ConfidenceScores: map[types.FieldName]float64{
				types.FieldNameName:      0.94,
				types.FieldNameBrand:     0.96,
				types.FieldNameModel:     0.93,
				types.FieldNameSerial:    0.87,
				types.FieldNameCondition: 0.83,
				types.FieldNamePurchase:  0.89,
				types.FieldNamePerDay:    0.91,
				types.FieldNameLocation:  0.85,
			},
		},
	},
	{
		Key:           "canon 70-200mm",
		Transcription: "Canon 70-200mm f/2.8L IS lens, white telephoto lens in very good condition. Serial number LEN987654. Purchase price was 180000 rupees. Stored in lens cabinet section C, position 12. Has image stabilization, weather sealing. Rental rate 1200 per day, security deposit 20000 rupees.",
		Record: types.EquipmentRecord{
			Name:            "Canon EF 70-200mm f/2.8L IS USM",
			Brand:           "Canon",
			Model:           "EF 70-200mm f/2.8L IS USM",
			Category:        "lenses",
			SerialNumber:    "LEN987654",
			Condition:       types.ConditionGood,
			Notes:           "White telephoto lens with image stabilization and weather sealing",
			Description:     "Professional telephoto zoom lens with constant f/2.8 aperture and image stabilization",
			PurchasePrice:   180000,
			CurrentValue:    160000,
			PricePerDay:     1200,
			SecurityDeposit: 20000,
			Location:        "Lens cabinet section C, position 12",
			Specifications: map[string]string{
				"focal_length":        "70-200mm",
				"aperture":            "f/2.8 constant",
				"image_stabilization": "4-stop IS",
				"mount":               "Canon EF",
				"weather_sealing":     "Yes",
				"weight":              "1490g",
				"filter_size":         "77mm",
			},
			ConfidenceScores: map[types.FieldName]float64{
				types.FieldNameName:      0.91,
				types.FieldNameBrand:     0.98,
				types.FieldNameModel:     0.89,
				types.FieldNameSerial:    0.92,
				types.FieldNameCondition: 0.87,
				types.FieldNamePurchase:  0.85,
				types.FieldNamePerDay:    0.90,
				types.FieldNameLocation:  0.84,
			},
		},
	},
}

// Default returns the representative sample used when the caller requests
// sample mode: a fully populated record with specifications already present.
func Default() Sample {
	return Library[0]
}

// Match finds the sample whose key phrase appears in the transcription.
func Match(transcription string) (Sample, bool) {
	lower := strings.ToLower(transcription)
	for _, s := range Library {
		if strings.Contains(lower, s.Key) {
			return s, true
		}
	}
	return Sample{}, false
}

// Clone deep-copies the record so callers can mutate specifications and
// scores without touching the shared fixtures.
func (s Sample) Clone() types.EquipmentRecord {
	rec := s.Record
	if s.Record.Specifications != nil {
		rec.Specifications = make(map[string]string, len(s.Record.Specifications))
		for k, v := range s.Record.Specifications {
			rec.Specifications[k] = v
		}
	}
	if s.Record.ConfidenceScores != nil {
		rec.ConfidenceScores = make(map[types.FieldName]float64, len(s.Record.ConfidenceScores))
		for k, v := range s.Record.ConfidenceScores {
			rec.ConfidenceScores[k] = v
		}
	}
	return rec
}
