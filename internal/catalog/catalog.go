// Package catalog loads a known-equipment spreadsheet and condenses it into
// the compact summary the extractor embeds in its prompt as ground truth.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
	"camo-inv-go/internal/logger"
)

// Entry is one known piece of equipment from the catalog sheet.
type Entry struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Category string `json:"category"`
}

// Summary is the prompt-sized digest of the catalog.
type Summary struct {
	TotalItems   int            `json:"total_items"`
	Brands       []string       `json:"brands"`
	ByCategory   map[string]int `json:"by_category"`
	ExampleNames []string       `json:"example_names"`
}

// Load reads the first sheet, auto-detecting columns by header heuristics.
// Rows without at least a name and brand are skipped quietly.
func Load(path string) ([]Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	header := rows[0]
	nameIdx, brandIdx, modelIdx, catIdx := -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case nameIdx == -1 && (strings.Contains(l, "name") || strings.Contains(l, "equipment") || strings.Contains(l, "item")):
			nameIdx = i
		case brandIdx == -1 && (strings.Contains(l, "brand") || strings.Contains(l, "make") || strings.Contains(l, "manufacturer")):
			brandIdx = i
		case modelIdx == -1 && strings.Contains(l, "model"):
			modelIdx = i
		case catIdx == -1 && (strings.Contains(l, "categ") || strings.Contains(l, "type")):
			catIdx = i
		}
	}
	if nameIdx == -1 {
		nameIdx = 0
	}

	var out []Entry
	for i, r := range rows {
		if i == 0 {
			continue
		}
		e := Entry{}
		if nameIdx < len(r) {
			e.Name = strings.TrimSpace(r[nameIdx])
		}
		if brandIdx >= 0 && brandIdx < len(r) {
			e.Brand = strings.TrimSpace(r[brandIdx])
		}
		if modelIdx >= 0 && modelIdx < len(r) {
			e.Model = strings.TrimSpace(r[modelIdx])
		}
		if catIdx >= 0 && catIdx < len(r) {
			e.Category = strings.ToLower(strings.TrimSpace(r[catIdx]))
		}
		if e.Name == "" || e.Brand == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Summarize condenses catalog entries into prompt context: distinct brands,
// per-category counts, and a handful of example names.
func Summarize(entries []Entry) Summary {
	brandSet := map[string]bool{}
	byCat := map[string]int{}
	examples := []string{}
	for _, e := range entries {
		if e.Brand != "" {
			brandSet[e.Brand] = true
		}
		if e.Category != "" {
			byCat[e.Category]++
		}
		if len(examples) < 6 && e.Name != "" {
			examples = append(examples, e.Name)
		}
	}
	brands := make([]string, 0, len(brandSet))
	for b := range brandSet {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return Summary{
		TotalItems:   len(entries),
		Brands:       brands,
		ByCategory:   byCat,
		ExampleNames: examples,
	}
}

// LoadAndSummarize is the startup path: read the sheet once, keep only the
// digest in memory.
func LoadAndSummarize(path string) (Summary, error) {
	log := logger.Component("catalog").WithField("path", path)
	log.Info("opening equipment catalog")
	entries, err := Load(path)
	if err != nil {
		log.WithError(err).Error("catalog load failed")
		return Summary{}, err
	}
	s := Summarize(entries)
	log.WithField("total_items", s.TotalItems).WithField("brands", len(s.Brands)).Info("catalog summarized")
	return s, nil
}
