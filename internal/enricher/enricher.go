// Package enricher augments an extracted record's specifications with
// results from an external search/scrape lookup keyed on brand+model.
package enricher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"camo-inv-go/internal/logger"
)

// SpecSearcher is the external search/scrape collaborator. A lookup may
// return an empty map or an error; the enricher absorbs both.
type SpecSearcher interface {
	Search(ctx context.Context, query string) (map[string]string, error)
}

// Status of one enrichment attempt, reported in the envelope as
// web_scraping_status.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// MaxSpecs bounds how many scraped entries one lookup may contribute. The
// provider itself imposes no cap; entries are kept in sorted key order so
// repeated lookups stay deterministic.
const MaxSpecs = 16

type Enricher struct {
	searcher SpecSearcher
}

func New(searcher SpecSearcher) *Enricher {
	return &Enricher{searcher: searcher}
}

// Enrich looks up specifications for brand+model. It never fails the caller:
// provider errors and unusable inputs degrade to an empty map with
// StatusFailed.
func (e *Enricher) Enrich(ctx context.Context, brand, model string) (map[string]string, Status) {
	log := logger.Component("enricher")

	brand = strings.TrimSpace(brand)
	model = strings.TrimSpace(model)
	if brand == "" || model == "" {
		log.Warn("enrichment skipped: brand or model missing")
		return map[string]string{}, StatusFailed
	}

	query := fmt.Sprintf("%s %s specifications", brand, model)
	log.WithField("query", query).Info("searching equipment specifications")

	specs, err := e.searcher.Search(ctx, query)
	if err != nil {
		log.WithError(err).Warn("specification search failed")
		return map[string]string{}, StatusFailed
	}

	return cap16(specs), StatusSuccess
}

// Merge adds scraped specifications to the extractor's map without ever
// overwriting or deleting an existing key. The input maps are not mutated.
func Merge(extracted, scraped map[string]string) map[string]string {
	out := make(map[string]string, len(extracted)+len(scraped))
	for k, v := range extracted {
		out[k] = v
	}
	for k, v := range scraped {
		if _, exists := out[k]; !exists {
			out[k] = v
		}
	}
	return out
}

func cap16(specs map[string]string) map[string]string {
	if len(specs) <= MaxSpecs {
		if specs == nil {
			return map[string]string{}
		}
		return specs
	}
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]string, MaxSpecs)
	for _, k := range keys[:MaxSpecs] {
		out[k] = specs[k]
	}
	return out
}
