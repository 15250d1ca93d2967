// Package pricefeed defines the upstream source registry and the normalized
// record format every upstream payload is reduced to before storage.
package pricefeed

import (
	"fmt"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
)

// SourceKind selects which upstream client serves a source.
type SourceKind string

const (
	KindLME      SourceKind = "lme"
	KindOilPrice SourceKind = "oilprice"
)

// Source describes one upstream data source. Code is the commodity code
// rows are stored under; StoreSource is the provenance string written on
// each price row.
type Source struct {
	Key         string
	Kind        SourceKind
	Name        string
	Code        string
	StoreSource string

	// LME sources
	DatasourceID string
	PageURL      string

	// oilprice sources
	BlendID int
	Period  int
}

var sources = []Source{
	{
		Key:          "copper",
		Kind:         KindLME,
		Name:         "Copper",
		Code:         "COPPER",
		StoreSource:  "LME",
		DatasourceID: "39fabad0-95ca-491b-a733-bcef31818b16",
		PageURL:      "https://www.lme.com/metals/non-ferrous/lme-copper",
	},
	{
		Key:          "zinc",
		Kind:         KindLME,
		Name:         "Zinc",
		Code:         "ZINC",
		StoreSource:  "LME",
		DatasourceID: "1a1aca59-3032-4ea6-b22b-18b151514b84",
		PageURL:      "https://www.lme.com/metals/non-ferrous/lme-zinc",
	},
	{
		Key:         "oil",
		Kind:        KindOilPrice,
		Name:        "Oil Price (WTI)",
		Code:        "OIL",
		StoreSource: "OilPrice.com",
		PageURL:     "https://oilprice.com/",
		BlendID:     39,
		Period:      7,
	},
}

// Sources returns all registered sources in registry order.
func Sources() []Source {
	out := make([]Source, len(sources))
	copy(out, sources)
	return out
}

// SourceKeys returns the public identifiers of all registered sources.
func SourceKeys() []string {
	keys := make([]string, len(sources))
	for i, s := range sources {
		keys[i] = s.Key
	}
	return keys
}

// LookupSource resolves a source key against the registry.
func LookupSource(key string) (Source, error) {
	for _, s := range sources {
		if s.Key == key {
			return s, nil
		}
	}
	return Source{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownSource, key)
}
