package pricefeed

import (
	"errors"
	"testing"

	"github.com/ndtduy/commodity-data-backend/internal/apperrors"
)

func TestLookupSource(t *testing.T) {
	t.Run("resolves copper to the LME client", func(t *testing.T) {
		src, err := LookupSource("copper")
		if err != nil {
			t.Fatalf("LookupSource returned unexpected error: %v", err)
		}

		if src.Kind != KindLME {
			t.Errorf("Expected kind %q, got %q", KindLME, src.Kind)
		}

		if src.Code != "COPPER" {
			t.Errorf("Expected code COPPER, got %q", src.Code)
		}

		if src.StoreSource != "LME" {
			t.Errorf("Expected provenance LME, got %q", src.StoreSource)
		}

		if src.DatasourceID == "" {
			t.Error("Expected LME datasource id to be set")
		}
	})

	t.Run("resolves oil to the oilprice client", func(t *testing.T) {
		src, err := LookupSource("oil")
		if err != nil {
			t.Fatalf("LookupSource returned unexpected error: %v", err)
		}

		if src.Kind != KindOilPrice {
			t.Errorf("Expected kind %q, got %q", KindOilPrice, src.Kind)
		}

		if src.Code != "OIL" {
			t.Errorf("Expected code OIL, got %q", src.Code)
		}

		if src.BlendID == 0 {
			t.Error("Expected oilprice blend id to be set")
		}
	})

	t.Run("unknown key returns ErrUnknownSource", func(t *testing.T) {
		_, err := LookupSource("gold")
		if err == nil {
			t.Fatal("Expected error for unknown source, got nil")
		}

		if !errors.Is(err, apperrors.ErrUnknownSource) {
			t.Errorf("Expected ErrUnknownSource, got %v", err)
		}
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, err := LookupSource("Copper")
		if !errors.Is(err, apperrors.ErrUnknownSource) {
			t.Errorf("Expected ErrUnknownSource for upper-cased key, got %v", err)
		}
	})
}

func TestSourceKeys(t *testing.T) {
	keys := SourceKeys()

	expected := []string{"copper", "zinc", "oil"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d source keys, got %d", len(expected), len(keys))
	}

	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Expected key %q at index %d, got %q", key, i, keys[i])
		}
	}
}

func TestSources(t *testing.T) {
	t.Run("returns every registered source", func(t *testing.T) {
		all := Sources()
		if len(all) != 3 {
			t.Fatalf("Expected 3 sources, got %d", len(all))
		}
	})

	t.Run("callers get a copy, not the registry", func(t *testing.T) {
		first := Sources()
		first[0].Name = "mutated"

		second := Sources()
		if second[0].Name == "mutated" {
			t.Error("Expected registry to be isolated from caller mutation")
		}
	})
}
