// Package reference provides the lookup lists offered to the operator while
// filling in a document: material names and payment-term suggestions.
package reference

import (
	"context"
	"fmt"
	"log"

	"quotegen/internal/port"
)

var (
	defaultMaterials    = []string{"Cement", "Bricks", "Sand", "Steel", "Paint"}
	defaultPaymentTerms = []string{"Immediate payment"}
)

// Catalog is a read-only snapshot of the reference lists.
type Catalog struct {
	Materials    []string `json:"materials"`
	PaymentTerms []string `json:"paymentTerms"`
}

// DefaultCatalog returns the built-in lists.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Materials:    append([]string(nil), defaultMaterials...),
		PaymentTerms: append([]string(nil), defaultPaymentTerms...),
	}
}

// Load builds a catalog from src. A list that the source leaves empty falls
// back to its built-in default. A nil src yields the default catalog.
func Load(ctx context.Context, src port.ReferenceSource) (*Catalog, error) {
	cat := DefaultCatalog()
	if src == nil {
		return cat, nil
	}

	materials, err := src.LoadMaterials(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading materials: %w", err)
	}
	if len(materials) > 0 {
		cat.Materials = materials
	}

	paymentTerms, err := src.LoadPaymentTerms(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading payment terms: %w", err)
	}
	if len(paymentTerms) > 0 {
		cat.PaymentTerms = paymentTerms
	}

	log.Printf("reference.Load: %d materials, %d payment terms", len(cat.Materials), len(cat.PaymentTerms))
	return cat, nil
}
