package port

import "context"

// ReferenceSource loads the lookup lists offered to the operator.
type ReferenceSource interface {
	LoadMaterials(ctx context.Context) ([]string, error)
	LoadPaymentTerms(ctx context.Context) ([]string, error)
}
