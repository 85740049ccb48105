package submitter

import (
	"fmt"

	"quotegen/internal/config"
	"quotegen/internal/port"
)

// ProviderFactory is a function that creates a DocumentSubmitter from the submitter config.
type ProviderFactory func(cfg *config.SubmitterConfig) (port.DocumentSubmitter, error)

// registry of submitter factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a submitter factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewSubmitter creates a DocumentSubmitter using the factory registered for cfg.Provider.
func NewSubmitter(cfg *config.SubmitterConfig) (port.DocumentSubmitter, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown submitter provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
