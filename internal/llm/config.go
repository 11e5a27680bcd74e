// Package llm provides the text-generation client used by the pipeline
// stages, with tiered model selection.
package llm

// ModelTier selects a model by the complexity of the task, not by name,
// so stages stay provider-agnostic.
type ModelTier string

const (
	// TierLite covers cheap tasks: filtering, short selections.
	TierLite ModelTier = "lite"
	// TierStandard covers structured extraction and scoring.
	TierStandard ModelTier = "standard"
	// TierAdvanced covers multi-criteria reasoning such as ranking.
	TierAdvanced ModelTier = "advanced"
)

// Config maps tiers to concrete model names and fixes the sampling
// temperature for all generation calls.
type Config struct {
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the Gemini tier mapping used when no overrides
// are configured. The temperature is kept low: every consumer of these
// models parses the output.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.1,
	}
}

// ModelFor returns the model name for a tier, falling back to standard
// and then lite when the requested tier has no mapping.
func (c *Config) ModelFor(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModel returns a copy of the config with one tier remapped.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{
		Models:      make(map[ModelTier]string, len(c.Models)),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
