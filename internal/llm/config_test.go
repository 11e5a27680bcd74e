package llm

import "testing"

func TestModelFor(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.ModelFor(TierAdvanced); got != "gemini-2.5-pro" {
		t.Errorf("advanced = %q", got)
	}

	// Missing tier falls back to standard.
	partial := &Config{Models: map[ModelTier]string{TierStandard: "model-s"}}
	if got := partial.ModelFor(TierAdvanced); got != "model-s" {
		t.Errorf("fallback = %q, want model-s", got)
	}

	// Then to lite.
	liteOnly := &Config{Models: map[ModelTier]string{TierLite: "model-l"}}
	if got := liteOnly.ModelFor(TierStandard); got != "model-l" {
		t.Errorf("fallback = %q, want model-l", got)
	}
}

func TestWithModel(t *testing.T) {
	cfg := DefaultConfig()
	next := cfg.WithModel(TierLite, "custom-lite")

	if got := next.ModelFor(TierLite); got != "custom-lite" {
		t.Errorf("override = %q", got)
	}
	if got := cfg.ModelFor(TierLite); got == "custom-lite" {
		t.Error("WithModel must not mutate the receiver")
	}
	if next.Temperature != cfg.Temperature {
		t.Error("temperature must carry over")
	}
}
