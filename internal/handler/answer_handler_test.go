package handler

import (
	"testing"

	"github.com/mobilite-mtl/mobilite-backend-go/internal/engine"
)

func TestResolvePeriod(t *testing.T) {
	h := NewAnswerHandler(nil)

	if got := h.resolvePeriod(""); got != engine.DefaultPeriod {
		t.Errorf("empty period = %q, want default %q", got, engine.DefaultPeriod)
	}

	if got := h.resolvePeriod("30 derniers jours"); got != "30 derniers jours" {
		t.Errorf("named period = %q", got)
	}
	// Empty now falls back to the last served label, not the default.
	if got := h.resolvePeriod(""); got != "30 derniers jours" {
		t.Errorf("empty after named = %q, want 30 derniers jours", got)
	}

	// Malformed custom ranges must not poison the stored label.
	if got := h.resolvePeriod("Personnalisée : 2025-99-99 -> nope"); got != "30 derniers jours" {
		t.Errorf("malformed custom = %q, want last valid", got)
	}

	custom := "Personnalisée : 2025-01-01 -> 2025-02-01"
	if got := h.resolvePeriod(custom); got != custom {
		t.Errorf("valid custom = %q", got)
	}
	if got := h.resolvePeriod(""); got != custom {
		t.Errorf("empty after custom = %q, want %q", got, custom)
	}
}
