package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ── fitText ──────────────────────────────────────────────────────────────────

func TestFitText_ShortStringsPassThrough(t *testing.T) {
	assert.Equal(t, "pages", fitText("pages", 10))
	assert.Equal(t, "pages", fitText("pages", 5))
	assert.Equal(t, "pages", fitText("pages", 0))
}

func TestFitText_TruncatesWithEllipsis(t *testing.T) {
	assert.Equal(t, "push...", fitText("pushups every day", 7))
}

func TestFitText_TinyMaxDropsEllipsis(t *testing.T) {
	assert.Equal(t, "pu", fitText("pushups", 2))
}

func TestFitText_KeepsMultiByteRunesIntact(t *testing.T) {
	got := fitText("чтение библии каждый вечер", 10)

	assert.Equal(t, "чтение ...", got)
	assert.True(t, []rune(got)[0] == 'ч')
}

// ── valueOrDash ──────────────────────────────────────────────────────────────

func TestValueOrDash(t *testing.T) {
	assert.Equal(t, "-", valueOrDash(""))
	assert.Equal(t, "yes", valueOrDash("yes"))
}
