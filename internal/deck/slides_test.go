package deck

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars here", 10, "exactly te"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.max), "input %q", tt.in)
	}
}

func TestTruncate_RuneBoundaries(t *testing.T) {
	in := strings.Repeat("é", 8) + " café"

	got := truncate(in, 4)

	assert.Equal(t, "éééé", got)
	assert.True(t, utf8.ValidString(got))

	// Multi-byte strings already within the rune limit pass through whole.
	assert.Equal(t, "日本語", truncate("日本語", 3))
}

func TestSpeedGauge_NegativeLoadTimeClamped(t *testing.T) {
	th := DefaultTheme()
	b := &slideBuilder{theme: &th}

	reqs := b.speedGauge("slide_0001", -500)

	assert.True(t, containsText(reqs, "Average Load Time: 0.00s"))
	assert.True(t, containsText(reqs, "Critical: Page Speed Optimization Required"))
}
