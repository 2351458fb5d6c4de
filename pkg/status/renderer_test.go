package status

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer(t *testing.T, counters *Counters, window *Window, showWarnings bool) (*Renderer, *bytes.Buffer) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	r := NewRenderer(&buf, counters, window, showWarnings)
	r.cpuSeconds = func() float64 { return 65 }
	return r, &buf
}

// 🧪 TestRedraw tests bar geometry and the status line contents
func TestRedraw(t *testing.T) {
	counters := &Counters{Total: 4, Completed: 2}
	window := NewWindow(10)
	window.Push(10 * time.Second)
	r, buf := plainRenderer(t, counters, window, true)

	r.Redraw(false)
	out := buf.String()

	assert.Contains(t, out, "[ "+strings.Repeat("•", 25)+strings.Repeat("-", 25)+" ] 50.0 %",
		"each bar character covers 2%")
	assert.Contains(t, out, "Done 2/4")
	assert.Contains(t, out, "Warnings: 0")
	assert.Contains(t, out, "Errors: 0")
	assert.Contains(t, out, "Elapsed: 0:01:05")
	assert.Contains(t, out, "Remaining: 0:00:20", "10s average over 2 remaining files")
	assert.Contains(t, out, cursorUp+cursorUp+"\r", "the cursor returns to the top of the region")
}

// 🧪 TestRedrawCalculating tests the empty-window placeholder
func TestRedrawCalculating(t *testing.T) {
	r, buf := plainRenderer(t, &Counters{Total: 3}, NewWindow(10), true)
	r.Redraw(false)
	assert.Contains(t, buf.String(), "Remaining: Calculating...")
}

// 🧪 TestRedrawFinal tests region collapse on the last redraw
func TestRedrawFinal(t *testing.T) {
	counters := &Counters{Total: 2, Completed: 2}
	window := NewWindow(10)
	window.Push(time.Second)
	r, buf := plainRenderer(t, counters, window, true)

	r.Redraw(true)
	out := buf.String()

	assert.Contains(t, out, regionErase, "the held region is erased")
	assert.Contains(t, out, "Remaining: 0:00:00", "the final line shows zero remaining")
	assert.NotContains(t, out, "Calculating")
}

// 🧪 TestRedrawHidesWarnings tests the warnings-display toggle
func TestRedrawHidesWarnings(t *testing.T) {
	r, buf := plainRenderer(t, &Counters{Total: 1, Warnings: 3}, NewWindow(10), false)
	r.Redraw(false)
	assert.NotContains(t, buf.String(), "Warnings:")
}

// 🧪 TestLogfKeepsBarLast tests the core interleaving invariant: after any
// log line, the bar region is the last thing printed
func TestLogfKeepsBarLast(t *testing.T) {
	r, buf := plainRenderer(t, &Counters{Total: 2, Completed: 1}, NewWindow(10), true)

	r.Logf("\tProcessing image:\t%s", "pic.png")
	out := buf.String()

	msgIdx := strings.Index(out, "Processing image")
	barIdx := strings.LastIndex(out, "Done 1/2")
	require.GreaterOrEqual(t, msgIdx, 0)
	require.GreaterOrEqual(t, barIdx, 0)
	assert.Greater(t, barIdx, msgIdx, "the bar is reprinted below the log line")
	assert.True(t, strings.HasPrefix(out, regionErase), "the stale region is erased before the log line")
}

// 🧪 TestClock tests H:MM:SS formatting
func TestClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{60, "0:01:00"},
		{3599, "0:59:59"},
		{3661, "1:01:01"},
		{36000, "10:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clock(tt.seconds))
	}
}
