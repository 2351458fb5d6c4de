// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// ANSI control sequences for the two-line status region.
const (
	cursorUp  = "\x1b[1A"
	eraseLine = "\x1b[2K"

	// barWidth is the bar resolution: each character covers 2%.
	barWidth = 50
)

// regionErase clears the currently held two-line region: step onto the
// second line, erase it, step back up, erase the first. The cursor ends at
// the start of the region.
const regionErase = "\n" + eraseLine + cursorUp + eraseLine

// 📺 Renderer owns the two-line progress region at the cursor's position.
// Redraw overwrites the region in place; Logf inserts a line above it. The
// invariant through every operation is that the region is the last thing
// printed before control returns to the driver.
type Renderer struct {
	out          io.Writer
	counters     *Counters
	window       *Window
	showWarnings bool

	// cpuSeconds reports elapsed process CPU time; swappable in tests.
	cpuSeconds func() float64
}

// 🏭 NewRenderer creates a Renderer over the given run state. The counters
// and window are read-only from the Renderer's side.
func NewRenderer(out io.Writer, counters *Counters, window *Window, showWarnings bool) *Renderer {
	return &Renderer{
		out:          out,
		counters:     counters,
		window:       window,
		showWarnings: showWarnings,
		cpuSeconds:   processSeconds,
	}
}

// Redraw recomputes and reprints the bar and status lines, then repositions
// the cursor so the next redraw overwrites them. When final is true the
// region is collapsed instead: the bar line is erased and a single flat
// status line remains.
func (r *Renderer) Redraw(final bool) {
	done := r.counters.Completed
	total := r.counters.Total

	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	filled := int(math.Round(ratio*100)) / 2

	bar := "[ " + strings.Repeat("•", filled) +
		strings.Repeat(StyleDim.Sprint("-"), barWidth-filled) +
		fmt.Sprintf(" ] %.1f %%", ratio*100)
	fmt.Fprintln(r.out, bar)

	sep := StyleDim.Sprint(" | ")
	line := "Done " + StyleSuccess.Sprint(done) + "/" + fmt.Sprint(total) + sep
	if r.showWarnings {
		line += "Warnings: " + StyleWarning.Sprint(r.counters.Warnings) + sep
	}
	line += "Errors: " + StyleError.Sprint(r.counters.Errors) + sep
	line += "Elapsed: " + Clock(int(math.Round(r.cpuSeconds()))) + sep + "Remaining: "

	avg, ok := r.window.Average()
	switch {
	case final:
		line += Clock(0)
	case ok:
		line += Clock(int(math.Round(avg.Seconds() * float64(total-done))))
	default:
		line += "Calculating..."
	}

	if final {
		line = regionErase + line
	} else {
		line += cursorUp + cursorUp + "\r"
	}
	fmt.Fprintln(r.out, line)
}

// Logf erases the held region, prints one log line in its place, and
// immediately redraws the bar below it. Interleaved messages therefore never
// collide with stale bar fragments.
func (r *Renderer) Logf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, regionErase+fmt.Sprintf(format, args...))
	r.Redraw(false)
}

// Finalf prints a closing message in place of the region, then renders the
// final collapsed status line. Used for run-ending notices such as a user
// cancellation.
func (r *Renderer) Finalf(format string, args ...interface{}) {
	fmt.Fprintln(r.out, regionErase+fmt.Sprintf(format, args...))
	r.Redraw(true)
}

// Clock formats whole seconds as H:MM:SS.
func Clock(seconds int) string {
	m, s := seconds/60, seconds%60
	h, m := m/60, m%60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
