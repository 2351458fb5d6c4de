package status

import "github.com/fatih/color"

// 🎨 Style is the closed set of text styles used for status and log output.
// Each maps to a fixed color value; there is no dynamic style construction.
type Style int

const (
	StyleSuccess Style = iota // Green: completed counts, success notices
	StyleError                // Red: error counts and messages
	StyleWarning              // Magenta: warning counts and messages
	StyleDim                  // Faint: de-emphasized separators and paths
)

var styleColors = map[Style]*color.Color{
	StyleSuccess: color.New(color.FgGreen),
	StyleError:   color.New(color.FgRed),
	StyleWarning: color.New(color.FgMagenta),
	StyleDim:     color.New(color.Faint),
}

// Sprint renders its arguments with the style's color applied.
func (s Style) Sprint(a ...interface{}) string {
	return styleColors[s].Sprint(a...)
}

// Sprintf renders a formatted string with the style's color applied.
func (s Style) Sprintf(format string, a ...interface{}) string {
	return styleColors[s].Sprintf(format, a...)
}
