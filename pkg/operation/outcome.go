package operation

import (
	"context"
	"image"
)

// 🎯 OutcomeKind classifies one conversion attempt
type OutcomeKind int

const (
	Success  OutcomeKind = iota // Clean first-pass conversion
	Degraded                    // Result accepted after a permissive retry
	Fatal                       // Structural failure, no usable output
)

// 📦 Outcome is the explicit result of the conversion retry policy. It lives
// only within one batch iteration.
type Outcome struct {
	Kind    OutcomeKind
	Image   image.Image // Populated for Success and Degraded
	Warning error       // The strict-mode anomaly, populated for Degraded
	Err     error       // Populated for Fatal
}

// 🎨 Converter is the opaque pixelation routine. The strict flag controls
// whether internally detected anomalies abort the call or are tolerated.
type Converter interface {
	Convert(ctx context.Context, img image.Image, strict bool) (image.Image, error)
}

// 💾 Store is the opaque image I/O collaborator used by the batch driver.
type Store interface {
	Read(path string) (image.Image, error)
	Write(ctx context.Context, path string, img image.Image, strict bool) error
	Scale(img image.Image, width, height int) image.Image
}
