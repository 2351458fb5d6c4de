package pixelate

// 🧨 structuralError marks algorithmic failures where no usable output can
// be produced (degenerate palettes, empty visible regions). These are never
// retried.
type structuralError struct {
	msg string
}

func (e *structuralError) Error() string { return e.msg }

// StructuralFailure marks the error as terminal for the current image.
func (e *structuralError) StructuralFailure() bool { return true }

// ⚠️ warningError marks recoverable numerical anomalies. In strict mode they
// abort the call; in permissive mode they are tolerated and a result is
// still produced.
type warningError struct {
	msg string
}

func (e *warningError) Error() string { return e.msg }

// ConversionWarning marks the error as a tolerable anomaly.
func (e *warningError) ConversionWarning() bool { return true }
