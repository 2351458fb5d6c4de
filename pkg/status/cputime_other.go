//go:build !unix

package status

import "time"

var processStart = time.Now()

// processSeconds falls back to wall-clock elapsed time on platforms without
// rusage accounting.
func processSeconds() float64 {
	return time.Since(processStart).Seconds()
}
