//go:build unix

package status

import "syscall"

// processSeconds returns the CPU time (user + system) consumed by the
// process so far. Elapsed display deliberately uses CPU time rather than
// wall clock.
func processSeconds() float64 {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return 0
	}
	return timevalSeconds(ru.Utime) + timevalSeconds(ru.Stime)
}

func timevalSeconds(tv syscall.Timeval) float64 {
	return float64(tv.Sec) + float64(tv.Usec)/1e6
}
