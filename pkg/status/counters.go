package status

// 📊 Counters is the process-wide run state. It is owned and mutated by the
// batch driver and read by the Renderer on every redraw; nothing else
// touches it.
type Counters struct {
	Total     int // Files enumerated for processing
	Completed int // Files fully converted and written
	Warnings  int // Recoverable warnings surfaced during convert/encode
	Errors    int // Files abandoned on a fatal conversion error
	Excluded  int // Entries discarded during path resolution
}
