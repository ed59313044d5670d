package descriptor

// Outcome records the result of probing one descriptor.
type Outcome struct {
	// OK is true when the server completed the probe handshake.
	OK bool
	// ElapsedMS is the wall time the probe took, in milliseconds. For
	// failed probes it still carries the time spent before giving up.
	ElapsedMS int64
	// Error holds a short failure classification, empty on success.
	Error string
}

// ScanResult pairs a descriptor with its probe outcome.
type ScanResult struct {
	Descriptor Descriptor
	Outcome    Outcome
}
