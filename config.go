package arena

import "go.uber.org/atomic"

// Config is the read-only runtime configuration snapshot consumed by the
// core. It is process-global: operations read it fresh on every call via
// CurrentConfig rather than caching it, so a toggle takes effect on the
// next call.
type Config struct {
	// EnableLogging silences the log sink entirely when false.
	EnableLogging bool
	// TrackAllocations makes Monitor.Record/Clear no-ops when false.
	TrackAllocations bool
	// TrackAlignmentLoss stops Waste from accumulating when false; the
	// aligned-offset arithmetic itself is unaffected.
	TrackAlignmentLoss bool
	// LogOutputPath is an advisory path for external log persistence; the
	// core never opens or writes this file itself.
	LogOutputPath string
}

// DefaultConfig returns a snapshot with logging and both tracking options
// enabled.
func DefaultConfig() Config {
	return Config{
		EnableLogging:      true,
		TrackAllocations:   true,
		TrackAlignmentLoss: true,
	}
}

var currentConfig atomic.Value

func init() {
	currentConfig.Store(DefaultConfig())
}

// SetConfig installs a new process-global config snapshot, effective for
// every operation performed afterward.
func SetConfig(cfg Config) {
	currentConfig.Store(cfg)
}

// CurrentConfig returns the current process-global config snapshot.
func CurrentConfig() Config {
	return currentConfig.Load().(Config)
}
