package profiler

import "log/slog"

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets the throughput window length in milliseconds. Non-positive values are ignored.
//
// Parameters:
//   - ms: the window length in milliseconds
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a profiler
func WithInterval(ms int64) ProfilerBuilderOption {
	return func(p *Profiler) {
		if ms > 0 {
			p.interval = ms
		}
	}
}

// WithMemStats enables heap and GC statistics in each report log line.
//
// Parameters:
//   - enabled: whether memory statistics are collected
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the memory statistics option to a profiler
func WithMemStats(enabled bool) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.memStatsOn = enabled
	}
}

// WithLogger sets the logger reports are written to.
//
// Parameters:
//   - logger: the destination logger
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger option to a profiler
func WithLogger(logger *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = logger
	}
}
