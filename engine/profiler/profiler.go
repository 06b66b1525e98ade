package profiler

import (
	"log/slog"
	"runtime"
)

// DefaultInterval is the default length of one throughput window in milliseconds.
const DefaultInterval int64 = 1000

// Report is the throughput summary for one completed window.
type Report struct {
	Frames     int     // frames rendered during the window
	DurationMs int64   // window length in milliseconds of game time
	FPS        float64 // Frames per second over the window
}

// Profiler tracks frame rate and, optionally, memory statistics.
// Time is supplied by the caller as game time in milliseconds so the profiler never reads a clock itself.
type Profiler struct {
	logger         *slog.Logger
	interval       int64
	memStatsOn     bool
	frameCount     int
	windowStart    int64
	last           Report
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with the given options applied.
// The interval defaults to DefaultInterval and the logger to slog.Default().
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		interval: DefaultInterval,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Rate converts a frame count over a duration in milliseconds into frames per second.
//
// Parameters:
//   - frames: the number of frames rendered
//   - durationMs: the window length in milliseconds
//
// Returns:
//   - float64: frames per second, or 0 for a non-positive duration
func Rate(frames int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(frames) / float64(durationMs) * 1000
}

// Tick must be called once per rendered frame with the current game time.
// When the game time has advanced strictly more than the interval past the window start
// the window is closed: a Report is produced and logged, and the counter and window start reset.
//
// Parameters:
//   - gameTimeMs: milliseconds since the frame loop started
//
// Returns:
//   - Report: the closed window's summary (zero value when no window closed)
//   - bool: true if a window closed on this tick
func (p *Profiler) Tick(gameTimeMs int64) (Report, bool) {
	p.frameCount++
	duration := gameTimeMs - p.windowStart
	if duration <= p.interval {
		return Report{}, false
	}

	r := Report{
		Frames:     p.frameCount,
		DurationMs: duration,
		FPS:        Rate(p.frameCount, duration),
	}
	p.last = r
	p.log(r)

	p.frameCount = 0
	p.windowStart = gameTimeMs
	return r, true
}

// Last returns the most recently closed window's Report.
func (p *Profiler) Last() Report {
	return p.last
}

// Frames returns the number of frames counted in the current, still open window.
func (p *Profiler) Frames() int {
	return p.frameCount
}

// Interval returns the window length in milliseconds.
func (p *Profiler) Interval() int64 {
	return p.interval
}

// Reset discards the open window and starts a new one at the given game time.
//
// Parameters:
//   - gameTimeMs: the new window start in milliseconds
func (p *Profiler) Reset(gameTimeMs int64) {
	p.frameCount = 0
	p.windowStart = gameTimeMs
	p.last = Report{}
}

func (p *Profiler) log(r Report) {
	if !p.memStatsOn {
		p.logger.Info("frame rate", "fps", r.FPS, "frames", r.Frames, "duration_ms", r.DurationMs)
		return
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := float64(r.DurationMs) / 1000
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	p.logger.Info("frame rate",
		"fps", r.FPS,
		"frames", r.Frames,
		"duration_ms", r.DurationMs,
		slog.Group("mem",
			"heap_mb", allocMB,
			"alloc_rate_mb_s", allocRateMB,
			"gc", gcCount,
			"gc_last_us", lastPauseUs,
			"gc_max_us", maxPauseUs,
			"sys_mb", sysMB,
		),
	)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}
