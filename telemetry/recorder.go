package telemetry

import (
	"log/slog"
	"time"

	"github.com/plus3/tieney/ecs"
	"github.com/plus3/tieney/game"
)

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame            uint64  `csv:"frame"`
	Entities         int     `csv:"entities"`
	Players          int     `csv:"players"`
	Asteroids        int     `csv:"asteroids"`
	Missiles         int     `csv:"missiles"`
	Smoke            int     `csv:"smoke"`
	Resets           uint64  `csv:"resets"`
	MissilesRejected uint64  `csv:"missiles_rejected"`
	SmokeRejected    uint64  `csv:"smoke_rejected"`
	IntervalMs       float64 `csv:"interval_ms"`
}

// Recorder is a system that samples the world once per frame. The sample is
// taken after the frame's deletions have been applied. With a writer, rows
// are dropped from memory once flushed; the running Summary covers every
// frame either way.
type Recorder struct {
	Stats ecs.Singleton[game.SpawnStats]

	out        *Writer
	flushEvery int
	logger     *slog.Logger

	records []FrameRecord
	summary *accumulator
	last    time.Time
}

// NewRecorder returns a recorder that writes to out every flushEvery frames.
// out may be nil to keep records in memory only.
func NewRecorder(out *Writer, flushEvery int, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{out: out, flushEvery: flushEvery, logger: logger, summary: newAccumulator()}
}

func (r *Recorder) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	tick := frame.Tick
	frame.Commands.Defer(func() {
		r.sample(storage, tick)
	})
}

func (r *Recorder) sample(storage *ecs.Storage, tick uint64) {
	now := time.Now()
	var interval float64
	if !r.last.IsZero() {
		interval = float64(now.Sub(r.last)) / float64(time.Millisecond)
	}
	r.last = now

	stats := r.Stats.Get()
	rec := FrameRecord{
		Frame:            tick,
		Entities:         storage.EntityCount(),
		Players:          ecs.CountComponent[game.Player](storage),
		Asteroids:        ecs.CountComponent[game.Asteroid](storage),
		Missiles:         ecs.CountComponent[game.Missile](storage),
		Smoke:            ecs.CountComponent[game.Smoke](storage),
		Resets:           stats.Resets,
		MissilesRejected: stats.MissilesRejected,
		SmokeRejected:    stats.SmokeRejected,
		IntervalMs:       interval,
	}
	r.records = append(r.records, rec)
	r.summary.add(rec)

	if r.flushEvery > 0 && len(r.records) >= r.flushEvery {
		if err := r.Flush(); err != nil {
			r.logger.Error("telemetry flush failed", "error", err)
		}
	}
}

// Flush writes every retained record. Without a writer the records stay in
// memory.
func (r *Recorder) Flush() error {
	if r.out == nil {
		return nil
	}
	pending := r.records
	r.records = r.records[:0]
	return r.out.WriteFrames(pending)
}

// Records returns the samples not yet flushed to a writer.
func (r *Recorder) Records() []FrameRecord {
	return r.records
}

// Summary aggregates every frame sampled so far, flushed or not.
func (r *Recorder) Summary() Summary {
	return r.summary.summary()
}
