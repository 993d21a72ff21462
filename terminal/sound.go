package terminal

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/plus3/tieney/game"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a sound effect triggered by a change in the world.
type Cue int

const (
	CueFire Cue = iota
	CueThrust
	CueReset
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueThrust:
		return "thrust"
	case CueReset:
		return "reset"
	}
	return fmt.Sprintf("Cue(%d)", int(c))
}

// Cues compares two lifecycle snapshots and lists the sounds to play.
func Cues(prev, cur game.SpawnStats) []Cue {
	var cues []Cue
	if cur.Resets > prev.Resets {
		cues = append(cues, CueReset)
	}
	if cur.MissilesSpawned > prev.MissilesSpawned {
		cues = append(cues, CueFire)
	}
	if cur.SmokeSpawned > prev.SmokeSpawned {
		cues = append(cues, CueThrust)
	}
	return cues
}

// CuePlayer plays cues. Sound is the speaker-backed implementation.
type CuePlayer interface {
	Play(cue Cue)
}

type silent struct{}

func (silent) Play(Cue) {}

// Sound mixes cue streamers into the system speaker.
type Sound struct {
	mixer *beep.Mixer
	// lastThrust rate-limits thrust cues.
	lastThrust time.Time
}

// NewSound initialises the speaker. The caller must Close it.
func NewSound() (*Sound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initialising speaker: %w", err)
	}
	s := &Sound{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

func (s *Sound) Play(cue Cue) {
	var streamer beep.Streamer
	switch cue {
	case CueFire:
		sine, err := generators.SineTone(sampleRate, 880)
		if err != nil {
			return
		}
		streamer = beep.Take(sampleRate.N(50*time.Millisecond), sine)
	case CueThrust:
		if time.Since(s.lastThrust) < 120*time.Millisecond {
			return
		}
		s.lastThrust = time.Now()
		streamer = beep.Take(sampleRate.N(80*time.Millisecond), &rumble{sr: sampleRate, freq: 70})
	case CueReset:
		streamer = beep.Take(sampleRate.N(300*time.Millisecond), &rumble{sr: sampleRate, freq: 110})
	default:
		return
	}

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

func (s *Sound) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}

// rumble is a decaying low tone with two harmonics.
type rumble struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func (g *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 10)

		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.075 * math.Sin(2*math.Pi*g.freq*3*t)
		sample *= envelope * 0.5

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *rumble) Err() error {
	return nil
}
