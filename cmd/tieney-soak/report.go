package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/tieney/ecs"
	"github.com/plus3/tieney/telemetry"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Seed     int64
	Paced    bool

	// Results
	TotalTime time.Duration
	TickTime  Stats
	Summary   telemetry.Summary
	Systems   []ecs.SystemStats
	Storage   *ecs.StorageStats

	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Tieney Soak Report

## Run
- **Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Paced at 60 Hz:** {{.Paced}}
- **Total Time:** {{.TotalTime}}
- **Frames:** {{.Summary.Frames}}

## Tick Time
- **Avg:** {{.TickTime.Avg}}
- **Min:** {{.TickTime.Min}}
- **Max:** {{.TickTime.Max}}

## Frame Interval (ms)
- **Mean:** {{printf "%.3f" .Summary.MeanIntervalMs}} (std {{printf "%.3f" .Summary.StdIntervalMs}})
- **P99:** {{printf "%.3f" .Summary.P99IntervalMs}}
- **Max:** {{printf "%.3f" .Summary.MaxIntervalMs}}

## World
- **Peak Entities:** {{.Summary.PeakEntities}}
- **Peak Missiles:** {{.Summary.PeakMissiles}}
- **Peak Smoke:** {{.Summary.PeakSmoke}}
- **Resets:** {{.Summary.Resets}}
- **Rejected Spawns:** {{.Summary.Rejected}}
- **Archetypes:** {{.Storage.ArchetypeCount}}

## Systems
| System | Runs | Avg | Max |
|---|---|---|---|
{{range .Systems}}| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MaxDuration}} |
{{end}}
## Memory Usage
- Heap Alloc:  {{mb .MemStatsStart.HeapAlloc}} MB (start) -> {{mb .MemStatsEnd.HeapAlloc}} MB (end)
- Total Alloc: {{mb .MemStatsStart.TotalAlloc}} MB (start) -> {{mb .MemStatsEnd.TotalAlloc}} MB (end)
- Num GC:      {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
- GC Pause:    {{ns .MemStatsEnd.PauseTotalNs}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
