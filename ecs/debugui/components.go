package debugui

import (
	"github.com/plus3/tieney/ecs"
)

// Panel state. Each window keeps its own; none of it lives in the
// inspected storage.

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type PerformanceStatsComponent struct {
	frameMs  sampleRing
	entities sampleRing
}

type SchedulerStatsComponent struct {
	sortColumn    int
	sortAscending bool
}

// sampleRing keeps the most recent samples for plotting. Only samples
// pushed so far count towards mean and peak.
type sampleRing struct {
	samples []float32
	next    int
	count   int
}

func newSampleRing(n int) sampleRing {
	return sampleRing{samples: make([]float32, n)}
}

func (r *sampleRing) push(v float32) {
	r.samples[r.next] = v
	r.next = (r.next + 1) % len(r.samples)
	r.count = min(r.count+1, len(r.samples))
}

func (r *sampleRing) mean() float32 {
	if r.count == 0 {
		return 0
	}
	var sum float32
	for _, v := range r.samples[:r.count] {
		sum += v
	}
	return sum / float32(r.count)
}

func (r *sampleRing) peak() float32 {
	var top float32
	for _, v := range r.samples[:r.count] {
		top = max(top, v)
	}
	return top
}
