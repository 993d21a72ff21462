package ecs

import "iter"

// iComponentStorage is one archetype column with the component type erased.
// Indices are archetype rows. Deleted rows leave holes that Append reuses;
// Compact closes them and returns the old-to-new index mapping.
type iComponentStorage interface {
	Append(item any) int
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Compact() map[int]int
	// Iter yields occupied indices in ascending order.
	Iter() iter.Seq[int]
}
