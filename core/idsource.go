package core

import "math/rand/v2"

// IDSource produces unique account ids. Generation is a collaborator concern:
// the store only requires that the returned id is positive and not already
// taken according to the supplied predicate.
type IDSource interface {
	NextID(taken func(int64) bool) int64
}

// RandIDSource draws ids uniformly from [1, max], retrying on collisions.
// This mirrors the historical behaviour of the console program.
type RandIDSource struct {
	Max int64
}

// NextID implements the IDSource interface.
func (s RandIDSource) NextID(taken func(int64) bool) int64 {
	max := s.Max
	if max <= 0 {
		max = 1_000_000
	}
	for {
		id := rand.Int64N(max) + 1
		if !taken(id) {
			return id
		}
	}
}

// SequentialIDSource hands out 1, 2, 3, ... skipping taken ids. Used in tests
// where determinism matters.
type SequentialIDSource struct {
	next int64
}

// NextID implements the IDSource interface.
func (s *SequentialIDSource) NextID(taken func(int64) bool) int64 {
	for {
		s.next++
		if !taken(s.next) {
			return s.next
		}
	}
}
