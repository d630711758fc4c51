package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// Random draws generated sample rows. Two generators created with the
// same non-zero seed produce the same sequence.
type Random struct {
	src  *rand.Rand
	seed uint64
}

// NewRandom creates a generator; seed 0 draws a seed from crypto/rand
func NewRandom(seed int64) *Random {
	s := uint64(seed)
	if seed == 0 {
		s = freshSeed()
	}
	return &Random{
		src:  rand.New(rand.NewPCG(s, s^0x9E3779B97F4A7C15)),
		seed: s,
	}
}

func freshSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Seed returns the seed in use, so a generated data set can be repeated
func (r *Random) Seed() uint64 {
	return r.seed
}

// IntN returns a value in [0, n), or 0 when n is not positive
func (r *Random) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.src.IntN(n)
}

// IntRange returns a value in [lo, hi]
func (r *Random) IntRange(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + r.src.IntN(hi-lo+1)
}

// Bool is a fair coin
func (r *Random) Bool() bool {
	return r.src.IntN(2) == 1
}

// PickString returns one element of options, or "" when there are none
func (r *Random) PickString(options []string) string {
	return Pick(r, options)
}

// Pick returns one element of options, or the zero value when there are none
func Pick[T any](r *Random, options []T) T {
	var zero T
	if len(options) == 0 {
		return zero
	}
	return options[r.src.IntN(len(options))]
}

// WeightedPick returns an index with probability proportional to its
// weight. It returns -1 for no weights and falls back to a uniform pick
// when no weight is positive.
func (r *Random) WeightedPick(weights []int) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return r.src.IntN(len(weights))
	}

	target := r.src.IntN(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if target < w {
			return i
		}
		target -= w
	}
	return len(weights) - 1
}

// Day returns a calendar day in [start, end] at midnight UTC. A reversed
// range yields start.
func (r *Random) Day(start, end time.Time) time.Time {
	from, to := midnight(start), midnight(end)
	if !from.Before(to) {
		return from
	}
	days := int(to.Sub(from).Hours() / 24)
	return from.AddDate(0, 0, r.IntRange(0, days))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
