package dataset

import (
	"math/rand"
	"sort"

	"skill-match/internal/domain/job"
)

// Sample returns n records chosen by a seeded shuffle, kept in dataset
// order and renumbered. n <= 0 or n >= len(records) returns records as is.
func Sample(records []job.Record, n int, seed int64) []job.Record {
	if n <= 0 || n >= len(records) {
		return records
	}

	rng := rand.New(rand.NewSource(seed))
	idx := rng.Perm(len(records))[:n]
	sort.Ints(idx)

	out := make([]job.Record, 0, n)
	for _, i := range idx {
		r := records[i]
		r.ID = len(out)
		out = append(out, r)
	}
	return out
}
