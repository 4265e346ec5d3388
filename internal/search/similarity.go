package search

import "math"

// Cosine returns the cosine similarity of a and b. Term vectors are
// non-negative, so the result lies in [0,1]; a zero vector scores 0.
func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}

	dot := 0.0
	for col, x := range small {
		if y, ok := large[col]; ok {
			dot += x * y
		}
	}
	if dot == 0 {
		return 0
	}

	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	s := dot / (na * nb)
	if s > 1 {
		return 1
	}
	if s < 0 {
		return 0
	}
	return s
}

func norm(v Vector) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Similarities scores query against every job vector, in job order.
func Similarities(query Vector, jobs []Vector) []float64 {
	out := make([]float64, len(jobs))
	if len(query) == 0 {
		return out
	}
	for i, jv := range jobs {
		out[i] = Cosine(query, jv)
	}
	return out
}

// Neighbor is a job index with its similarity to a reference job.
type Neighbor struct {
	Index      int
	Similarity float64
}

// SimilarTo returns up to k jobs most similar to jobs[index], excluding
// index itself and jobs with zero similarity. Ties keep dataset order.
func SimilarTo(index int, jobs []Vector, k int) []Neighbor {
	if index < 0 || index >= len(jobs) || k == 0 {
		return []Neighbor{}
	}
	ref := jobs[index]
	out := make([]Neighbor, 0, len(jobs))
	for i, jv := range jobs {
		if i == index {
			continue
		}
		s := Cosine(ref, jv)
		if s <= 0 {
			continue
		}
		out = append(out, Neighbor{Index: i, Similarity: s})
	}
	sortStableDesc(out, func(n Neighbor) float64 { return n.Similarity })
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
