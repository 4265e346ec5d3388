package matching

import (
	"math"

	"skill-match/internal/domain/skill"
)

// Result is the overlap between a user's skills and one job's required skills.
type Result struct {
	Matched   skill.Set
	Unmatched skill.Set
	Extra     skill.Set
	// Percent is |Matched| / |job skills| × 100, rounded to two decimals.
	Percent float64
}

// Match compares user skills against job skills. The percentage is always
// taken over the job's skill count; a job without skills scores 0.
func Match(user, job skill.Set) Result {
	matched := user.Intersect(job)
	res := Result{
		Matched:   matched,
		Unmatched: user.Difference(job),
		Extra:     job.Difference(user),
	}
	if job.Len() == 0 || matched.Len() == 0 {
		return res
	}
	res.Percent = roundTo(float64(matched.Len())/float64(job.Len())*100, 2)
	return res
}

// Ratio returns Percent scaled to [0,1].
func (r Result) Ratio() float64 {
	return clampFloat(r.Percent/100, 0, 1)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return clampFloat(math.Round(v*p)/p, 0, 100)
}

func clampFloat(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
