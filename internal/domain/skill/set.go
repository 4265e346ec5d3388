package skill

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// missingMarker is how pandas-exported CSVs spell an empty cell.
const missingMarker = "nan"

// Set is a set of normalized skill tokens. The zero value is an empty set.
type Set map[string]struct{}

// Normalize turns a comma-separated skill string into a Set.
// Empty, blank and NaN input yields an empty Set.
func Normalize(raw string) Set {
	out := Set{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, part := range strings.Split(raw, ",") {
		out.add(part)
	}
	return out
}

// FromList normalizes every element of list into a Set. Elements containing
// commas are split the same way Normalize splits a raw string.
func FromList(list []string) Set {
	out := Set{}
	for _, it := range list {
		for _, part := range strings.Split(it, ",") {
			out.add(part)
		}
	}
	return out
}

// Token normalizes a single skill token. It returns "" when the token is
// empty after normalization.
func Token(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	if s == missingMarker {
		return ""
	}
	return s
}

func (s Set) add(raw string) {
	t := Token(raw)
	if t == "" {
		return
	}
	s[t] = struct{}{}
}

func (s Set) Has(token string) bool {
	_, ok := s[Token(token)]
	return ok
}

func (s Set) Len() int {
	return len(s)
}

func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// Intersect returns s ∩ other.
func (s Set) Intersect(other Set) Set {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(Set, len(small))
	for k := range small {
		if _, ok := large[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Difference returns s − other.
func (s Set) Difference(other Set) Set {
	out := make(Set, len(s))
	for k := range s {
		if _, ok := other[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// String joins the sorted members with ", ", the same shape Normalize accepts.
func (s Set) String() string {
	return strings.Join(s.Sorted(), ", ")
}
