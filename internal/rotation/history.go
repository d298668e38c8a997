package rotation

// pairKey identifies an unordered pair of participants. The smaller name
// under string ordering is always stored first so (a,b) and (b,a) collide.
type pairKey struct {
	a, b string
}

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// History tracks how many finalized rounds each pair of participants has
// shared a group in. Counts only ever grow; there is no way to decrement.
type History struct {
	counts map[pairKey]int
}

func NewHistory() *History {
	return &History{counts: make(map[pairKey]int)}
}

// Count returns the number of prior co-occurrences of a and b.
func (h *History) Count(a, b string) int {
	return h.counts[keyOf(a, b)]
}

// Degree sums p's co-occurrence counts against every other member of pool.
func (h *History) Degree(p string, pool []string) int {
	deg := 0
	for _, other := range pool {
		if other == p {
			continue
		}
		deg += h.counts[keyOf(p, other)]
	}
	return deg
}

// Record increments the count of every pair within group by one. Call it
// once per finalized group, never for discarded attempts.
func (h *History) Record(group Group) {
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			h.counts[keyOf(group[i], group[j])]++
		}
	}
}

// Len reports how many distinct pairs have been observed at least once.
func (h *History) Len() int {
	return len(h.counts)
}
