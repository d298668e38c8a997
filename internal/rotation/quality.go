package rotation

import "sort"

// RoundStat counts first-seen pairs against all pairs for one scope.
type RoundStat struct {
	New   int
	Total int
}

// Pct is 100 * New / Total, defined as 100 when the scope holds no pairs.
func (s RoundStat) Pct() float64 {
	if s.Total == 0 {
		return 100.0
	}
	return 100.0 * float64(s.New) / float64(s.Total)
}

// Report measures how well a finished schedule avoided repeat pairings.
// 100% means every pair across every round was unique.
type Report struct {
	Overall  RoundStat
	PerRound []RoundStat
}

// OverallPct is the schedule-wide share of never-before-seen pairs.
func (r Report) OverallPct() float64 { return r.Overall.Pct() }

// PerRoundPct returns each round's share of never-before-seen pairs.
func (r Report) PerRoundPct() []float64 {
	pcts := make([]float64, len(r.PerRound))
	for i, s := range r.PerRound {
		pcts[i] = s.Pct()
	}
	return pcts
}

// Quality walks the schedule in round order and classifies every intra-group
// pair as new or repeated. A pair counted in any earlier round is a repeat,
// no matter how far back it occurred.
func Quality(s Schedule) Report {
	seen := make(map[pairKey]bool)
	rep := Report{PerRound: make([]RoundStat, 0, len(s))}
	for _, round := range s {
		var rs RoundStat
		for _, g := range round {
			for i := 0; i < len(g); i++ {
				for j := i + 1; j < len(g); j++ {
					k := keyOf(g[i], g[j])
					rs.Total++
					if !seen[k] {
						seen[k] = true
						rs.New++
					}
				}
			}
		}
		rep.Overall.New += rs.New
		rep.Overall.Total += rs.Total
		rep.PerRound = append(rep.PerRound, rs)
	}
	return rep
}

// RepeatedPair is one pair of participants together with how often and in
// which rounds (1-based) they shared a group.
type RepeatedPair struct {
	A, B   string
	Count  int
	Rounds []int
}

// RepeatedPairs lists every pair occurring at least minRepeats times across
// the whole schedule, most frequent first; equally frequent pairs are
// ordered by name.
func RepeatedPairs(s Schedule, minRepeats int) []RepeatedPair {
	counts := make(map[pairKey]int)
	rounds := make(map[pairKey][]int)
	for ri, round := range s {
		for _, g := range round {
			for i := 0; i < len(g); i++ {
				for j := i + 1; j < len(g); j++ {
					k := keyOf(g[i], g[j])
					counts[k]++
					rounds[k] = append(rounds[k], ri+1)
				}
			}
		}
	}
	var repeated []RepeatedPair
	for k, c := range counts {
		if c >= minRepeats {
			repeated = append(repeated, RepeatedPair{A: k.a, B: k.b, Count: c, Rounds: rounds[k]})
		}
	}
	sort.Slice(repeated, func(i, j int) bool {
		if repeated[i].Count != repeated[j].Count {
			return repeated[i].Count > repeated[j].Count
		}
		if repeated[i].A != repeated[j].A {
			return repeated[i].A < repeated[j].A
		}
		return repeated[i].B < repeated[j].B
	})
	return repeated
}

// PairMatrix returns the sorted participant names appearing in the schedule
// and a symmetric matrix of how many times each pair shared a group.
func PairMatrix(s Schedule) ([]string, [][]int) {
	set := make(map[string]bool)
	for _, round := range s {
		for _, g := range round {
			for _, name := range g {
				set[name] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	m := make([][]int, len(names))
	for i := range m {
		m[i] = make([]int, len(names))
	}
	for _, round := range s {
		for _, g := range round {
			for i := 0; i < len(g); i++ {
				for j := i + 1; j < len(g); j++ {
					a, b := index[g[i]], index[g[j]]
					m[a][b]++
					m[b][a]++
				}
			}
		}
	}
	return names, m
}
