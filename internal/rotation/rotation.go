// Package rotation builds multi-round group schedules that keep repeat
// pairings to a minimum. One call to Schedule partitions the same set of
// people into groups several times over, using the accumulated pair history
// to steer later rounds away from combinations that already happened.
package rotation

import (
	"math"
	"math/rand"
	"sort"
	"time"
)

// Group is one round's worth of people assigned together.
type Group []string

// Round partitions the full participant set into groups.
type Round []Group

// Schedule is the ordered list of rounds produced by one run.
type Schedule []Round

// DefaultRestarts is the restart budget used when Config.Restarts is not set.
const DefaultRestarts = 200

// sampleLimit caps the candidate pool scanned per open slot; larger
// unassigned sets are randomly sampled down to this size.
const sampleLimit = 20

// Config controls one scheduling run.
type Config struct {
	Groups   int
	Rounds   int
	Restarts int    // <= 0 means DefaultRestarts
	Seed     *int64 // nil draws from system entropy
}

// Sizes splits nParticipants into nGroups sizes that differ by at most one,
// larger groups first.
func Sizes(nParticipants, nGroups int) ([]int, error) {
	if nGroups < 1 || nGroups > nParticipants {
		return nil, ErrInvalidGroupCount
	}
	base := nParticipants / nGroups
	rem := nParticipants % nGroups
	sizes := make([]int, nGroups)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes, nil
}

// Generate produces cfg.Rounds successive partitions of participants into
// cfg.Groups groups. The input slice is never mutated. With the same
// participants, config and a non-nil seed the result is reproducible.
func Generate(participants []string, cfg Config) (Schedule, error) {
	if cfg.Groups < 1 {
		return nil, ErrInvalidGroupCount
	}
	if len(participants) < cfg.Groups {
		return nil, ErrNotEnoughParticipants
	}
	restarts := cfg.Restarts
	if restarts <= 0 {
		restarts = DefaultRestarts
	}
	var src rand.Source
	if cfg.Seed != nil {
		src = rand.NewSource(*cfg.Seed)
	} else {
		src = rand.NewSource(time.Now().UnixNano())
	}
	rng := rand.New(src)

	working := append([]string(nil), participants...)
	hist := NewHistory()
	plan := make(Schedule, 0, cfg.Rounds)

	for r := 0; r < cfg.Rounds; r++ {
		round, _, err := BuildRound(working, cfg.Groups, hist, restarts, rng)
		if err != nil {
			return nil, err
		}
		plan = append(plan, round)
		for _, g := range round {
			hist.Record(g)
		}
		// reshuffle so later rounds do not keep seeding groups from the
		// same positions
		rng.Shuffle(len(working), func(i, j int) {
			working[i], working[j] = working[j], working[i]
		})
	}
	return plan, nil
}

// BuildRound constructs a single round with a greedy heuristic and multiple
// randomized restarts, returning the cheapest grouping found and its cost.
// Cost is the number of prior co-occurrences repeated inside the round's
// groups; an attempt reaching cost 0 ends the search early.
func BuildRound(participants []string, nGroups int, hist *History, restarts int, rng *rand.Rand) (Round, int, error) {
	sizes, err := Sizes(len(participants), nGroups)
	if err != nil {
		return nil, 0, err
	}
	if restarts < 1 {
		restarts = 1
	}
	var best Round
	bestCost := math.MaxInt

	for attempt := 0; attempt < restarts; attempt++ {
		unassigned := append([]string(nil), participants...)
		rng.Shuffle(len(unassigned), func(i, j int) {
			unassigned[i], unassigned[j] = unassigned[j], unassigned[i]
		})
		sortByDegree(unassigned, hist, rng)

		round := make(Round, 0, nGroups)
		for _, size := range sizes {
			seed := unassigned[0]
			unassigned = unassigned[1:]
			group := append(Group{}, seed)
			for len(group) < size {
				cand := pickCandidate(group, unassigned, hist, rng)
				group = append(group, cand)
				unassigned = remove(unassigned, cand)
			}
			round = append(round, group)
		}

		cost := roundCost(round, hist)
		if cost < bestCost {
			best, bestCost = round, cost
			if bestCost == 0 {
				break
			}
		}
	}
	return best, bestCost, nil
}

// sortByDegree orders the pool by descending entanglement with the rest of
// the pool. Equal degrees are shuffled by a fresh random draw per entry, not
// left in permutation order.
func sortByDegree(pool []string, hist *History, rng *rand.Rand) {
	type ranked struct {
		deg int
		tie float64
	}
	keys := make(map[string]ranked, len(pool))
	for _, p := range pool {
		keys[p] = ranked{deg: hist.Degree(p, pool), tie: rng.Float64()}
	}
	sort.Slice(pool, func(i, j int) bool {
		ka, kb := keys[pool[i]], keys[pool[j]]
		if ka.deg != kb.deg {
			return ka.deg > kb.deg
		}
		return ka.tie < kb.tie
	})
}

// pickCandidate selects the unassigned participant whose addition to group
// repeats the fewest prior pairings. Exact ties are broken by a coin flip so
// equally good candidates are chosen uniformly over time. Pools larger than
// sampleLimit are sampled down first to bound the scan on big rosters.
func pickCandidate(group Group, unassigned []string, hist *History, rng *rand.Rand) string {
	pool := unassigned
	if len(unassigned) > sampleLimit {
		pool = make([]string, 0, sampleLimit)
		for _, idx := range rng.Perm(len(unassigned))[:sampleLimit] {
			pool = append(pool, unassigned[idx])
		}
	}
	var best string
	found := false
	bestIncr := math.MaxInt
	for _, cand := range pool {
		incr := 0
		for _, member := range group {
			incr += hist.Count(cand, member)
		}
		if incr < bestIncr || (incr == bestIncr && rng.Float64() < 0.5) {
			best, bestIncr = cand, incr
			found = true
		}
	}
	if !found {
		return unassigned[0]
	}
	return best
}

// roundCost sums prior co-occurrence counts over every intra-group pair.
func roundCost(round Round, hist *History) int {
	cost := 0
	for _, g := range round {
		for i := 0; i < len(g); i++ {
			for j := i + 1; j < len(g); j++ {
				cost += hist.Count(g[i], g[j])
			}
		}
	}
	return cost
}

func remove(pool []string, name string) []string {
	for i, p := range pool {
		if p == name {
			return append(pool[:i], pool[i+1:]...)
		}
	}
	return pool
}
