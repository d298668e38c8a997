// Package logic holds the bot-side grouping policy: how many groups a daily
// session gets and how the published grouping is chosen.
package logic

import (
	"math/rand"

	"groupmixer/internal/rotation"
)

// GroupCount picks the number of groups for n people. Threes are preferred,
// leftovers become pairs, nobody ends up alone (except a session of one).
func GroupCount(n int) int {
	if n <= 3 {
		return 1
	}
	return (n + 2) / 3
}

// DailyGroups builds today's grouping for a session, steering away from
// pairings already published in the chat. past holds every previously
// published group; the returned cost counts the repeats today's grouping
// could not avoid.
func DailyGroups(names []string, past []rotation.Group, restarts int, rng *rand.Rand) ([]rotation.Group, int, error) {
	hist := rotation.NewHistory()
	for _, g := range past {
		hist.Record(g)
	}
	round, cost, err := rotation.BuildRound(names, GroupCount(len(names)), hist, restarts, rng)
	if err != nil {
		return nil, 0, err
	}
	return []rotation.Group(round), cost, nil
}
