package rotation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func namedParticipants(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("p%02d", i)
	}
	return out
}

func TestSizes(t *testing.T) {
	cases := []struct {
		n, k int
		want []int
	}{
		{12, 4, []int{3, 3, 3, 3}},
		{13, 4, []int{4, 3, 3, 3}},
		{14, 4, []int{4, 4, 3, 3}},
		{5, 5, []int{1, 1, 1, 1, 1}},
		{7, 1, []int{7}},
		{10, 3, []int{4, 3, 3}},
	}
	for _, tc := range cases {
		got, err := Sizes(tc.n, tc.k)
		require.NoError(t, err, "Sizes(%d, %d)", tc.n, tc.k)
		require.Equal(t, tc.want, got, "Sizes(%d, %d)", tc.n, tc.k)
	}
}

func TestSizesProperties(t *testing.T) {
	for n := 1; n <= 30; n++ {
		for k := 1; k <= n; k++ {
			sizes, err := Sizes(n, k)
			require.NoError(t, err)
			require.Len(t, sizes, k)
			sum, minSz, maxSz := 0, sizes[0], sizes[0]
			for _, s := range sizes {
				require.Positive(t, s)
				sum += s
				if s < minSz {
					minSz = s
				}
				if s > maxSz {
					maxSz = s
				}
			}
			require.Equal(t, n, sum)
			require.LessOrEqual(t, maxSz-minSz, 1)
		}
	}
}

func TestSizesInvalid(t *testing.T) {
	_, err := Sizes(5, 0)
	require.ErrorIs(t, err, ErrInvalidGroupCount)
	_, err = Sizes(5, -1)
	require.ErrorIs(t, err, ErrInvalidGroupCount)
	_, err = Sizes(5, 6)
	require.ErrorIs(t, err, ErrInvalidGroupCount)
}

// A fresh history means no pair has met before, so the very first round is
// always free and every restart is as good as any other.
func TestBuildRoundFreshHistoryCostZero(t *testing.T) {
	people := namedParticipants(12)
	rng := rand.New(rand.NewSource(42))
	round, cost, err := BuildRound(people, 4, NewHistory(), 50, rng)
	require.NoError(t, err)
	require.Zero(t, cost)
	require.Len(t, round, 4)
	for _, g := range round {
		require.Len(t, g, 3)
	}
	requireCompleteRound(t, people, round)
}

func TestBuildRoundCompleteness(t *testing.T) {
	hist := NewHistory()
	people := namedParticipants(23)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5; i++ {
		round, cost, err := BuildRound(people, 5, hist, 30, rng)
		require.NoError(t, err)
		require.GreaterOrEqual(t, cost, 0)
		requireCompleteRound(t, people, round)

		sizes, err := Sizes(len(people), 5)
		require.NoError(t, err)
		got := make([]int, 0, len(round))
		for _, g := range round {
			got = append(got, len(g))
		}
		require.ElementsMatch(t, sizes, got)

		for _, g := range round {
			hist.Record(g)
		}
	}
}

// Pools beyond the sample cap take the random-sampling path; the round must
// still be a complete partition.
func TestBuildRoundLargeRoster(t *testing.T) {
	people := namedParticipants(60)
	rng := rand.New(rand.NewSource(3))
	round, cost, err := BuildRound(people, 6, NewHistory(), 10, rng)
	require.NoError(t, err)
	require.Zero(t, cost)
	requireCompleteRound(t, people, round)
	for _, g := range round {
		require.Len(t, g, 10)
	}
}

func TestScheduleDeterministic(t *testing.T) {
	people := namedParticipants(15)
	seed := int64(1234)
	cfg := Config{Groups: 4, Rounds: 4, Restarts: 60, Seed: &seed}
	first, err := Generate(people, cfg)
	require.NoError(t, err)
	second, err := Generate(people, cfg)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestScheduleDoesNotMutateInput(t *testing.T) {
	people := namedParticipants(10)
	orig := append([]string(nil), people...)
	seed := int64(9)
	_, err := Generate(people, Config{Groups: 3, Rounds: 3, Restarts: 20, Seed: &seed})
	require.NoError(t, err)
	require.Equal(t, orig, people)
}

func TestScheduleEveryRoundComplete(t *testing.T) {
	people := namedParticipants(13)
	seed := int64(5)
	plan, err := Generate(people, Config{Groups: 4, Rounds: 5, Restarts: 40, Seed: &seed})
	require.NoError(t, err)
	require.Len(t, plan, 5)
	for _, round := range plan {
		requireCompleteRound(t, people, round)
	}
}

func TestScheduleErrors(t *testing.T) {
	_, err := Generate(namedParticipants(5), Config{Groups: 6, Rounds: 1})
	require.ErrorIs(t, err, ErrNotEnoughParticipants)

	_, err = Generate(namedParticipants(5), Config{Groups: 0, Rounds: 1})
	require.ErrorIs(t, err, ErrInvalidGroupCount)
}

func TestScheduleDefaultRestarts(t *testing.T) {
	seed := int64(1)
	plan, err := Generate(namedParticipants(8), Config{Groups: 2, Rounds: 1, Seed: &seed})
	require.NoError(t, err)
	require.Len(t, plan, 1)
}

// requireCompleteRound asserts the round is an exact partition of people:
// every participant appears in exactly one group, nobody is duplicated.
func requireCompleteRound(t *testing.T, people []string, round Round) {
	t.Helper()
	seen := make(map[string]int)
	total := 0
	for _, g := range round {
		for _, name := range g {
			seen[name]++
			total++
		}
	}
	require.Equal(t, len(people), total)
	for _, name := range people {
		require.Equal(t, 1, seen[name], "participant %s", name)
	}
}
