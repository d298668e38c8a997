package logic

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"groupmixer/internal/rotation"
)

func TestGroupCount(t *testing.T) {
	cases := map[int]int{
		1: 1, 2: 1, 3: 1,
		4: 2, 5: 2, 6: 2,
		7: 3, 9: 3, 10: 4,
	}
	for n, want := range cases {
		require.Equal(t, want, GroupCount(n), "GroupCount(%d)", n)
	}
}

// Nobody may be grouped alone once there are at least two people.
func TestGroupCountNoSingletons(t *testing.T) {
	for n := 2; n <= 40; n++ {
		sizes, err := rotation.Sizes(n, GroupCount(n))
		require.NoError(t, err)
		for _, s := range sizes {
			require.GreaterOrEqual(t, s, 2, "n=%d sizes=%v", n, sizes)
			require.LessOrEqual(t, s, 4, "n=%d sizes=%v", n, sizes)
		}
	}
}

func TestDailyGroupsAvoidsPastPair(t *testing.T) {
	names := []string{"ann", "bob", "cid", "dee"}
	past := []rotation.Group{{"ann", "bob"}, {"cid", "dee"}}
	rng := rand.New(rand.NewSource(1))

	groups, cost, err := DailyGroups(names, past, 50, rng)
	require.NoError(t, err)
	require.Zero(t, cost)
	require.Len(t, groups, 2)
	for _, g := range groups {
		require.Len(t, g, 2)
		// yesterday's pairs must not reappear, in either order
		members := map[string]bool{g[0]: true, g[1]: true}
		require.False(t, members["ann"] && members["bob"], "groups=%v", groups)
		require.False(t, members["cid"] && members["dee"], "groups=%v", groups)
	}
}

func TestDailyGroupsSinglePerson(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	groups, cost, err := DailyGroups([]string{"ann"}, nil, 10, rng)
	require.NoError(t, err)
	require.Zero(t, cost)
	require.Equal(t, []rotation.Group{{"ann"}}, groups)
}
