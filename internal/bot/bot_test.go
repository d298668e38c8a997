package bot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"groupmixer/internal/db"
)

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   db.SessionMember
		want string
	}{
		{db.SessionMember{UserID: 1, Username: "ann_b", DisplayName: "Ann B"}, "Ann B"},
		{db.SessionMember{UserID: 2, Username: "bob"}, "@bob"},
		{db.SessionMember{UserID: 3}, "id:3"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, displayName(tc.in))
	}
}
