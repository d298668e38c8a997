package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"groupmixer/internal/rotation"
)

var testSchedule = rotation.Schedule{
	{rotation.Group{"ann", "bob"}, rotation.Group{"cid", "dee"}},
	{rotation.Group{"ann", "bob"}, rotation.Group{"cid", "dee"}},
}

func TestSchedule(t *testing.T) {
	var buf bytes.Buffer
	Schedule(&buf, testSchedule)
	out := buf.String()
	require.Contains(t, out, "ann, bob")
	require.Contains(t, out, "cid, dee")
	// two rounds of two groups
	require.Equal(t, 4, strings.Count(out, "ann")+strings.Count(out, "cid"))
}

func TestQuality(t *testing.T) {
	var buf bytes.Buffer
	Quality(&buf, rotation.Quality(testSchedule))
	out := buf.String()
	require.Contains(t, out, "100.00")
	require.Contains(t, out, "0.00")
	require.Contains(t, out, "50.00") // overall: 2 new of 4
}

func TestRepeatedPairs(t *testing.T) {
	var buf bytes.Buffer
	RepeatedPairs(&buf, rotation.RepeatedPairs(testSchedule, 2), 10)
	out := buf.String()
	require.Contains(t, out, "ann / bob")
	require.Contains(t, out, "1, 2")
}

func TestRepeatedPairsEmpty(t *testing.T) {
	var buf bytes.Buffer
	RepeatedPairs(&buf, nil, 10)
	require.Contains(t, buf.String(), "no repeated pairs")
}

func TestRepeatedPairsLimit(t *testing.T) {
	var buf bytes.Buffer
	pairs := rotation.RepeatedPairs(testSchedule, 1)
	RepeatedPairs(&buf, pairs, 1)
	require.Contains(t, buf.String(), "ann / bob")
	require.NotContains(t, buf.String(), "cid / dee")
}

func TestMatrix(t *testing.T) {
	var buf bytes.Buffer
	Matrix(&buf, testSchedule)
	out := buf.String()
	require.Contains(t, out, "ann")
	require.Contains(t, out, "2")
}
