// Package render prints schedules and their quality metrics as plain-text
// tables for terminal and chat output.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"groupmixer/internal/rotation"
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

// Schedule writes one row per group, round by round.
func Schedule(w io.Writer, s rotation.Schedule) {
	table := newTable(w, []string{"Round", "Group", "Members"})
	for ri, round := range s {
		for gi, g := range round {
			table.Append([]string{
				strconv.Itoa(ri + 1),
				strconv.Itoa(gi + 1),
				strings.Join(g, ", "),
			})
		}
	}
	table.Render()
}

// Quality writes the per-round and overall new-pair percentages.
func Quality(w io.Writer, rep rotation.Report) {
	table := newTable(w, []string{"Round", "New Pairs", "Total Pairs", "New %"})
	for i, rs := range rep.PerRound {
		table.Append([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(rs.New),
			strconv.Itoa(rs.Total),
			fmt.Sprintf("%.2f", rs.Pct()),
		})
	}
	table.Append([]string{
		"overall",
		strconv.Itoa(rep.Overall.New),
		strconv.Itoa(rep.Overall.Total),
		fmt.Sprintf("%.2f", rep.OverallPct()),
	})
	table.Render()
}

// RepeatedPairs writes the most frequently repeated pairs, at most limit
// rows when limit is positive.
func RepeatedPairs(w io.Writer, pairs []rotation.RepeatedPair, limit int) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "no repeated pairs")
		return
	}
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	table := newTable(w, []string{"Pair", "Times", "Rounds"})
	for _, p := range pairs {
		rounds := lo.Map(p.Rounds, func(r int, _ int) string { return strconv.Itoa(r) })
		table.Append([]string{
			p.A + " / " + p.B,
			strconv.Itoa(p.Count),
			strings.Join(rounds, ", "),
		})
	}
	table.Render()
}

// Matrix writes the pair co-location matrix: how many times each pair of
// participants shared a group across the schedule.
func Matrix(w io.Writer, s rotation.Schedule) {
	names, m := rotation.PairMatrix(s)
	if len(names) == 0 {
		fmt.Fprintln(w, "empty schedule")
		return
	}
	table := newTable(w, append([]string{""}, names...))
	for i, name := range names {
		row := append([]string{name}, lo.Map(m[i], func(c int, _ int) string { return strconv.Itoa(c) })...)
		table.Append(row)
	}
	table.Render()
}
