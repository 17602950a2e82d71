package cmd

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/baxromumarov/disksearch"
)

func renderSummary(stats disksearch.Stats) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Metric", "Value"})

	count := func(n int64) string { return strconv.FormatInt(n, 10) }
	tw.AppendRows([]table.Row{
		{"Directories queued", count(stats.DirsQueued)},
		{"Directories searched", count(stats.DirsSearched)},
		{"Files matched", count(stats.Matched)},
		{"Files copied", count(stats.Copied)},
		{"Bytes copied", humanize.Bytes(uint64(stats.Bytes))},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Copy failures", count(stats.Failed)},
		{"Skipped after abort", count(stats.Skipped)},
		{"Stranded", count(stats.Stranded)},
		{"Listing errors", count(stats.ListErrors)},
	})
	tw.AppendSeparator()
	tw.AppendRows([]table.Row{
		{"Directory queue peak", strconv.Itoa(stats.DirQueueHighWater)},
		{"Results queue peak", strconv.Itoa(stats.ResultsQueueHighWater)},
		{"Workers", strconv.Itoa(stats.Workers)},
		{"Duration", stats.Duration.Round(time.Millisecond).String()},
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
