package main

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"datalake/internal/queue"
)

const (
	entryStatePending = "pending"
	entryStateBroken  = "broken"
)

var displayCaser = cases.Title(language.Und)

func entryState(e queue.Entry) string {
	if e.Err != nil {
		return entryStateBroken
	}
	return entryStatePending
}

// buildQueueWhatRows counts intact entries per `what`, one row each.
func buildQueueWhatRows(entries []queue.Entry) [][]string {
	counts := map[string]int{}
	for _, e := range entries {
		if e.Err != nil {
			continue
		}
		counts[e.Metadata.What]++
	}
	whats := make([]string, 0, len(counts))
	for what := range counts {
		whats = append(whats, what)
	}
	sort.Strings(whats)

	rows := make([][]string, 0, len(whats))
	for _, what := range whats {
		rows = append(rows, []string{what, fmt.Sprintf("%d", counts[what])})
	}
	return rows
}

func buildQueueListRows(entries []queue.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{e.ID, "", "", "", displayCaser.String(entryState(e)), ""}
		if e.Err != nil {
			row[5] = e.Err.Error()
			rows = append(rows, row)
			continue
		}
		row[1] = e.Metadata.What
		row[2] = e.Metadata.Where
		row[3] = formatEventStart(e.Metadata.Start)
		row[5] = e.Target
		rows = append(rows, row)
	}
	return rows
}

func formatEventStart(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
