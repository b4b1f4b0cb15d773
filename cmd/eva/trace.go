package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/thomasrohde/eva/pkg/diagnostics"
	"github.com/thomasrohde/eva/pkg/evaluator"
)

// TraceSummary aggregates a JSON-lines trace file.
type TraceSummary struct {
	RunID         string         `json:"runId"`
	TotalEvents   int            `json:"totalEvents"`
	Calls         int            `json:"calls"`
	CallsByName   map[string]int `json:"callsByName"`
	Imports       int            `json:"imports"`
	ImportsByName map[string]int `json:"importsByName"`
	Classes       []string       `json:"classes"`
	Modules       []string       `json:"modules"`
	Unfinished    int            `json:"unfinishedCalls"`
	StartTime     string         `json:"startTime,omitempty"`
	EndTime       string         `json:"endTime,omitempty"`
	DurationMs    float64        `json:"durationMs"`
	Skipped       int            `json:"skippedLines,omitempty"`
}

func cmdTrace(c *cli.Context, s streams) error {
	file := c.Args().First()
	if file == "" {
		fmt.Fprintln(s.err, "usage: eva trace [--text] FILE")
		return cli.Exit("", exitUsage)
	}
	f, err := os.Open(file)
	if err != nil {
		printDiag(s.err, diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s", file), nil, ""), false)
		return cli.Exit("", exitUsage)
	}
	defer f.Close()

	summary, err := computeTraceSummary(f)
	if err != nil {
		printDiag(s.err, diagnostics.MakeDiag(diagnostics.EIO, fmt.Sprintf("cannot read file: %s: %s", file, err), nil, ""), false)
		return cli.Exit("", exitUsage)
	}

	if c.Bool("text") {
		printTraceSummaryText(s.out, summary)
		return nil
	}
	b, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, string(b))
	return nil
}

func computeTraceSummary(r io.Reader) (*TraceSummary, error) {
	summary := &TraceSummary{
		CallsByName:   make(map[string]int),
		ImportsByName: make(map[string]int),
		Classes:       []string{},
		Modules:       []string{},
	}

	open := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var event evaluator.TraceEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil || event.Event == "" {
			summary.Skipped++
			continue
		}

		summary.TotalEvents++
		if summary.RunID == "" {
			summary.RunID = event.RunID
		}

		switch event.Event {
		case evaluator.TraceRunStart:
			if summary.StartTime == "" {
				summary.StartTime = event.Timestamp
			}
		case evaluator.TraceRunEnd:
			summary.EndTime = event.Timestamp
		case evaluator.TraceCallStart:
			summary.Calls++
			summary.CallsByName[event.Data["fn"]]++
			open++
		case evaluator.TraceCallEnd:
			open--
		case evaluator.TraceImportStart:
			summary.Imports++
			summary.ImportsByName[event.Data["module"]]++
		case evaluator.TraceClassDecl:
			summary.Classes = append(summary.Classes, event.Data["name"])
		case evaluator.TraceModuleDecl:
			summary.Modules = append(summary.Modules, event.Data["name"])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if open > 0 {
		summary.Unfinished = open
	}

	if summary.StartTime != "" && summary.EndTime != "" {
		start, err1 := time.Parse(time.RFC3339Nano, summary.StartTime)
		end, err2 := time.Parse(time.RFC3339Nano, summary.EndTime)
		if err1 == nil && err2 == nil {
			summary.DurationMs = float64(end.Sub(start).Microseconds()) / 1000
		}
	}
	return summary, nil
}

func printTraceSummaryText(w io.Writer, s *TraceSummary) {
	fmt.Fprintf(w, "Run: %s\n", s.RunID)
	fmt.Fprintf(w, "Events: %d\n", s.TotalEvents)
	fmt.Fprintf(w, "Calls: %d\n", s.Calls)
	for _, name := range sortedByCount(s.CallsByName) {
		fmt.Fprintf(w, "  %s: %d\n", name, s.CallsByName[name])
	}
	if s.Unfinished > 0 {
		fmt.Fprintf(w, "  (%d unfinished)\n", s.Unfinished)
	}
	fmt.Fprintf(w, "Imports: %d\n", s.Imports)
	for _, name := range sortedByCount(s.ImportsByName) {
		fmt.Fprintf(w, "  %s: %d\n", name, s.ImportsByName[name])
	}
	if len(s.Classes) > 0 {
		fmt.Fprintf(w, "Classes: %s\n", strings.Join(s.Classes, ", "))
	}
	if len(s.Modules) > 0 {
		fmt.Fprintf(w, "Modules: %s\n", strings.Join(s.Modules, ", "))
	}
	if s.DurationMs > 0 {
		fmt.Fprintf(w, "Duration: %.3fms\n", s.DurationMs)
	}
}

// sortedByCount orders names by descending count, then alphabetically.
func sortedByCount(m map[string]int) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if m[names[i]] != m[names[j]] {
			return m[names[i]] > m[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
