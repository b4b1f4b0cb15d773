package main

import (
	"bytes"
	"strings"
	"testing"
)

const sampleTrace = `{"ts":"2026-01-02T03:04:05.000Z","runId":"r1","event":"run_start"}
{"ts":"2026-01-02T03:04:05.001Z","runId":"r1","event":"import_start","data":{"module":"Lib"}}
{"ts":"2026-01-02T03:04:05.002Z","runId":"r1","event":"module_decl","data":{"name":"Lib"}}
{"ts":"2026-01-02T03:04:05.002Z","runId":"r1","event":"import_end","data":{"module":"Lib"}}
not json
{"ts":"2026-01-02T03:04:05.003Z","runId":"r1","event":"class_decl","data":{"name":"P"}}
{"ts":"2026-01-02T03:04:05.004Z","runId":"r1","event":"call_start","data":{"fn":"sq"}}
{"ts":"2026-01-02T03:04:05.005Z","runId":"r1","event":"call_end","data":{"fn":"sq"}}

{"ts":"2026-01-02T03:04:05.006Z","runId":"r1","event":"call_start","data":{"fn":"sq"}}
{"ts":"2026-01-02T03:04:05.006Z","runId":"r1","event":"call_start","data":{"fn":"print"}}
{"ts":"2026-01-02T03:04:05.007Z","runId":"r1","event":"call_end","data":{"fn":"print"}}
{"ts":"2026-01-02T03:04:05.250Z","runId":"r1","event":"run_end"}
`

func TestComputeTraceSummary(t *testing.T) {
	s, err := computeTraceSummary(strings.NewReader(sampleTrace))
	if err != nil {
		t.Fatal(err)
	}
	if s.RunID != "r1" || s.TotalEvents != 11 || s.Skipped != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.Calls != 3 || s.CallsByName["sq"] != 2 || s.CallsByName["print"] != 1 {
		t.Errorf("calls = %d %v", s.Calls, s.CallsByName)
	}
	if s.Unfinished != 1 {
		t.Errorf("Unfinished = %d, want 1", s.Unfinished)
	}
	if s.Imports != 1 || s.ImportsByName["Lib"] != 1 {
		t.Errorf("imports = %d %v", s.Imports, s.ImportsByName)
	}
	if strings.Join(s.Classes, ",") != "P" || strings.Join(s.Modules, ",") != "Lib" {
		t.Errorf("classes %v modules %v", s.Classes, s.Modules)
	}
	if s.DurationMs != 250 {
		t.Errorf("DurationMs = %v, want 250", s.DurationMs)
	}
}

func TestComputeTraceSummaryEmpty(t *testing.T) {
	s, err := computeTraceSummary(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if s.TotalEvents != 0 || s.DurationMs != 0 || s.Classes == nil {
		t.Errorf("summary = %+v", s)
	}
}

func TestPrintTraceSummaryText(t *testing.T) {
	s, err := computeTraceSummary(strings.NewReader(sampleTrace))
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	printTraceSummaryText(&b, s)
	want := []string{
		"Run: r1\n",
		"Calls: 3\n  sq: 2\n  print: 1\n  (1 unfinished)\n",
		"Imports: 1\n  Lib: 1\n",
		"Classes: P\n",
		"Modules: Lib\n",
		"Duration: 250.000ms\n",
	}
	for _, w := range want {
		if !strings.Contains(b.String(), w) {
			t.Errorf("text summary missing %q:\n%s", w, b.String())
		}
	}
}

func TestSortedByCount(t *testing.T) {
	got := sortedByCount(map[string]int{"b": 1, "a": 1, "c": 3})
	if strings.Join(got, ",") != "c,a,b" {
		t.Errorf("got %v", got)
	}
}
