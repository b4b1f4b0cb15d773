// Package testutil provides shared test helpers for Eva Go tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ScenariosDir is the scenario root relative to a cmd/<name> package directory.
const ScenariosDir = "../../testdata/scenarios"

// ScenarioFile is the name of the file describing a scenario.
const ScenarioFile = "scenario.yaml"

// Scenario is one CLI invocation and its expected outcome. Cmd runs with the
// scenario directory as the working directory.
type Scenario struct {
	Cmd    []string       `yaml:"cmd"`
	Stdin  string         `yaml:"stdin,omitempty"`
	Meta   *ScenarioMeta  `yaml:"meta,omitempty"`
	Expect ExpectedResult `yaml:"expect"`
}

// ScenarioMeta holds optional scenario metadata.
type ScenarioMeta struct {
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// ExpectedResult describes the expected outcome of running a scenario.
// Stdout and Stderr are compared exactly when set; the Contains lists need every
// entry to appear. StderrCodes are the diagnostic codes of a JSON diagnostics array
// on stderr, in order.
type ExpectedResult struct {
	ExitCode       int      `yaml:"exitCode"`
	Stdout         *string  `yaml:"stdout,omitempty"`
	StdoutContains []string `yaml:"stdoutContains,omitempty"`
	Stderr         *string  `yaml:"stderr,omitempty"`
	StderrContains []string `yaml:"stderrContains,omitempty"`
	StderrCodes    []string `yaml:"stderrCodes,omitempty"`
}

// LoadScenario loads the scenario.yaml in dir.
func LoadScenario(dir string) (*Scenario, error) {
	f, err := os.Open(filepath.Join(dir, ScenarioFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Scenario
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	if len(s.Cmd) == 0 {
		return nil, fmt.Errorf("%s: cmd is empty", dir)
	}
	return &s, nil
}

// ListScenarios returns the scenario directories directly under root, sorted.
func ListScenarios(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(root, e.Name(), ScenarioFile)); err == nil {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
