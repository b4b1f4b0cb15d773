package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/eva/pkg/config"
	"github.com/thomasrohde/eva/pkg/evaluator"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.LoadFrom(t.TempDir(), home)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ModuleDir != "." || cfg.ReturnMode != "eager" || cfg.MaxEnvironments != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.HistoryFile != filepath.Join(home, ".eva_history") {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
	if cfg.Mode() != evaluator.ReturnEager {
		t.Errorf("Mode() = %v", cfg.Mode())
	}
}

func TestLoad_ProjectWinsOverUser(t *testing.T) {
	project, home := t.TempDir(), t.TempDir()
	writeFile(t, filepath.Join(project, config.ProjectFile), "return_mode: shallow\nmodule_dir: lib\n")
	writeFile(t, filepath.Join(home, ".eva", "config.yaml"), "return_mode: eager\nmax_environments: 9\n")

	cfg, err := config.LoadFrom(project, home)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode() != evaluator.ReturnShallow {
		t.Errorf("ReturnMode = %q, want shallow", cfg.ReturnMode)
	}
	if cfg.MaxEnvironments != 0 {
		t.Errorf("user file should not be merged, MaxEnvironments = %d", cfg.MaxEnvironments)
	}
	if cfg.ModuleDir != filepath.Join(project, "lib") {
		t.Errorf("ModuleDir = %q", cfg.ModuleDir)
	}
	if cfg.Source != filepath.Join(project, config.ProjectFile) {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestLoad_UserFallback(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".eva", "config.yaml"), "max_environments: 500\nhistory_file: ~/hist\n")

	cfg, err := config.LoadFrom(t.TempDir(), home)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxEnvironments != 500 {
		t.Errorf("MaxEnvironments = %d", cfg.MaxEnvironments)
	}
	if cfg.HistoryFile != filepath.Join(home, "hist") {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
	if cfg.ModuleDir != filepath.Join(home, ".eva") {
		t.Errorf("ModuleDir = %q", cfg.ModuleDir)
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	project := t.TempDir()
	writeFile(t, filepath.Join(project, config.ProjectFile), "")
	cfg, err := config.LoadFrom(project, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ReturnMode != "eager" {
		t.Errorf("ReturnMode = %q", cfg.ReturnMode)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":     "return_mode: [",
		"unknown key":  "colour: blue\n",
		"bad mode":     "return_mode: lazy\n",
		"negative max": "max_environments: -1\n",
		"empty dir":    "module_dir: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			project := t.TempDir()
			writeFile(t, filepath.Join(project, config.ProjectFile), content)
			_, err := config.LoadFrom(project, "")
			var cerr *config.Error
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *config.Error, got %v", err)
			}
			if !strings.Contains(cerr.Error(), config.ProjectFile) {
				t.Errorf("error should name the file: %v", cerr)
			}
		})
	}
}

func TestYAML(t *testing.T) {
	cfg := config.Default()
	cfg.MaxEnvironments = 10
	out, err := cfg.YAML()
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := yaml.Unmarshal([]byte(out), &back); err != nil {
		t.Fatal(err)
	}
	if back["max_environments"] != 10 || back["return_mode"] != "eager" {
		t.Errorf("round trip = %v", back)
	}
	if _, ok := back["Source"]; ok {
		t.Error("Source must not be serialized")
	}
}
