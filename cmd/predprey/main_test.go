package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/predprey/internal/config"
)

func TestListPresets(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	if err := listPresets(cmd, nil); err != nil {
		t.Fatalf("listPresets: %v", err)
	}
	for _, name := range config.ListPresets() {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("output missing preset %q", name)
		}
	}
}

func TestRunPlot_Defaults(t *testing.T) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	width, height = 60, 10

	if err := runPlot(cmd, nil); err != nil {
		t.Fatalf("runPlot: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"prey", "predators", "equilibrium", "(15, 10)"} {
		if !strings.Contains(out, want) {
			t.Errorf("plot output missing %q", want)
		}
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := writeConfig(&cobra.Command{}, []string{path}); err != nil {
		t.Fatalf("writeConfig: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Params.Gamma != config.DefaultGamma {
		t.Errorf("gamma = %v, want %v", cfg.Params.Gamma, config.DefaultGamma)
	}
}
