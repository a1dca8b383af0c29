package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfigValid(t *testing.T) {
	if err := defaultConfig().validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	d, err := defaultConfig().debounce()
	if err != nil || d != defaultDebounce {
		t.Errorf("debounce = %v, %v; want %v", d, err, defaultDebounce)
	}
}

func TestReadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), "canvasrun.toml", `
width = 64
height = 32
backend = "recording"
debounce = "50ms"
log_level = "warn"
`)
	conf, err := readConfig(path)
	if err != nil {
		t.Fatalf("readConfig: %v", err)
	}
	if conf.Width != 64 || conf.Height != 32 || conf.Backend != "recording" {
		t.Errorf("conf = %+v", conf)
	}
	// Keys absent from the file keep their defaults.
	if conf.Output != "out.png" {
		t.Errorf("Output = %q, want out.png", conf.Output)
	}
	if d, _ := conf.debounce(); d != 50*time.Millisecond {
		t.Errorf("debounce = %v", d)
	}
	if l, _ := conf.level(); l != slog.LevelWarn {
		t.Errorf("level = %v", l)
	}
}

func TestReadConfigUnknownKey(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.toml", "widht = 10\n")
	_, err := readConfig(path)
	if err == nil || !strings.Contains(err.Error(), "widht") {
		t.Errorf("readConfig = %v, want unknown key error", err)
	}
}

func TestReadConfigMissing(t *testing.T) {
	if _, err := readConfig(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("readConfig of missing file succeeded")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config)
	}{
		{"negative width", func(c *config) { c.Width = -1 }},
		{"no backend", func(c *config) { c.Backend = "" }},
		{"bad debounce", func(c *config) { c.Debounce = "soon" }},
		{"zero debounce", func(c *config) { c.Debounce = "0s" }},
		{"bad level", func(c *config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig()
			tt.modify(&c)
			if err := c.validate(); err == nil {
				t.Error("validate succeeded")
			}
		})
	}
}

func TestWriteConfigRoundTrip(t *testing.T) {
	conf := defaultConfig()
	conf.Width = 123
	var buf bytes.Buffer
	if err := writeConfig(&buf, conf); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "out.toml", buf.String())
	got, err := readConfig(path)
	if err != nil {
		t.Fatalf("readConfig: %v", err)
	}
	if got != conf {
		t.Errorf("round trip = %+v, want %+v", got, conf)
	}
}

func TestParseArgsFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "c.toml", "width = 64\nheight = 32\n")
	conf, opts, err := parseArgs([]string{"-config", path, "-height", "10", "s.lua"}, io.Discard)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if conf.Width != 64 || conf.Height != 10 {
		t.Errorf("size = %dx%d, want 64x10", conf.Width, conf.Height)
	}
	if opts.script != "s.lua" {
		t.Errorf("script = %q", opts.script)
	}
}

func TestParseArgsVerbose(t *testing.T) {
	conf, _, err := parseArgs([]string{"-v", "s.lua"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if conf.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", conf.LogLevel)
	}
}

func TestParseArgsNeedsScript(t *testing.T) {
	if _, _, err := parseArgs(nil, io.Discard); err == nil {
		t.Error("parseArgs without script succeeded")
	}
}
