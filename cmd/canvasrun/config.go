package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/canvas"
)

// config holds the settings of one canvasrun invocation. Fields map to
// snake_case keys in the TOML file; flags override them.
type config struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Backend     string `toml:"backend"`
	Background  string `toml:"background"`
	Output      string `toml:"output"`
	LogLevel    string `toml:"log_level"`
	Debounce    string `toml:"debounce"`
	CPULimit    uint64 `toml:"cpu_limit"`
	MemoryLimit uint64 `toml:"memory_limit"`
}

const defaultDebounce = 500 * time.Millisecond

func defaultConfig() config {
	return config{
		Width:       300,
		Height:      150,
		Backend:     canvas.DefaultBackend,
		Background:  "transparent",
		Output:      "out.png",
		LogLevel:    "info",
		Debounce:    defaultDebounce.String(),
		CPULimit:    10_000_000,
		MemoryLimit: 50 * 1024 * 1024,
	}
}

// readConfig decodes the TOML file at path over the defaults. Unknown
// keys are rejected so typos do not go unnoticed.
func readConfig(path string) (config, error) {
	conf := defaultConfig()
	md, err := toml.DecodeFile(path, &conf)
	if err != nil {
		return config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return conf, nil
}

// writeConfig encodes conf as TOML.
func writeConfig(w io.Writer, conf config) error {
	return toml.NewEncoder(w).Encode(conf)
}

func (c config) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Backend == "" {
		return errors.New("no backend")
	}
	if _, err := c.debounce(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c config) debounce() (time.Duration, error) {
	if c.Debounce == "" {
		return defaultDebounce, nil
	}
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid debounce: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid debounce %s", d)
	}
	return d, nil
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}
