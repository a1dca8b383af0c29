// Command canvasrun renders a Lua drawing script to a PNG image.
//
// Usage:
//
//	canvasrun [-config file.toml] [-width N] [-height N] [-backend name]
//	          [-o out.png] [-watch] [-v] script.lua
//
// With -watch the script is rendered again each time it is saved. The
// "recording" backend prints the host calls instead of writing an image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/canvas"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("canvasrun: %v", err)
	}
}

// options are the command line settings that are not part of config.
type options struct {
	configPath  string
	watch       bool
	verbose     bool
	printConfig bool
	script      string
}

func parseArgs(args []string, stderr io.Writer) (config, options, error) {
	fs := flag.NewFlagSet("canvasrun", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts    options
		flagged = defaultConfig()
	)
	fs.StringVar(&opts.configPath, "config", "", "TOML configuration file")
	fs.IntVar(&flagged.Width, "width", flagged.Width, "surface width")
	fs.IntVar(&flagged.Height, "height", flagged.Height, "surface height")
	fs.StringVar(&flagged.Backend, "backend", flagged.Backend, "host backend")
	fs.StringVar(&flagged.Output, "o", flagged.Output, "output file")
	fs.StringVar(&flagged.Background, "background", flagged.Background, "background colour")
	fs.BoolVar(&opts.watch, "watch", false, "re-render when the script changes")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fs.BoolVar(&opts.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: canvasrun [flags] script.lua\n")
		fmt.Fprintf(fs.Output(), "backends: %v\n", canvas.Backends())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return config{}, options{}, err
	}

	conf := defaultConfig()
	if opts.configPath != "" {
		var err error
		if conf, err = readConfig(opts.configPath); err != nil {
			return config{}, options{}, err
		}
	}

	// Flags given explicitly win over the file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			conf.Width = flagged.Width
		case "height":
			conf.Height = flagged.Height
		case "backend":
			conf.Backend = flagged.Backend
		case "o":
			conf.Output = flagged.Output
		case "background":
			conf.Background = flagged.Background
		}
	})
	if opts.verbose {
		conf.LogLevel = "debug"
	}
	if err := conf.validate(); err != nil {
		return config{}, options{}, err
	}

	if !opts.printConfig {
		if fs.NArg() != 1 {
			fs.Usage()
			return config{}, options{}, errors.New("expected one script")
		}
		opts.script = fs.Arg(0)
	}
	return conf, opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	conf, opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	if opts.printConfig {
		return writeConfig(stdout, conf)
	}

	level, _ := conf.level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	canvas.SetLogger(logger)

	if !canvas.IsRegistered(conf.Backend) {
		return fmt.Errorf("unknown backend %q (have %v)", conf.Backend, canvas.Backends())
	}

	r := newRenderer(conf, stdout, logger)
	if err := r.render(opts.script); err != nil {
		if !opts.watch {
			return err
		}
		logger.Error("render failed", "script", opts.script, "error", err)
	}
	if !opts.watch {
		return nil
	}

	debounce, _ := conf.debounce()
	w, err := newScriptWatcher(opts.script, debounce,
		func() error { return r.render(opts.script) },
		func(err error) { logger.Error("render failed", "script", opts.script, "error", err) },
	)
	if err != nil {
		return fmt.Errorf("watch %s: %w", opts.script, err)
	}
	w.Start()
	defer w.Stop()
	logger.Info("watching", "script", opts.script, "debounce", debounce)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
