package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dicklesworthstone/statline/internal/apperrors"
)

// MinInterval is the shortest pause between the two CPU counter snapshots.
const MinInterval = 500 * time.Millisecond

// Config carries runtime options for statline.
type Config struct {
	Newline  bool
	Interval time.Duration
	Color    bool
	LogLevel string
}

func Default() Config {
	return Config{
		Newline:  false,
		Interval: MinInterval,
		Color:    false,
		LogLevel: "warn",
	}
}

// FromFlags parses flags and environment overrides. getenv is usually
// os.Getenv. A -h request returns flag.ErrHelp.
func FromFlags(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet("statline", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.BoolVar(&cfg.Newline, "n", cfg.Newline, "print a trailing newline")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		err := apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
		fmt.Fprintln(usage, err)
		fs.Usage()
		return cfg, err
	}

	if truthy(getenv("STATLINE_NEWLINE")) {
		cfg.Newline = true
	}
	if v := getenv("STATLINE_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Interval = parsed
		} else if parsed, err2 := time.ParseDuration(v + "s"); err2 == nil {
			cfg.Interval = parsed
		}
	}
	if cfg.Interval < MinInterval {
		cfg.Interval = MinInterval
	}
	if truthy(getenv("STATLINE_COLOR")) {
		cfg.Color = true
	}
	if v := getenv("STATLINE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
