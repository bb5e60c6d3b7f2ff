package cfg

import (
	"cmp"
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port       string `long:"port" env:"PORT" default:"8501" description:"HTTP server port"`
	LabelsFile string `long:"labels-file" env:"LABELS_FILE" description:"Optional YAML file overriding dashboard labels"`

	// Source fetching
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Robot Insight/1.0" description:"User agent string for the CSV export request"`
	FetchTimeout int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"CSV export request timeout in seconds"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"Asia/Seoul" description:"Timezone used for the default date range (e.g., UTC, Asia/Seoul)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses command-line flags and environment variables. A nil config with
// a nil error means help was printed.
func Load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:         raw.Port,
		LabelsFile:   raw.LabelsFile,
		UserAgent:    raw.UserAgent,
		FetchTimeout: raw.FetchTimeout,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, using system default", "timezone", cfg.Timezone, "error", err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
