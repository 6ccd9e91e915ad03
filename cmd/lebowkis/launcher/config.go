// This file maps the CLI context to the Config struct.

package launcher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/lebowkis/go-lebowkis/lebowkis"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// ErrInvalidConfig marks values that fail validation after merging.
var ErrInvalidConfig = errors.New("invalid config")

// Config aggregates everything a command needs.
type Config struct {
	Network lebowkis.Network `json:"network"`
	Output  string           `json:"output"`
	Logging LoggingConfig    `json:"logging"`
}

type LoggingConfig struct {
	Verbosity int    `json:"verbosity"`
	Format    string `json:"format"`
	Color     bool   `json:"color"`
	SentryDSN string `json:"sentryDsn"`
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	d := DefaultConfig()
	net, err := lebowkis.ParseNetwork(d.Network)
	if err != nil {
		panic(err) // built-in default must always parse
	}
	return Config{
		Network: net,
		Output:  d.Output,
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
	}
}

// MakeAllConfigs merges defaults, the optional config file and CLI overrides
// into a single config struct. An unrecognized network name, from either
// source, yields an error wrapping lebowkis.ErrUnknownNetwork.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := stringFlag(ctx, "config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if isSet(ctx, "network") {
		net, err := lebowkis.ParseNetwork(stringFlag(ctx, "network"))
		if err != nil {
			return err
		}
		cfg.Network = net
	}
	if isSet(ctx, "output") {
		cfg.Output = stringFlag(ctx, "output")
	}

	if isSet(ctx, "log.format") {
		cfg.Logging.Format = stringFlag(ctx, "log.format")
	}
	if isSet(ctx, "log.verbosity") {
		cfg.Logging.Verbosity = intFlag(ctx, "log.verbosity")
	}
	if isSet(ctx, "log.color") {
		cfg.Logging.Color = boolFlag(ctx, "log.color")
	}
	// the DSN may also come from the environment, which IsSet does not see
	if dsn := stringFlag(ctx, "sentry.dsn"); dsn != "" {
		cfg.Logging.SentryDSN = dsn
	}
	return nil
}

func (c Config) validate() error {
	switch c.Output {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("%w: output %q (valid: text, json)", ErrInvalidConfig, c.Output)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (valid: text, json)", ErrInvalidConfig, c.Logging.Format)
	}
	if c.Logging.Verbosity < 0 || c.Logging.Verbosity > 5 {
		return fmt.Errorf("%w: log.verbosity %d (valid: 0-5)", ErrInvalidConfig, c.Logging.Verbosity)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// Global flags live on the parent context once a subcommand runs, so every
// lookup checks the local context first and then the global ones.

func isSet(ctx *cli.Context, name string) bool {
	return ctx.IsSet(name) || ctx.GlobalIsSet(name)
}

func stringFlag(ctx *cli.Context, name string) string {
	if ctx.IsSet(name) {
		return ctx.String(name)
	}
	if ctx.GlobalIsSet(name) {
		return ctx.GlobalString(name)
	}
	if v := ctx.String(name); v != "" {
		return v
	}
	return ctx.GlobalString(name)
}

func intFlag(ctx *cli.Context, name string) int {
	if ctx.IsSet(name) {
		return ctx.Int(name)
	}
	return ctx.GlobalInt(name)
}

func boolFlag(ctx *cli.Context, name string) bool {
	return ctx.Bool(name) || ctx.GlobalBool(name)
}
