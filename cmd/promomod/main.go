// Command promomod builds PROMOMODALIDAD codes from the command line or an
// interactive terminal UI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/JonMunkholm/promomod/internal/config"
	"github.com/JonMunkholm/promomod/internal/core"
	"github.com/JonMunkholm/promomod/internal/logging"
	"github.com/JonMunkholm/promomod/internal/source"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// .env values never override the real environment for the CLI.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errAny) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// app carries the persistent flags and the configuration they produce.
type app struct {
	sourceURL string
	logLevel  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "promomod",
		Short:         "Build PROMOMODALIDAD codes from the equivalences tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.sourceURL, "source", "", "table source (overrides SOURCE_URL)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	root.AddCommand(
		newResolveCmd(a),
		newOptionsCmd(a),
		newPlatformsCmd(a),
		newCheckCmd(a),
		newTUICmd(a),
	)

	root.SetErr(os.Stderr)
	return root
}

// setup loads configuration with flag overrides and configures logging on
// stderr so stdout carries only command output.
func (a *app) setup() error {
	overrides := map[string]string{
		"SOURCE_URL": a.sourceURL,
		"LOG_LEVEL":  a.logLevel,
	}
	cfg, err := config.LoadFrom(func(key string) string {
		if v := overrides[key]; v != "" {
			return v
		}
		return os.Getenv(key)
	})
	if err != nil {
		return err
	}
	a.cfg = cfg
	logging.Setup(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	return nil
}

// load reads the configured source within the configured timeout.
func (a *app) load(ctx context.Context) (*core.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.Source.LoadTimeout)
	defer cancel()
	return source.Load(ctx, a.cfg.Source.URL, source.OptionsFromConfig(a.cfg))
}

func (a *app) engine(ctx context.Context) (*core.Engine, error) {
	store, err := a.load(ctx)
	if err != nil {
		return nil, userError(err)
	}
	return core.NewEngine(store, 0), nil
}

// userError decorates err with its support code and suggested action.
func userError(err error) error {
	if err == nil || !core.IsUserFacing(err) {
		return err
	}
	return fmt.Errorf("%w\n%s", err, core.FormatUserError(err))
}

// errAny is returned when a command has already reported its failure.
var errAny = errors.New("command failed")
