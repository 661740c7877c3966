package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/proxystore/internal/cli/output"
	"github.com/yndnr/proxystore/internal/config"
	"github.com/yndnr/proxystore/internal/infra/buildinfo"
	"github.com/yndnr/proxystore/internal/telemetry/logger"
)

// App creates the CLI application.
func App() *cli.App {
	app := newApp()
	app.Flags = globalFlags()
	app.Before = setup
	app.After = func(c *cli.Context) error {
		if st := stateFrom(c); st != nil {
			return st.close()
		}
		return nil
	}
	return app
}

// newApp returns the application without global flags or hooks. The repl
// runs each line through a fresh one sharing the session state.
func newApp() *cli.App {
	return &cli.App{
		Name:     "proxystore-cli",
		Usage:    "Unified key-value storage over local, session, cookie and memory mechanisms",
		Version:  buildinfo.String(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			SetCommand(),
			GetCommand(),
			RemoveCommand(),
			ClearCommand(),
			KeysCommand(),
			LengthCommand(),
			ProbeCommand(),
			ConfigCommand(),
			MetricsCommand(),
			VersionCommand(),
			ReplCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Configuration file (YAML)",
			EnvVars: []string{"PROXYSTORE_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "mechanism",
			Aliases: []string{"m"},
			Usage:   "Storage kind to use instead of the default: local, session, cookie, memory",
		},
		&cli.StringFlag{
			Name:  "tab",
			Usage: "Tab id scoping session storage and the memory slot (default: storage.tab_id or a new tab)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   "table",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level: debug, info, warn, error",
		},
	}
}

// setup loads the configuration and the logger into the app state.
func setup(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	overrides := map[string]any{}
	if tab := c.String("tab"); tab != "" {
		overrides["storage.tab_id"] = tab
	}
	if level := c.String("log-level"); level != "" {
		overrides["log.level"] = level
	}

	st := &state{
		configPath: c.String("config"),
		overrides:  overrides,
		format:     format,
		out:        c.App.Writer,
		mechanism:  c.String("mechanism"),
	}
	if err := st.loadConfig(c); err != nil {
		return err
	}

	c.App.Metadata[stateKey] = st
	return nil
}

func (s *state) loadConfig(c *cli.Context) error {
	cfg, err := config.Load(s.configPath, s.overrides)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	s.cfg = cfg
	s.log = log
	return nil
}
