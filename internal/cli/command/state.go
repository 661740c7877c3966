package command

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/proxystore/internal/bootstrap"
	"github.com/yndnr/proxystore/internal/cli/output"
	"github.com/yndnr/proxystore/internal/config"
	"github.com/yndnr/proxystore/internal/telemetry/logger"
	"github.com/yndnr/proxystore/pkg/proxystorage"
	"github.com/yndnr/proxystore/pkg/storage"
)

const stateKey = "proxystore.state"

// state is shared by the commands of one invocation, or by every line of
// a repl session.
type state struct {
	configPath string
	overrides  map[string]any
	cfg        *config.Config
	log        logger.Logger
	format     output.Format
	out        io.Writer

	// mechanism is the kind chosen with --mechanism or "use"; empty means
	// the Proxy default.
	mechanism string

	env *bootstrap.Env

	// shell is set while a repl session owns the state.
	shell bool
}

func stateFrom(c *cli.Context) *state {
	st, _ := c.App.Metadata[stateKey].(*state)
	return st
}

// open opens the tab on first use.
func (s *state) open() (*bootstrap.Env, error) {
	if s.env != nil {
		return s.env, nil
	}
	env, err := bootstrap.Open(s.cfg, s.log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	s.env = env
	return env, nil
}

// attach opens the tab and puts the logger, scoped to the tab id, on the
// command context. Commands log through logger.L(c.Context).
func (s *state) attach(c *cli.Context) (*bootstrap.Env, error) {
	env, err := s.open()
	if err != nil {
		return nil, err
	}
	c.Context = logger.WithTabID(logger.WithLogger(c.Context, s.log), env.TabID)
	return env, nil
}

// facade is storage for a command: the tab is attached to c first.
func (s *state) facade(c *cli.Context) (*proxystorage.WebStorage, error) {
	if _, err := s.attach(c); err != nil {
		return nil, err
	}
	return s.storage()
}

// storage returns the facade selected by --mechanism, or the default.
func (s *state) storage() (*proxystorage.WebStorage, error) {
	env, err := s.open()
	if err != nil {
		return nil, err
	}
	if s.mechanism == "" {
		return env.Proxy.Default(), nil
	}
	kind, err := storage.ParseKind(s.mechanism)
	if err != nil {
		return nil, err
	}
	return env.Proxy.Storage(kind)
}

func (s *state) print(data any) error {
	return output.NewFormatter(s.format).Format(s.out, data)
}

func (s *state) close() error {
	if s.env == nil {
		return nil
	}
	err := s.env.Close()
	s.env = nil
	return err
}
