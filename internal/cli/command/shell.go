package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/proxystore/internal/cli/repl"
	"github.com/yndnr/proxystore/internal/config"
	"github.com/yndnr/proxystore/internal/infra/confloader"
	"github.com/yndnr/proxystore/internal/telemetry/logger"
	"github.com/yndnr/proxystore/pkg/storage"
)

// ReplCommand returns the repl command.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Interactive shell sharing one tab across commands",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "history",
				Usage: "History file (empty disables persistence)",
				Value: repl.DefaultHistoryFile(),
			},
			&cli.StringFlag{
				Name:  "metrics-listen",
				Usage: "Serve /metrics on this address while the shell runs (requires metrics.enabled)",
			},
		},
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	st := stateFrom(c)
	if st.shell {
		return errors.New("already in a repl session")
	}
	env, err := st.attach(c)
	if err != nil {
		return err
	}
	st.shell = true

	sh := &shell{st: st, ctx: c.Context}

	if addr := c.String("metrics-listen"); addr != "" {
		if env.Metrics == nil {
			return errors.New("--metrics-listen requires metrics.enabled")
		}
		serveMetrics(addr, sh)
	}

	if st.configPath != "" {
		w, err := confloader.NewWatcher(confloader.WithWatcherLogger(st.log.Slog()))
		if err != nil {
			return err
		}
		if err := w.Watch(st.configPath); err != nil {
			return err
		}
		w.OnChange(func(string) { sh.reload() })
		w.StartAsync()
		defer w.Stop()
	}

	r := repl.New(sh,
		repl.WithIO(c.App.Reader, st.out),
		repl.WithHistory(repl.NewHistory(c.String("history"))))
	return r.Run()
}

func serveMetrics(addr string, sh *shell) {
	env := sh.st.env
	mux := http.NewServeMux()
	mux.Handle("/metrics", env.Metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L(sh.ctx).Error("metrics listener stopped", "addr", addr, "error", err)
		}
	}()
	env.OnClose("metrics-http", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})
	logger.L(sh.ctx).Info("serving metrics", "addr", addr)
}

// shell executes repl lines against the shared state. mu serializes lines
// with configuration reloads.
type shell struct {
	mu  sync.Mutex
	st  *state
	ctx context.Context
}

// Prompt shows the kind commands currently go to.
func (s *shell) Prompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, err := s.st.storage()
	if err != nil {
		return "proxystore> "
	}
	return fmt.Sprintf("%s> ", ws.Kind())
}

// Execute runs one line.
func (s *shell) Execute(args []string) error {
	if len(args) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if args[0] == "use" {
		return s.use(args[1:])
	}

	app := newApp()
	if app.Command(args[0]) == nil {
		return fmt.Errorf("unknown command %q (try help)", args[0])
	}
	app.Writer = s.st.out
	app.Metadata[stateKey] = s.st
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.RunContext(s.ctx, append([]string{app.Name}, args...))
}

// use switches the kind later lines operate on.
func (s *shell) use(args []string) error {
	if len(args) != 1 {
		return errors.New("use: expected KIND (local, session, cookie, memory)")
	}
	kind, err := storage.ParseKind(args[0])
	if err != nil {
		return err
	}
	ws, err := s.st.env.Proxy.Storage(kind)
	if err != nil {
		return err
	}
	s.st.mechanism = string(kind)
	if ws.Kind() != kind {
		fmt.Fprintf(s.st.out, "%s is not available, using %s\n", kind, ws.Kind())
	}
	return nil
}

// reload re-reads the configuration file. The log level and the default
// mechanism follow the file; other settings apply to the next tab.
func (s *shell) reload() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := config.Load(s.st.configPath, s.st.overrides)
	if err != nil {
		logger.L(s.ctx).Warn("config reload failed", "path", s.st.configPath, "error", err)
		return
	}

	logger.SetLevel(cfg.Log.Level)

	if cfg.Storage.Default != s.st.cfg.Storage.Default && cfg.Storage.Default != "" {
		kind, err := storage.ParseKind(cfg.Storage.Default)
		if err == nil {
			err = s.st.env.Proxy.Set(kind)
		}
		if err != nil {
			logger.L(s.ctx).Warn("default mechanism not changed", "kind", kind, "error", err)
		}
	}

	s.st.cfg = cfg
	logger.L(s.ctx).Info("config reloaded",
		"path", s.st.configPath,
		"level", logger.GetLevel(),
		"default", s.st.env.Proxy.Get())
}
