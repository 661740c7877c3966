package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/proxystore/internal/cli/output"
	"github.com/yndnr/proxystore/internal/config"
	"github.com/yndnr/proxystore/internal/infra/buildinfo"
	"github.com/yndnr/proxystore/internal/telemetry/logger"
	"github.com/yndnr/proxystore/internal/telemetry/metric"
	"github.com/yndnr/proxystore/pkg/storage"
)

// ProbeCommand returns the probe command.
func ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:   "probe",
		Usage:  "Probe every mechanism and show the selected default",
		Action: probeAction,
	}
}

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration (secrets masked)",
				Action: configShow,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "FILE",
				Action:    configValidate,
			},
		},
	}
}

// MetricsCommand returns the metrics command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "Show the proxystore metrics gathered in this process",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Include Go runtime and process metrics",
			},
		},
		Action: metricsAction,
	}
}

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show build information",
		Action: func(c *cli.Context) error {
			return stateFrom(c).print(versionResult{buildinfo.Get()})
		},
	}
}

// probeRow is one mechanism in the probe result.
type probeRow struct {
	Kind      storage.Kind `json:"kind" yaml:"kind"`
	Available bool         `json:"available" yaml:"available"`
	Probe     bool         `json:"probe" yaml:"probe"`
}

// probeResult compares the availability cached at startup with a fresh
// probe.
type probeResult struct {
	TabID      string       `json:"tab_id" yaml:"tab_id"`
	Default    storage.Kind `json:"default" yaml:"default"`
	Resolved   storage.Kind `json:"resolved" yaml:"resolved"`
	Mechanisms []probeRow   `json:"mechanisms" yaml:"mechanisms"`
}

func (r probeResult) Table() *output.Table {
	t := &output.Table{Headers: []string{"KIND", "AVAILABLE", "PROBE", "DEFAULT"}}
	for _, m := range r.Mechanisms {
		def := ""
		if m.Kind == r.Resolved {
			def = "*"
		}
		t.AddRow(string(m.Kind), output.Cell(m.Available), output.Cell(m.Probe), def)
	}
	return t
}

func probeAction(c *cli.Context) error {
	st := stateFrom(c)
	env, err := st.attach(c)
	if err != nil {
		return err
	}

	cached := env.Proxy.IsAvailable()
	res := probeResult{
		TabID:    env.TabID,
		Default:  env.Proxy.Get(),
		Resolved: env.Proxy.Default().Kind(),
	}
	for _, kind := range env.Registry.Kinds() {
		mech, err := env.Registry.Mechanism(kind)
		if err != nil {
			return err
		}
		res.Mechanisms = append(res.Mechanisms, probeRow{
			Kind:      kind,
			Available: cached[kind],
			Probe:     kind == storage.Memory || storage.Probe(mech),
		})
	}
	logger.L(c.Context).Debug("mechanisms probed", "default", res.Default, "resolved", res.Resolved)
	return st.print(res)
}

func configShow(c *cli.Context) error {
	st := stateFrom(c)
	return st.print(config.Flatten(config.Sanitize(st.cfg)))
}

func configValidate(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	path := c.Args().Get(0)
	if _, err := config.Load(path, nil); err != nil {
		return err
	}
	_, err := fmt.Fprintf(stateFrom(c).out, "%s: ok\n", path)
	return err
}

// metricsResult lists gathered samples.
type metricsResult struct {
	Samples []metric.Sample `json:"samples" yaml:"samples"`
}

func (r metricsResult) Table() *output.Table {
	t := &output.Table{Headers: []string{"NAME", "LABELS", "VALUE"}}
	for _, s := range r.Samples {
		labels := s.Labels
		if labels == "" {
			labels = "-"
		}
		t.AddRow(s.Name, labels, output.Cell(s.Value))
	}
	return t
}

func metricsAction(c *cli.Context) error {
	st := stateFrom(c)
	env, err := st.attach(c)
	if err != nil {
		return err
	}
	if env.Metrics == nil {
		return errors.New("metrics are disabled (set metrics.enabled: true)")
	}

	prefix := metric.Namespace + "_"
	if c.Bool("all") {
		prefix = ""
	}
	samples, err := env.Metrics.Samples(prefix)
	if err != nil {
		return err
	}
	return st.print(metricsResult{Samples: samples})
}

// versionResult renders build information.
type versionResult struct {
	buildinfo.Info `yaml:",inline"`
}

func (r versionResult) Table() *output.Table {
	t := &output.Table{}
	t.AddRow("Version:", r.Version)
	t.AddRow("Commit:", r.Commit)
	t.AddRow("Built:", r.BuildTime)
	t.AddRow("Go:", r.GoVersion)
	t.AddRow("Platform:", r.Platform)
	return t
}
