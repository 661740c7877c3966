package command

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/proxystore/internal/cli/output"
	"github.com/yndnr/proxystore/internal/telemetry/logger"
	"github.com/yndnr/proxystore/pkg/storage"
)

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value",
		ArgsUsage: "KEY VALUE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Parse VALUE as JSON instead of storing it as a string",
			},
			&cli.StringFlag{Name: "path", Usage: "Cookie path (default /)"},
			&cli.StringFlag{Name: "domain", Usage: "Cookie domain (default host-only)"},
			&cli.BoolFlag{Name: "secure", Usage: "Mark the cookie secure"},
			&cli.StringFlag{Name: "expires", Usage: "Cookie expiration date (RFC 3339)"},
			&cli.IntFlag{Name: "expires-days", Usage: "Cookie expiration in days from now"},
			&cli.IntFlag{Name: "expires-hours", Usage: "Cookie expiration in hours from now"},
			&cli.IntFlag{Name: "expires-minutes", Usage: "Cookie expiration in minutes from now"},
		},
		Action: setAction,
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Read a value",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the stored string without JSON decoding",
			},
		},
		Action: getAction,
	}
}

// RemoveCommand returns the remove command.
func RemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Aliases:   []string{"rm"},
		Usage:     "Delete a key",
		ArgsUsage: "KEY",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Usage: "Cookie path (default: the path it was written with)"},
			&cli.StringFlag{Name: "domain", Usage: "Cookie domain (default: the domain it was written with)"},
		},
		Action: removeAction,
	}
}

// ClearCommand returns the clear command.
func ClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Delete every key of the mechanism",
		Action: clearAction,
	}
}

// KeysCommand returns the keys command.
func KeysCommand() *cli.Command {
	return &cli.Command{
		Name:   "keys",
		Usage:  "List keys",
		Action: keysAction,
	}
}

// LengthCommand returns the length command.
func LengthCommand() *cli.Command {
	return &cli.Command{
		Name:   "length",
		Usage:  "Print the number of keys",
		Action: lengthAction,
	}
}

// itemResult is the result of get.
type itemResult struct {
	Kind  storage.Kind `json:"kind" yaml:"kind"`
	Key   string       `json:"key" yaml:"key"`
	Value any          `json:"value" yaml:"value"`
}

// Table prints the bare value so scripts can use get directly.
func (r itemResult) Table() *output.Table {
	t := &output.Table{}
	t.AddRow(output.Cell(r.Value))
	return t
}

// opResult reports a completed write.
type opResult struct {
	Kind storage.Kind `json:"kind" yaml:"kind"`
	Op   string       `json:"op" yaml:"op"`
	Key  string       `json:"key,omitempty" yaml:"key,omitempty"`
}

func (r opResult) Table() *output.Table {
	t := &output.Table{}
	if r.Key == "" {
		t.AddRow(fmt.Sprintf("%s: %s", r.Kind, r.Op))
	} else {
		t.AddRow(fmt.Sprintf("%s: %s %s", r.Kind, r.Op, r.Key))
	}
	return t
}

// keysResult is the result of keys.
type keysResult struct {
	Kind storage.Kind `json:"kind" yaml:"kind"`
	Keys []string     `json:"keys" yaml:"keys"`
}

func (r keysResult) Table() *output.Table {
	t := &output.Table{Headers: []string{"KEY"}}
	for _, k := range r.Keys {
		t.AddRow(k)
	}
	return t
}

// lengthResult is the result of length.
type lengthResult struct {
	Kind   storage.Kind `json:"kind" yaml:"kind"`
	Length int          `json:"length" yaml:"length"`
}

func (r lengthResult) Table() *output.Table {
	t := &output.Table{}
	t.AddRow(fmt.Sprint(r.Length))
	return t
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s: expected %s", c.Command.Name, c.Command.ArgsUsage)
	}
	return nil
}

func setAction(c *cli.Context) error {
	if err := requireArgs(c, 2); err != nil {
		return err
	}
	st := stateFrom(c)
	ws, err := st.facade(c)
	if err != nil {
		return err
	}

	key := c.Args().Get(0)
	var value any = c.Args().Get(1)
	if c.Bool("json") {
		if err := json.Unmarshal([]byte(c.Args().Get(1)), &value); err != nil {
			return fmt.Errorf("set: value is not valid JSON: %w", err)
		}
	}

	opts, err := cookieOptions(c)
	if err != nil {
		return err
	}
	if err := ws.SetItem(key, value, opts); err != nil {
		return err
	}
	logger.L(c.Context).Debug("item set", "kind", ws.Kind(), "key", key)
	return st.print(opResult{Kind: ws.Kind(), Op: "set", Key: key})
}

// cookieOptions builds storage options from the cookie flags. It returns
// nil when none is set.
func cookieOptions(c *cli.Context) (*storage.Options, error) {
	opts := &storage.Options{
		Path:   c.String("path"),
		Domain: c.String("domain"),
		Secure: c.Bool("secure"),
	}

	days, hours, minutes := c.Int("expires-days"), c.Int("expires-hours"), c.Int("expires-minutes")
	if at := c.String("expires"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("--expires: %w", err)
		}
		opts.Expires = &storage.Expiration{Date: t, Days: days, Hours: hours, Minutes: minutes}
	} else if days != 0 || hours != 0 || minutes != 0 {
		opts.Expires = storage.In(days, hours, minutes)
	}

	if *opts == (storage.Options{}) {
		return nil, nil
	}
	return opts, nil
}

func getAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	st := stateFrom(c)
	ws, err := st.facade(c)
	if err != nil {
		return err
	}

	key := c.Args().Get(0)
	var value any
	if c.Bool("raw") {
		value, err = ws.GetItemRaw(key)
	} else {
		value, err = ws.GetItem(key)
	}
	if err != nil {
		return err
	}
	return st.print(itemResult{Kind: ws.Kind(), Key: key, Value: value})
}

func removeAction(c *cli.Context) error {
	if err := requireArgs(c, 1); err != nil {
		return err
	}
	st := stateFrom(c)
	ws, err := st.facade(c)
	if err != nil {
		return err
	}

	key := c.Args().Get(0)
	var opts *storage.Options
	if c.IsSet("path") || c.IsSet("domain") {
		opts = &storage.Options{Path: c.String("path"), Domain: c.String("domain")}
	}
	if err := ws.RemoveItem(key, opts); err != nil {
		return err
	}
	logger.L(c.Context).Debug("item removed", "kind", ws.Kind(), "key", key)
	return st.print(opResult{Kind: ws.Kind(), Op: "removed", Key: key})
}

func clearAction(c *cli.Context) error {
	st := stateFrom(c)
	ws, err := st.facade(c)
	if err != nil {
		return err
	}
	if err := ws.Clear(); err != nil {
		return err
	}
	logger.L(c.Context).Debug("storage cleared", "kind", ws.Kind())
	return st.print(opResult{Kind: ws.Kind(), Op: "cleared"})
}

func keysAction(c *cli.Context) error {
	st := stateFrom(c)
	ws, err := st.facade(c)
	if err != nil {
		return err
	}
	return st.print(keysResult{Kind: ws.Kind(), Keys: ws.Keys()})
}

func lengthAction(c *cli.Context) error {
	st := stateFrom(c)
	ws, err := st.facade(c)
	if err != nil {
		return err
	}
	return st.print(lengthResult{Kind: ws.Kind(), Length: ws.Len()})
}
