package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dukerupert/sharenote/internal/config"
	"github.com/dukerupert/sharenote/internal/logging"
	"github.com/dukerupert/sharenote/internal/notes"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	out    io.Writer
	errOut io.Writer
	getenv func(string) string

	configPath string
	server     string
	timeout    time.Duration
	verbose    bool

	cfg    config.Client
	client *notes.Client
	logger *slog.Logger
}

func newRootCmd(out, errOut io.Writer, getenv func(string) string) *cobra.Command {
	a := &app{out: out, errOut: errOut, getenv: getenv}

	root := &cobra.Command{
		Use:   "notes",
		Short: "Create, edit, delete and share notes on a sharenote server",
		Long: `notes is a command-line client for a sharenote note store.
Every change is sent to the server first; nothing is kept locally.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sharenote/config.yaml)")
	pf.StringVar(&a.server, "server", "", "note store URL (overrides config and SHARENOTE_SERVER)")
	pf.DurationVar(&a.timeout, "timeout", 0, "request timeout (overrides config)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newEditCmd(a),
		newDeleteCmd(a),
		newShareCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	level := "warn"
	if a.verbose {
		level = "debug"
	}
	a.logger = logging.Setup(a.errOut, level)

	path := a.configPath
	if path == "" {
		p, err := config.DefaultClientPath()
		if err != nil {
			a.logger.Debug("no default config path", "error", err)
		}
		path = p
	}
	a.configPath = path

	cfg, err := config.LoadClient(path, a.getenv)
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.Server = a.server
	}
	if a.timeout > 0 {
		cfg.Timeout = a.timeout
	}
	a.cfg = cfg
	a.client = notes.NewClient(cfg.Server, cfg.Timeout)
	a.logger.Debug("client configured", "server", cfg.Server, "timeout", cfg.Timeout)
	return nil
}

// session returns a Session already loaded from the store.
func (a *app) session(ctx context.Context) (*notes.Session, error) {
	s := notes.NewSession(a.client, a.logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
