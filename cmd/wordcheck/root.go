package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/bastiangx/wordcheck/internal/cli"
	"github.com/bastiangx/wordcheck/internal/logger"
	"github.com/bastiangx/wordcheck/internal/metrics"
	"github.com/bastiangx/wordcheck/pkg/check"
	"github.com/bastiangx/wordcheck/pkg/config"
	"github.com/bastiangx/wordcheck/pkg/console"
	"github.com/bastiangx/wordcheck/pkg/dispatch"
	"github.com/bastiangx/wordcheck/pkg/report"
	"github.com/bastiangx/wordcheck/pkg/server"
)

const (
	Version = "0.1.0"
	AppName = "wordcheck"
	gh      = "https://github.com/bastiangx/wordcheck"
)

// options are the persistent flags.
type options struct {
	configPath string
	debug      bool
}

func newRootCommand() *cobra.Command {
	var opts options
	var showVersion bool

	rootCmd := &cobra.Command{
		Use:           AppName,
		Short:         "Check documents against reference word lists",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				printVersion()
				return nil
			}
			return runMenu(cmd.Context(), opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file path (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "Toggle debug logs on stderr")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show current version")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Read msgpack check requests on stdin and write responses to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	})

	return rootCmd
}

// session is what both modes share once config is loaded.
type session struct {
	cfg     *config.Config
	console *console.Console
	metrics *metrics.Metrics
}

func setup(ctx context.Context, opts options) *session {
	logger.Setup("warn", opts.debug)
	cfg, path := config.LoadConfigWithPriority(opts.configPath)
	logger.Setup(cfg.Log.Level, opts.debug)
	log.Debugf("Using config: %s", config.ActivePath(path))

	rt := &session{cfg: cfg, console: console.New(os.Stdout)}
	if cfg.Metrics.Addr != "" {
		rt.metrics = metrics.New()
		go func() {
			if err := rt.metrics.Serve(ctx, cfg.Metrics.Addr); err != nil {
				log.Errorf("Metrics endpoint: %v", err)
			}
		}()
	}
	return rt
}

func (rt *session) dispatcher(reporter check.Reporter) *dispatch.Dispatcher {
	return dispatch.New(dispatch.Options{
		InitialSlots: rt.cfg.Dispatch.InitialSlots,
		MaxSlots:     rt.cfg.Dispatch.MaxSlots,
		Check: check.Options{
			StrictOrder: rt.cfg.Index.StrictOrder,
			Memoize:     rt.cfg.Check.Memoize,
		},
	}, reporter, rt.metrics)
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runMenu(parent context.Context, opts options) error {
	ctx, stop := signalContext(parent)
	defer stop()

	rt := setup(ctx, opts)
	reporter := report.NewText(rt.console, report.Options{
		Style: rt.cfg.Report.Style,
		Color: rt.cfg.Report.Color && isTerminal(os.Stdout),
	})
	return cli.NewMenu(os.Stdin, rt.console, rt.dispatcher(reporter)).Run(ctx)
}

func runServe(parent context.Context, opts options) error {
	ctx, stop := signalContext(parent)
	defer stop()

	rt := setup(ctx, opts)
	srv := server.NewServer(os.Stdin, rt.console)
	return srv.Serve(ctx, rt.dispatcher(srv))
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ wordcheck ] Finds the most frequent near-misses in your documents")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
