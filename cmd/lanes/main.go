package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/google/uuid"
	"github.com/hylla/lanes/internal/adapters/metrics"
	serveradapter "github.com/hylla/lanes/internal/adapters/server"
	servercommon "github.com/hylla/lanes/internal/adapters/server/common"
	"github.com/hylla/lanes/internal/adapters/storage/sqlite"
	"github.com/hylla/lanes/internal/app"
	"github.com/hylla/lanes/internal/config"
	"github.com/hylla/lanes/internal/platform"
	"github.com/hylla/lanes/internal/tui"
	"github.com/hylla/lanes/internal/widget"
	"github.com/spf13/cobra"
)

// version stores a package-level helper value.
var version = "dev"

// program represents program data used by this package.
type program interface {
	Run() (tea.Model, error)
}

// programFactory stores a package-level helper value.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// serveCommandRunner starts the HTTP+MCP serve flow.
var serveCommandRunner = func(ctx context.Context, cfg serveradapter.Config, deps serveradapter.Dependencies) error {
	return serveradapter.Run(ctx, cfg, deps)
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	appName    string
	devMode    bool
}

// runtimeEnv is the resolved startup state for one command.
type runtimeEnv struct {
	appName    string
	devMode    bool
	configPath string
	paths      platform.Paths
	cfg        config.Config
	logger     *runtimeLogger
}

// main handles main.
func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run runs the requested command flow.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if args == nil {
		// cobra falls back to os.Args when handed nil.
		args = []string{}
	}
	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// newRootCommand builds the lanes command tree.
func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{appName: "lanes", devMode: version == "dev"}
	if envDev, ok := parseBoolEnv("LANES_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("LANES_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:           "lanes",
		Short:         "A two-lane task board with drag-and-drop",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(opts, stderr)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev) and the dev log file")

	root.AddCommand(newServeCommand(opts, stderr), newPathsCommand(opts, stdout))
	return root
}

// newServeCommand builds `lanes serve`.
func newServeCommand(opts *rootOptions, stderr io.Writer) *cobra.Command {
	var httpBind string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP, MCP, and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts, httpBind, stderr)
		},
	}
	cmd.Flags().StringVar(&httpBind, "http", "", "listen address (overrides server.http_bind)")
	return cmd
}

// newPathsCommand builds `lanes paths`.
func newPathsCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			paths, err := platform.DefaultPathsWithOptions(platform.Options{
				AppName: opts.appName,
				DevMode: opts.devMode,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", resolveConfigPath(opts.configPath, paths))
			_, _ = fmt.Fprintf(stdout, "log_dir: %s\n", paths.LogDir)
			return nil
		},
	}
}

// resolveConfigPath prefers the flag over the resolved path, which already
// honors LANES_CONFIG.
func resolveConfigPath(flagPath string, paths platform.Paths) string {
	if path := strings.TrimSpace(flagPath); path != "" {
		return path
	}
	return paths.ConfigPath
}

// loadRuntime resolves paths, config, and logging for one command.
func loadRuntime(opts *rootOptions, stderr io.Writer, command string) (*runtimeEnv, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return nil, err
	}
	configPath := resolveConfigPath(opts.configPath, paths)
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, paths.LogDir, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "tui" {
		// Keep TUI rendering clean: runtime logs stay in the dev-file sink while the board is active.
		logger.SetConsoleEnabled(false)
	}
	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "log_dir", paths.LogDir)
	logger.Info("configuration loaded", "config_path", configPath, "log_level", cfg.Logging.Level)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}
	return &runtimeEnv{
		appName:    opts.appName,
		devMode:    opts.devMode,
		configPath: configPath,
		paths:      paths,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// closeRuntime closes the log sinks and reports failures when the console is live.
func closeRuntime(env *runtimeEnv, stderr io.Writer) {
	if closeErr := env.logger.Close(); closeErr != nil && env.logger.shouldLogToSink(env.logger.consoleSink) {
		_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", closeErr)
	}
}

// openLedger opens the in-memory activity ledger.
func openLedger(logger *runtimeLogger) (*sqlite.Repository, error) {
	logger.Info("opening sqlite activity ledger", "mode", "memory")
	repo, err := sqlite.OpenInMemory()
	if err != nil {
		logger.Error("sqlite open failed", "err", err)
		return nil, fmt.Errorf("open sqlite activity ledger: %w", err)
	}
	logger.Info("sqlite activity ledger ready", "migrations", "ensured")
	return repo, nil
}

// closeLedger closes the activity ledger.
func closeLedger(repo *sqlite.Repository, logger *runtimeLogger) {
	if closeErr := repo.Close(); closeErr != nil {
		logger.Warn("sqlite close failed", "err", closeErr)
	}
}

// runTUI runs the interactive board.
func runTUI(opts *rootOptions, stderr io.Writer) error {
	env, err := loadRuntime(opts, stderr, "tui")
	if err != nil {
		return err
	}
	logger := env.logger
	defer closeRuntime(env, stderr)

	repo, err := openLedger(logger)
	if err != nil {
		return err
	}
	defer closeLedger(repo, logger)

	store := app.NewStore(uuid.NewString, time.Now)
	tracker := app.NewActivityTracker(repo, time.Now, app.WithActivityLogger(logger.Component("activity")))
	tracker.Attach(store)

	page, err := widget.NewPage(store, widget.WithLogger(logger.Component("widget")))
	if err != nil {
		logger.Error("board page construction failed", "err", err)
		return fmt.Errorf("build board page: %w", err)
	}
	logger.Debug("board page mounted", "lanes", len(page.Lanes()))

	m := tui.NewModel(
		page,
		tui.WithBoardConfig(tui.BoardConfig{
			ShowDescription:  env.cfg.Board.ShowDescription,
			WrapDescriptions: env.cfg.Board.WrapDescriptions,
		}),
		tui.WithKeyConfig(tui.KeyConfig{
			AddItem:     env.cfg.Keys.AddItem,
			Grab:        env.cfg.Keys.Grab,
			CopyID:      env.cfg.Keys.CopyID,
			ActivityLog: env.cfg.Keys.ActivityLog,
		}),
		tui.WithMarkdownStyle(env.cfg.Board.MarkdownStyle),
		tui.WithActivityReader(repo),
		tui.WithLogger(logger.Component("tui")),
	)
	logger.Info("starting tui program loop")
	_, err = programFactory(m).Run()
	if err != nil {
		logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	logger.Info("command flow complete", "command", "tui")
	return nil
}

// runServe runs the HTTP, MCP, and metrics surfaces over a fresh store.
func runServe(ctx context.Context, opts *rootOptions, httpBind string, stderr io.Writer) error {
	env, err := loadRuntime(opts, stderr, "serve")
	if err != nil {
		return err
	}
	logger := env.logger
	defer closeRuntime(env, stderr)

	repo, err := openLedger(logger)
	if err != nil {
		return err
	}
	defer closeLedger(repo, logger)

	collector := metrics.NewCollector()
	store := app.NewStore(uuid.NewString, time.Now)
	store.Subscribe(collector.Observe)
	tracker := app.NewActivityTracker(
		repo,
		time.Now,
		app.WithActivityLogger(logger.Component("activity")),
		app.WithEventSink(collector.RecordEvent),
	)
	tracker.Attach(store)
	adapter := servercommon.NewAppServiceAdapter(app.NewService(store, repo))

	serverCfg := serveradapter.Config{
		HTTPBind:        env.cfg.Server.HTTPBind,
		APIEndpoint:     env.cfg.Server.APIEndpoint,
		MCPEndpoint:     env.cfg.Server.MCPEndpoint,
		MetricsEndpoint: env.cfg.Server.MetricsEndpoint,
		ServerName:      env.appName,
		ServerVersion:   version,
	}
	if bind := strings.TrimSpace(httpBind); bind != "" {
		serverCfg.HTTPBind = bind
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("command flow start", "command", "serve", "http_bind", serverCfg.HTTPBind)
	if err := serveCommandRunner(ctx, serverCfg, serveradapter.Dependencies{
		Board:    adapter,
		Activity: adapter,
		Metrics:  collector.Handler(),
	}); err != nil {
		logger.Error("command flow failed", "command", "serve", "err", err)
		return fmt.Errorf("run serve command: %w", err)
	}
	logger.Info("command flow complete", "command", "serve")
	return nil
}

// parseBoolEnv parses input into a normalized form.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
