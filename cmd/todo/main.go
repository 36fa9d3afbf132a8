package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/todo/internal/adapters/storage/sqlite"
	"github.com/evanschultz/todo/internal/adapters/storage/textfile"
	"github.com/evanschultz/todo/internal/app"
	"github.com/evanschultz/todo/internal/config"
	"github.com/evanschultz/todo/internal/editor"
	"github.com/evanschultz/todo/internal/layout"
	"github.com/evanschultz/todo/internal/listview"
	"github.com/evanschultz/todo/internal/platform"
	"github.com/evanschultz/todo/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is stamped at build time.
var version = "dev"

// program is the part of *tea.Program the command needs.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the interactive program; tests swap it for a scripted one.
var programFactory = func(ctx context.Context, m tea.Model) program {
	return tea.NewProgram(m, tea.WithContext(ctx))
}

// interactiveTerminal reports whether stdin and stdout are both terminals.
var interactiveTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// terminalWidth returns the stdout width, or fallback when it cannot be read.
var terminalWidth = func(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes the root command. fang renders any returned error on stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

// rootOptions holds the persistent flag values shared by every command.
type rootOptions struct {
	configPath    string
	appName       string
	devMode       bool
	pendingFile   string
	completedFile string
	backend       string
	dbPath        string
	addText       string
	printList     string
}

// newRootCmd wires the interactive command, its one-shot flags and the helper subcommands.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("TODO_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultApp := platform.DefaultAppName
	if envApp := strings.TrimSpace(os.Getenv("TODO_APP_NAME")); envApp != "" {
		defaultApp = envApp
	}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Dual-pane terminal todo list",
		Long:  "Edit a pending and a completed list side by side. Items are stored one per line.",
		Example: strings.TrimSpace(`
  # Start the interactive editor
  todo

  # Append to the pending list without opening the editor
  todo --add "buy milk"

  # Dump the completed list
  todo --print completed
`),
		// One positional arg is accepted as the list name for a bare --print.
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if !cmd.Flags().Changed("print") || opts.printList != string(app.ListPending) {
					return fmt.Errorf("unexpected argument %q", args[0])
				}
				opts.printList = args[0]
			}
			return runRoot(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.appName, "app", defaultApp, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev) and the dev log file")
	flags.StringVar(&opts.pendingFile, "pending-file", "", "pending list file (text backend)")
	flags.StringVar(&opts.completedFile, "completed-file", "", "completed list file (text backend)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend: text or sqlite")
	flags.StringVar(&opts.dbPath, "db", "", "path to sqlite database (sqlite backend)")

	cmd.Flags().StringVar(&opts.addText, "add", "", "append an item to the pending list and exit")
	cmd.Flags().StringVar(&opts.printList, "print", "", "print a list (pending or completed) and exit")
	cmd.Flags().Lookup("print").NoOptDefVal = string(app.ListPending)
	cmd.MarkFlagsMutuallyExclusive("add", "print")

	cmd.AddCommand(newPathsCmd(opts), newKeysCmd(opts), newInitCmd(opts), newPaletteCmd(opts))
	return cmd
}

// runtimeEnv is the resolved state every command flow starts from.
type runtimeEnv struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *cmdLogger
}

// close releases the dev log file.
func (e *runtimeEnv) close(stderr io.Writer) {
	if err := e.logger.Close(); err != nil && e.logger.console {
		_, _ = fmt.Fprintf(stderr, "warning: close runtime log sink: %v\n", err)
	}
}

// resolvePaths resolves platform paths and the config path. Precedence for the config
// path is --config, then TODO_CONFIG, then the platform default.
func resolvePaths(opts *rootOptions) (platform.Paths, string, error) {
	paths, err := platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
	if err != nil {
		return platform.Paths{}, "", err
	}
	configPath := strings.TrimSpace(opts.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TODO_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}
	return paths, configPath, nil
}

// resolveRuntime loads config and applies overrides. List paths come from the config
// file, then TODO_LIST / TODO_DONE_LIST, then flags. Console logging goes to stderr only
// when console is set.
func resolveRuntime(opts *rootOptions, stderr io.Writer, console bool) (*runtimeEnv, error) {
	paths, configPath, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	defaults := config.Default(paths.PendingPath, paths.CompletedPath, paths.DBPath)
	cfg, err := config.Load(configPath, defaults)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	logger, err := newCmdLogger(stderr, logSetup{
		appName: opts.appName,
		console: console,
		devMode: opts.devMode,
		dataDir: paths.DataDir,
		cfg:     cfg.Logging,
		now:     time.Now,
	})
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir)
	logger.Debug("configuration loaded", "backend", cfg.Storage.Backend, "log_level", cfg.Logging.Level)
	if devPath := logger.Path(); devPath != "" {
		logger.Debug("dev file logging enabled", "path", devPath)
	}
	return &runtimeEnv{
		paths:      paths,
		configPath: configPath,
		cfg:        cfg,
		logger:     logger,
	}, nil
}

// applyOverrides layers environment variables and then flags over the loaded config.
func applyOverrides(cfg *config.Config, opts *rootOptions) {
	if v := strings.TrimSpace(os.Getenv("TODO_LIST")); v != "" {
		cfg.Storage.PendingPath = v
	}
	if v := strings.TrimSpace(os.Getenv("TODO_DONE_LIST")); v != "" {
		cfg.Storage.CompletedPath = v
	}
	if v := strings.TrimSpace(opts.pendingFile); v != "" {
		cfg.Storage.PendingPath = v
	}
	if v := strings.TrimSpace(opts.completedFile); v != "" {
		cfg.Storage.CompletedPath = v
	}
	if v := strings.TrimSpace(opts.backend); v != "" {
		cfg.Storage.Backend = config.Backend(strings.ToLower(v))
	}
	if v := strings.TrimSpace(opts.dbPath); v != "" {
		cfg.Storage.DBPath = v
	}
}

// openStore opens the configured backend. The returned close func is never nil.
func openStore(cfg config.StorageConfig, logger *cmdLogger) (app.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		logger.Info("opening sqlite repository", "db_path", cfg.DBPath)
		repo, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			logger.Error("sqlite open failed", "db_path", cfg.DBPath, "err", err)
			return nil, nil, fmt.Errorf("open sqlite repository: %w", err)
		}
		return repo, repo.Close, nil
	default:
		logger.Debug("opening text store", "pending_path", cfg.PendingPath, "completed_path", cfg.CompletedPath)
		store, err := textfile.New(cfg.PendingPath, cfg.CompletedPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open text store: %w", err)
		}
		return store, func() error { return nil }, nil
	}
}

// runRoot dispatches between --add, --print, the non-terminal fallback and the
// interactive session.
func runRoot(cmd *cobra.Command, opts *rootOptions) error {
	flags := cmd.Flags()
	interactive := !flags.Changed("add") && !flags.Changed("print") && interactiveTerminal()
	env, err := resolveRuntime(opts, cmd.ErrOrStderr(), !interactive)
	if err != nil {
		return err
	}
	defer env.close(cmd.ErrOrStderr())

	store, closeStore, err := openStore(env.cfg.Storage, env.logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			env.logger.Warn("store close failed", "err", closeErr)
		}
	}()
	svc := app.NewService(store)
	ctx := cmd.Context()

	switch {
	case flags.Changed("add"):
		return runFlow(env.logger, "add", func() error {
			item, err := svc.Add(ctx, opts.addText)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added: %s\n", item)
			return err
		})
	case flags.Changed("print"):
		return runFlow(env.logger, "print", func() error {
			kind, err := app.ParseListKind(opts.printList)
			if err != nil {
				return err
			}
			return svc.Print(ctx, kind, cmd.OutOrStdout())
		})
	case !interactive:
		env.logger.Debug("not a terminal, printing pending list")
		return runFlow(env.logger, "print", func() error {
			return svc.Print(ctx, app.ListPending, cmd.OutOrStdout())
		})
	default:
		return runFlow(env.logger, "tui", func() error {
			return runSession(ctx, env, svc)
		})
	}
}

// runFlow wraps one command flow with start/complete/failed log events.
func runFlow(logger *cmdLogger, name string, fn func() error) error {
	logger.Info("command flow start", "command", name)
	if err := fn(); err != nil {
		logger.Error("command flow failed", "command", name, "err", err)
		return fmt.Errorf("run %s command: %w", name, err)
	}
	logger.Info("command flow complete", "command", name)
	return nil
}

// runSession loads both lists, runs the editor and saves whatever it returns.
func runSession(ctx context.Context, env *runtimeEnv, svc *app.Service) error {
	lists, err := svc.Load(ctx)
	if err != nil {
		return err
	}
	modelOpts, err := modelOptions(env.cfg)
	if err != nil {
		return err
	}
	modelOpts = append(modelOpts, tui.WithLogger(env.logger))
	m := tui.NewModel(lists, modelOpts...)

	env.logger.Info("starting tui program loop", "pending", len(lists.Pending), "completed", len(lists.Completed))
	final, err := programFactory(ctx, m).Run()
	if err != nil {
		env.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}

	finalModel, ok := final.(tui.Model)
	if !ok {
		return errors.New("tui program returned an unexpected model")
	}
	out := finalModel.Lists()
	if err := svc.Save(ctx, out); err != nil {
		return err
	}
	env.logger.Info("lists saved", "pending", len(out.Pending), "completed", len(out.Completed))
	return nil
}

// parseBoolEnv reads a boolean environment variable; ok is false when it is unset or invalid.
func parseBoolEnv(name string) (value bool, ok bool) {
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

// modelOptions maps config onto tui model options.
func modelOptions(cfg config.Config) ([]tui.Option, error) {
	palette, err := cfg.PaletteColors()
	if err != nil {
		return nil, err
	}
	titleColor, err := cfg.TitleColor()
	if err != nil {
		return nil, err
	}
	return []tui.Option{
		tui.WithKeyConfig(toTUIKeyConfig(cfg.Keys)),
		tui.WithPanes(editor.Panes{
			Pending:   listview.Pane{Title: cfg.Display.PendingTitle, Checkbox: cfg.Display.PendingCheckbox},
			Completed: listview.Pane{Title: cfg.Display.CompletedTitle, Checkbox: cfg.Display.CompletedCheckbox},
		}),
		tui.WithStyle(listview.Style{
			CheckboxWidth: cfg.Layout.CheckboxWidth,
			Palette:       palette,
			TitleColor:    titleColor,
		}),
		tui.WithLayoutPolicy(layout.Policy{SinglePaneMaxWidth: cfg.Layout.SinglePaneMaxWidth}),
	}, nil
}

// toTUIKeyConfig maps persisted key overrides into the model's key config.
func toTUIKeyConfig(k config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		Quit:          k.Quit,
		Confirm:       k.Confirm,
		Delete:        k.Delete,
		ToggleFocus:   k.ToggleFocus,
		NewItem:       k.NewItem,
		NewItemBefore: k.NewItemBefore,
		NewItemAfter:  k.NewItemAfter,
		Edit:          k.Edit,
		MoveUp:        k.MoveUp,
		MoveDown:      k.MoveDown,
		MoveToTop:     k.MoveToTop,
		MoveToBottom:  k.MoveToBottom,
		DragUp:        k.DragUp,
		DragDown:      k.DragDown,
		Sort:          k.Sort,
		Copy:          k.Copy,
	}
}

// newPathsCmd prints the resolved config, list and database locations.
func newPathsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Print resolved config, list and database paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveRuntime(opts, cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer env.close(cmd.ErrOrStderr())

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(out, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(out, "config: %s\n", env.configPath)
			_, _ = fmt.Fprintf(out, "data_dir: %s\n", env.paths.DataDir)
			_, _ = fmt.Fprintf(out, "backend: %s\n", env.cfg.Storage.Backend)
			_, _ = fmt.Fprintf(out, "pending: %s\n", env.cfg.Storage.PendingPath)
			_, _ = fmt.Fprintf(out, "completed: %s\n", env.cfg.Storage.CompletedPath)
			_, _ = fmt.Fprintf(out, "db: %s\n", env.cfg.Storage.DBPath)
			return nil
		},
	}
}

// newKeysCmd prints the effective key bindings as rendered markdown.
func newKeysCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective key bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveRuntime(opts, cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer env.close(cmd.ErrOrStderr())

			rendered := tui.RenderKeyReference(toTUIKeyConfig(env.cfg.Keys), terminalWidth(80), interactiveTerminal())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

// newInitCmd writes the effective configuration to the config path.
func newInitCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := resolveRuntime(opts, cmd.ErrOrStderr(), true)
			if err != nil {
				return err
			}
			defer env.close(cmd.ErrOrStderr())

			return runFlow(env.logger, "init", func() error {
				if err := config.Write(env.configPath, env.cfg, force); err != nil {
					if errors.Is(err, os.ErrExist) {
						return fmt.Errorf("%w (use --force to replace it)", err)
					}
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote config: %s\n", env.configPath)
				return err
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing config file")
	return cmd
}
