// Package main provides the CLI entry point for tidyseal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/AntoineGS/tidyseal/internal/platform"
	"github.com/AntoineGS/tidyseal/internal/shell"
	"github.com/AntoineGS/tidyseal/internal/tui"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configDir      string // Override from --dir flag
	dbPath         string
	layout         string
	flatpakVersion string
	searchQuery    string
	verbose        bool
	logFile        *os.File
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tidyseal",
		Version: version,
		Short:   "Review and edit permissions of Flatpak applications",
		Long: `tidyseal lets you review and change the permissions granted to sandboxed
Flatpak applications, see which values are overridden from their defaults,
and reset them.

Configuration is stored in two places:
  ~/.config/tidyseal/config.yaml  - Points to your catalog repo (optional)
  <repo>/tidyseal.yaml            - Declares applications and permissions

Overrides are kept in ~/.local/share/tidyseal/overrides.db.

Run without arguments to start the interactive TUI.`,
		RunE:         runInteractive,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				logWriter := os.Stderr
				// When running interactively (TUI), write logs to a file to avoid corrupting the display
				if tui.IsTerminal() {
					logPath := filepath.Join(os.TempDir(), "tidyseal.log")
					f, err := os.Create(logPath) //nolint:gosec // fixed name in the temp dir
					if err == nil {
						logFile = f
						logWriter = f
						fmt.Fprintf(os.Stderr, "Verbose logs: %s\n", logPath)
					}
				}
				slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logFile != nil {
				_ = logFile.Close() //nolint:errcheck,gosec // best-effort cleanup
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configDir, "dir", "d", "", "Override catalog directory (ignores app config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Override store path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flatpakVersion, "flatpak-version", "", "Treat the host as running this Flatpak version (default: detected)")
	rootCmd.PersistentFlags().StringVar(&layout, "layout", "", "Window button layout, e.g. close:appmenu (default: desktop setting)")

	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Initialize app configuration",
		Long: `Initialize the app configuration by setting the path to your catalog repository.

This creates ~/.config/tidyseal/config.yaml with the path to your repo.
The repo may contain a tidyseal.yaml declaring applications and permissions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), args[0])
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Long:  `Display catalog and installed applications, optionally filtered by --search.`,
		Args:  cobra.NoArgs,
		RunE: withEnvironment(func(cmd *cobra.Command, env *environment, _ []string) error {
			writeList(cmd.OutOrStdout(), env.apps.All(), searchQuery)
			return nil
		}),
	}
	listCmd.Flags().StringVarP(&searchQuery, "search", "s", "", "Only list application IDs containing this text")

	showCmd := &cobra.Command{
		Use:   "show <app-id>",
		Short: "Show the permissions of an application",
		Long: `Display the permissions of an application grouped like the panel.
Overridden values are marked with '*', unsupported permissions with '!'.`,
		Args: cobra.ExactArgs(1),
		RunE: withEnvironment(runShow),
	}

	setCmd := &cobra.Command{
		Use:   "set <app-id> <property> <value>",
		Short: "Override a permission value",
		Args:  cobra.ExactArgs(3),
		RunE:  withEnvironment(runSet),
	}

	resetCmd := &cobra.Command{
		Use:   "reset <app-id>",
		Short: "Clear every override of an application",
		Args:  cobra.ExactArgs(1),
		RunE:  withEnvironment(runReset),
	}

	diffCmd := &cobra.Command{
		Use:   "diff <app-id>",
		Short: "Show overridden values as a diff against the defaults",
		Args:  cobra.ExactArgs(1),
		RunE:  withEnvironment(runDiff),
	}

	rootCmd.AddCommand(initCmd, listCmd, showCmd, setCmd, resetCmd, diffCmd)

	return rootCmd
}

func withEnvironment(fn func(*cobra.Command, *environment, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		env, err := openEnvironment(platform.Detect())
		if err != nil {
			return err
		}
		defer func() {
			if cerr := env.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		return fn(cmd, env, args)
	}
}

func runShow(cmd *cobra.Command, env *environment, args []string) error {
	appID := args[0]
	if err := env.knownApplication(appID); err != nil {
		return err
	}

	env.perms.SetSelectedApplication(appID)

	title := appID
	if app, ok := env.apps.Find(appID); ok && app.DisplayName() != appID {
		title = fmt.Sprintf("%s (%s)", app.DisplayName(), appID)
	}

	writeShow(cmd.OutOrStdout(), title, env.perms.All(), env.perms.Defaults())

	return env.perms.Err()
}

func runSet(cmd *cobra.Command, env *environment, args []string) error {
	appID, property, value := args[0], args[1], args[2]
	if err := env.knownApplication(appID); err != nil {
		return err
	}

	env.perms.SetSelectedApplication(appID)
	if err := env.perms.Set(property, value); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s=%s for %s\n", property, value, appID)

	return nil
}

func runReset(cmd *cobra.Command, env *environment, args []string) error {
	appID := args[0]
	if err := env.knownApplication(appID); err != nil {
		return err
	}

	env.perms.SetSelectedApplication(appID)
	if !env.perms.Overridden() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s has no overrides\n", appID)
		return nil
	}

	env.perms.Reset()
	if err := env.perms.Err(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Reset overrides of %s\n", appID)

	return nil
}

func runDiff(cmd *cobra.Command, env *environment, args []string) error {
	appID := args[0]
	if err := env.knownApplication(appID); err != nil {
		return err
	}

	env.perms.SetSelectedApplication(appID)
	fmt.Fprint(cmd.OutOrStdout(), generateDiff(appID, env.perms.All(), env.perms.Defaults()))

	return env.perms.Err()
}

func runInteractive(_ *cobra.Command, _ []string) error {
	// Check if we're in a terminal
	if !tui.IsTerminal() {
		return fmt.Errorf("interactive mode requires a terminal; use subcommands (list, show, set, reset, diff) for non-interactive use")
	}

	env, err := openEnvironment(platform.Detect())
	if err != nil {
		return err
	}
	defer env.Close() //nolint:errcheck // store errors are shown in the TUI

	decoration := layout
	if decoration == "" {
		decoration = env.appCfg.DecorationLayout
	}
	settings := platform.NewSettings(decoration, slog.Default())

	ctrl := shell.New(shell.Deps{
		Applications: env.apps,
		Permissions:  env.perms,
		Settings:     settings,
		Logger:       slog.Default(),
	})
	ctrl.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return tui.Run(ctx, ctrl, settings, env.perms.Err)
}
