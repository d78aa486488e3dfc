package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/countdown/internal/config"
	"github.com/npratt/countdown/internal/countdown"
	"github.com/npratt/countdown/internal/shutdown"
	"github.com/npratt/countdown/internal/tui"
)

var version = "dev"

// sessionLength is how long a session runs on the loop, used as the default
// render duration.
const sessionLength = 25 * time.Minute

func main() {
	logLevel := &slog.LevelVar{}
	logger := NewJSONLogger(os.Stderr, logLevel)

	viper.SetEnvPrefix("COUNTDOWN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "countdown",
		Short: "A 25 minute focus timer for the terminal",
		Long: `countdown runs a 25 minute focus session. A minutes counter and a seconds
counter tick down independently and, when time is up, a "Take a Break"
message is shown.

Every display write is published as an event and appended to a JSON lines
log that the events command can replay or follow.`,
		SilenceUsage: true,
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .countdown/config.yaml)")
	rootCmd.PersistentFlags().String(FlagLogFile, "", "Event log path")

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// loadConfig applies the verbose flag and CLI overrides on top of the
	// layered config files.
	loadConfig := func(cmd *cobra.Command) (*config.Config, error) {
		if viper.GetBool(FlagVerbose) {
			logLevel.Set(slog.LevelDebug)
			logger.Debug("verbose logging enabled")
		}

		cfg, err := config.LoadConfig(viper.GetViper())
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed(FlagLogFile) {
			cfg.Paths.Log = viper.GetString(FlagLogFile)
		}
		if cmd.Flags().Changed(FlagAutoStart) {
			cfg.TUI.AutoStart = viper.GetBool(FlagAutoStart)
		}
		return cfg, nil
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("countdown %s\n", version)
		},
	}

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Run a focus session",
		Long: `Run a focus session in real time.

With a terminal attached the TUI opens showing 25:00; press 's' to start a
session and 'q' to quit. Without a terminal (or with --tui=false) a session
starts immediately and every display write is printed until time is up.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Determine TUI mode: explicit flag > auto-detect from TTY
			tuiEnabled := viper.GetBool(FlagTUI)
			if !cmd.Flags().Changed(FlagTUI) {
				tuiEnabled = term.IsTerminal(int(os.Stdout.Fd()))
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			if !tuiEnabled {
				logger.Info("countdown starting", "version", version, "mode", "console", "log_file", cfg.Paths.Log)
				a := newApp(cfg, logger)
				if err := a.startLogSink(ctx); err != nil {
					return err
				}
				return shutdown.RunWithGracefulShutdown(ctx, logger, cfg.Shutdown.Timeout,
					func(runCtx context.Context) error {
						return runConsole(runCtx, a, os.Stdout)
					},
					nil,
				)
			}

			// TUI mode: redirect logger to file before creating the engine
			tuiLog, err := SetupTUILogger(cfg.Paths.DebugLogDir, logLevel, cfg.LogRotation)
			if err != nil {
				return err
			}
			defer func() { _ = tuiLog.Close() }()
			slog.SetDefault(tuiLog.Logger)

			tuiLog.Logger.Info("countdown starting", "version", version, "mode", "tui", "log_file", cfg.Paths.Log)

			a := newApp(cfg, tuiLog.Logger)
			tuiEvents := a.router.SubscribeBuffered(cfg.Events.TUIBufferSize)
			if err := a.startLogSink(ctx); err != nil {
				return err
			}

			loopCtx, loopCancel := context.WithCancel(ctx)
			defer loopCancel()

			a.initialize()
			loopDone := make(chan error, 1)
			go func() {
				loopDone <- a.runLoop(loopCtx)
			}()

			tuiApp := tui.New(tuiEvents,
				tui.WithOnStart(a.requestStart),
				tui.WithOnQuit(loopCancel),
				tui.WithAltScreen(cfg.TUI.AltScreen),
				tui.WithAutoStart(cfg.TUI.AutoStart),
			)

			// Run TUI in foreground (blocks until quit)
			tuiErr := tuiApp.Run()

			loopCancel()
			loopErr := <-loopDone
			a.close()

			if tuiErr != nil {
				return tuiErr
			}
			return loopErr
		},
	}

	startCmd.Flags().Bool(FlagTUI, false, "Enable terminal UI (default: auto-detect)")
	startCmd.Flags().Bool(FlagAutoStart, false, "Start a session as soon as the TUI opens")
	startCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Print a whole session instantly on virtual time",
		Long: `Run a session on a virtual clock and print every display write with its
offset from the start. A full session renders in milliseconds.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			duration := viper.GetDuration(FlagDuration)
			if duration < 0 {
				return fmt.Errorf("--%s must not be negative", FlagDuration)
			}
			return renderSession(os.Stdout, logger, renderOptions{
				Slots:    cfg.Surface.Slots,
				Duration: duration,
				Final:    viper.GetBool(FlagFinal),
			})
		},
	}

	renderCmd.Flags().Duration(FlagDuration, sessionLength, "Virtual time to run after starting the session")
	renderCmd.Flags().Bool(FlagFinal, false, "Print only the final display state")
	renderCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "View recent events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if viper.GetBool(FlagFollow) {
				return tailFollow(cmd.Context(), os.Stdout, cfg.Paths.Log, 100*time.Millisecond)
			}
			return tailLast(os.Stdout, cfg.Paths.Log, viper.GetInt(FlagCount))
		},
	}

	eventsCmd.Flags().Bool(FlagFollow, false, "Follow event stream (like tail -f)")
	eventsCmd.Flags().Int(FlagCount, 20, "Number of recent events to show (0 = all)")
	eventsCmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(out)
			return err
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(configCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		if isSlotMissing(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// isSlotMissing reports whether err came from a write to a slot the display
// does not expose.
func isSlotMissing(err error) bool {
	return errors.Is(err, countdown.ErrSlotMissing)
}
