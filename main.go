package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"keyclaim/app"
	"keyclaim/config"
	"keyclaim/log"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version    = "0.1.0"
	configFlag string
	noLogFlag  bool
	copyFlag   bool
	widthFlag  int

	rootCmd = &cobra.Command{
		Use:           "keyclaim",
		Short:         "keyclaim - a terminal UI whose regions share keys through a priority chain",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("keyclaim needs an interactive terminal; use 'keyclaim send' for scripted input")
			}

			cfg, err := setup()
			if err != nil {
				return err
			}
			defer log.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			h := app.New(cfg, config.LoadState(""))
			if w, ht, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				h.SetSize(w, ht)
			}
			runErr := app.Run(ctx, h)
			if err := h.Close(); err != nil {
				log.WarningLog.Printf("failed to close app: %v", err)
			}
			return runErr
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Print every hotkey with its claims in dispatch order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer log.Close()

			h := app.New(cfg, nil)
			defer h.Close()

			out := h.Help().GenerateChainHelp()
			fmt.Fprintln(cmd.OutOrStdout(), out)
			for _, issue := range h.Help().ValidateChain() {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", issue)
			}
			if copyFlag {
				if err := clipboard.WriteAll(out); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
			}
			return nil
		},
	}

	sendCmd = &cobra.Command{
		Use:   "send <key>...",
		Short: "Dispatch raw keys (e.g. esc, ctrl+b, L) without a terminal and print the outcome",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer log.Close()

			h := app.New(cfg, nil)
			defer h.Close()
			h.SetSize(widthFlag, 30)

			w := cmd.OutOrStdout()
			for _, raw := range args {
				res := h.Send(raw)
				switch {
				case !res.Mapped:
					fmt.Fprintf(w, "#%d %-8s unmapped\n", res.Event.Seq, raw)
				case res.Handled:
					fmt.Fprintf(w, "#%d %-8s %s handled by %s (evaluated %s)\n",
						res.Event.Seq, raw, res.Key, res.OwnerID, strings.Join(res.Evaluated, ", "))
				default:
					fmt.Fprintf(w, "#%d %-8s %s not handled (evaluated %s)\n",
						res.Event.Seq, raw, res.Key, strings.Join(res.Evaluated, ", "))
				}
				for _, e := range res.Errors {
					fmt.Fprintf(w, "   error: %v\n", e)
				}
				if h.Quitting() {
					break
				}
			}
			fmt.Fprintf(w, "layout: %s\n", h.Layout().Mode())
			if f := h.Route().Failure(); f != nil {
				fmt.Fprintf(w, "route failed: %v\n", f)
			}
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			defer log.Close()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Fprintf(cmd.OutOrStdout(), "Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Fprintf(cmd.OutOrStdout(), "State: %s\n", config.NewState(configDir).Path())
			fmt.Fprintf(cmd.OutOrStdout(), "Log: %s\n", log.FilePath())
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of keyclaim",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "keyclaim version %s\n", version)
		},
	}
)

// setup loads the config and starts logging.
func setup() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	logCfg := cfg.Log.LogConfig()
	if noLogFlag {
		logCfg.LogsEnabled = false
	}
	if err := log.Initialize(logCfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to a config.toml file")
	rootCmd.PersistentFlags().BoolVar(&noLogFlag, "no-log", false, "Disable the log file")
	keysCmd.Flags().BoolVar(&copyFlag, "copy", false, "Also copy the listing to the clipboard")
	sendCmd.Flags().IntVarP(&widthFlag, "width", "w", 100, "Terminal width used for the layout breakpoint")

	rootCmd.AddCommand(keysCmd, sendCmd, debugCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
