// Package cli wires the cobra command tree for the studymesh binary.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studymesh/studymesh"
	"github.com/studymesh/studymesh/config"
	"github.com/studymesh/studymesh/expert"
	"github.com/studymesh/studymesh/logging"
	"github.com/studymesh/studymesh/server"
)

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "studymesh",
		Short:         "Multi-expert learning assistant",
		Long:          "studymesh dispatches student questions to subject-expert personas backed by an LLM, with keyword routing, bounded group chat rounds, and bilingual (en/vi) support.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")

	rootCmd.AddCommand(
		newServeCmd(&cfgFile),
		newAskCmd(&cfgFile),
		newAgentsCmd(),
	)
	return rootCmd
}

func newServeCmd(cfgFile *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			if addr != "" {
				settings.ListenAddr = addr
			}
			logger, err := newLogger(settings)
			if err != nil {
				return err
			}

			app, err := studymesh.New(func(o *studymesh.Options) {
				o.Settings = settings
				o.Logger = logger
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(app, func(o *server.Options) {
				o.Addr = settings.ListenAddr
				o.Logger = logger
			})
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func newAskCmd(cfgFile *string) *cobra.Command {
	var maxRounds int

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Ask a single question from the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			logger, err := newLogger(settings)
			if err != nil {
				return err
			}

			app, err := studymesh.New(func(o *studymesh.Options) {
				o.Settings = settings
				o.Logger = logger
			})
			if err != nil {
				return err
			}

			resp, err := app.Chat(cmd.Context(), server.ChatRequest{
				Message:   args[0],
				MaxRounds: maxRounds,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Result)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "per-turn round limit (clamped to the configured ceiling)")
	return cmd
}

func newAgentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "agents",
		Short: "List the expert roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs := expert.Definitions()
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(defs)
		},
	}
}

func newLogger(settings *config.Settings) (logging.Logger, error) {
	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: settings.LogFormat,
		Output: os.Stderr,
	}), nil
}
