package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings are shared by every subcommand. Flags win over LETSRETIRE_* env vars.
type settings struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	s := &settings{v: viper.New()}
	s.v.SetEnvPrefix("LETSRETIRE")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()
	s.v.SetDefault("log-level", "warn")

	root := &cobra.Command{
		Use:           "letsretire",
		Short:         "Retirement withdrawal solver and tax reconciliation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := parseLevel(s.v.GetString("log-level"))
			if err != nil {
				return err
			}
			s.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	root.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")
	_ = s.v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newSimulateCmd(s), newSolveCmd(s), newExampleCmd())
	return root
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}
