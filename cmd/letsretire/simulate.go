package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danbrewer/LetsRetire-sub001/internal/calculation"
	"github.com/danbrewer/LetsRetire-sub001/internal/config"
	"github.com/danbrewer/LetsRetire-sub001/internal/output"
)

func newSimulateCmd(s *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run every scenario in a YAML file year by year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := s.v.GetString("config")
			if path == "" {
				return errors.New("a configuration file is required (-c)")
			}
			cfg, err := config.NewInputParser().LoadFromFile(path)
			if err != nil {
				return err
			}

			sim := calculation.NewSimulator()
			sim.SetLogger(slogAdapter{s.logger})
			results, err := sim.RunScenarios(cmd.Context(), cfg.Scenarios)
			if err != nil {
				return err
			}
			report := &output.Report{Inputs: cfg.Scenarios, Results: results}
			return output.Render(cmd.OutOrStdout(), report, s.v.GetString("format"))
		},
	}
	cmd.Flags().StringP("config", "c", "", "scenario file (YAML)")
	cmd.Flags().StringP("format", "f", "console", "output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	_ = s.v.BindPFlag("config", cmd.Flags().Lookup("config"))
	_ = s.v.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

