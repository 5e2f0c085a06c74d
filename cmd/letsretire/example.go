package main

import (
	"github.com/spf13/cobra"

	"github.com/danbrewer/LetsRetire-sub001/internal/config"
)

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print an example scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.NewInputParser()
			data, err := p.Encode(p.CreateExampleConfiguration())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
