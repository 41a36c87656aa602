package main

import (
	"github.com/spf13/cobra"
)

func newUsageCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show account usage and limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			usage, err := cli.GetUsage(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), usage)
		},
	}
}

func newLanguagesCmd(opts *cliOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			var (
				languages any
				listErr   error
			)
			switch kind {
			case "source":
				languages, listErr = cli.GetSourceLanguages(cmd.Context())
			case "target":
				languages, listErr = cli.GetTargetLanguages(cmd.Context())
			default:
				return cmd.Help()
			}
			if listErr != nil {
				return listErr
			}
			return printJSON(cmd.OutOrStdout(), languages)
		},
	}

	cmd.Flags().StringVar(&kind, "type", "target", "Language list to fetch: source|target")

	return cmd
}
