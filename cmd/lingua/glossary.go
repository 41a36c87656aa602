package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGlossaryCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glossary",
		Short: "Manage glossaries",
	}

	cmd.AddCommand(newGlossaryCreateCmd(opts))
	cmd.AddCommand(newGlossaryListCmd(opts))
	cmd.AddCommand(newGlossaryGetCmd(opts))
	cmd.AddCommand(newGlossaryEntriesCmd(opts))
	cmd.AddCommand(newGlossaryDeleteCmd(opts))

	return cmd
}

func newGlossaryCreateCmd(opts *cliOptions) *cobra.Command {
	var (
		name       string
		sourceLang string
		targetLang string
		pairs      []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a glossary from source=target pairs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make(map[string]string, len(pairs))
			for _, pair := range pairs {
				source, target, ok := strings.Cut(pair, "=")
				if !ok {
					return fmt.Errorf("malformed entry %q, expected source=target", pair)
				}
				entries[source] = target
			}

			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			info, err := cli.CreateGlossary(cmd.Context(), name, sourceLang, targetLang, entries)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Glossary name (required)")
	cmd.Flags().StringVar(&sourceLang, "source-lang", "", "Source language code (required)")
	cmd.Flags().StringVar(&targetLang, "target-lang", "", "Target language code (required)")
	cmd.Flags().StringArrayVar(&pairs, "entry", nil, "Glossary entry as source=target (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("source-lang")
	_ = cmd.MarkFlagRequired("target-lang")

	return cmd
}

func newGlossaryListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List glossaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			glossaries, err := cli.ListGlossaries(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), glossaries)
		},
	}
}

func newGlossaryGetCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <glossary-id>",
		Short: "Show one glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			info, err := cli.GetGlossary(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), info)
		},
	}
}

func newGlossaryEntriesCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "entries <glossary-id>",
		Short: "Show the entries of one glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			entries, err := cli.GetGlossaryEntries(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entries)
		},
	}
}

func newGlossaryDeleteCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <glossary-id>",
		Short: "Delete a glossary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}
			return cli.DeleteGlossary(cmd.Context(), args[0])
		},
	}
}
