package main

import (
	"fmt"

	"github.com/spf13/cobra"

	client "github.com/linguahq/lingua-client"
)

func newTextCmd(opts *cliOptions) *cobra.Command {
	var (
		targetLang string
		sourceLang string
		formality  string
		glossaryID string
	)

	cmd := &cobra.Command{
		Use:   "text [texts...]",
		Short: "Translate plain text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedFormality, err := parseFormality(formality)
			if err != nil {
				return err
			}

			cli, _, err := buildClient(opts)
			if err != nil {
				return err
			}

			translations, err := cli.TranslateText(cmd.Context(), args, client.TranslationOptions{
				SourceLang: sourceLang,
				TargetLang: targetLang,
				Formality:  parsedFormality,
				GlossaryID: glossaryID,
			})
			if err != nil {
				return err
			}

			for _, translation := range translations {
				fmt.Fprintln(cmd.OutOrStdout(), translation.Text)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetLang, "target-lang", "", "Target language code (required)")
	cmd.Flags().StringVar(&sourceLang, "source-lang", "", "Source language code (default: auto-detect)")
	cmd.Flags().StringVar(&formality, "formality", "", "Formality: default|more|less|prefer_more|prefer_less")
	cmd.Flags().StringVar(&glossaryID, "glossary-id", "", "Glossary to apply during translation")
	_ = cmd.MarkFlagRequired("target-lang")

	return cmd
}
