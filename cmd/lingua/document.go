package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	client "github.com/linguahq/lingua-client"
)

type documentOptions struct {
	opts *cliOptions

	targetLang  string
	sourceLang  string
	formality   string
	glossaryID  string
	output      string
	outputDir   string
	concurrency int
}

func newDocumentCmd(opts *cliOptions) *cobra.Command {
	do := &documentOptions{opts: opts}

	cmd := &cobra.Command{
		Use:   "document [files...]",
		Short: "Translate one or more documents and download the results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return do.run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&do.targetLang, "target-lang", "", "Target language code (required)")
	cmd.Flags().StringVar(&do.sourceLang, "source-lang", "", "Source language code (default: auto-detect)")
	cmd.Flags().StringVar(&do.formality, "formality", "", "Formality: default|more|less|prefer_more|prefer_less")
	cmd.Flags().StringVar(&do.glossaryID, "glossary-id", "", "Glossary to apply during translation")
	cmd.Flags().StringVarP(&do.output, "output", "o", "", "Output path (single file only)")
	cmd.Flags().StringVar(&do.outputDir, "output-dir", ".", "Directory for translated files")
	cmd.Flags().IntVar(&do.concurrency, "concurrency", 3, "Number of documents translated concurrently")
	_ = cmd.MarkFlagRequired("target-lang")

	return cmd
}

func (o *documentOptions) run(ctx context.Context, files []string) error {
	if o.output != "" && len(files) > 1 {
		return errors.New("--output only applies to a single file, use --output-dir for batches")
	}

	formality, err := parseFormality(o.formality)
	if err != nil {
		return err
	}

	cli, logger, err := buildClient(o.opts)
	if err != nil {
		return err
	}

	translationOpts := client.TranslationOptions{
		SourceLang: o.sourceLang,
		TargetLang: o.targetLang,
		Formality:  formality,
		GlossaryID: o.glossaryID,
	}

	concurrency := o.concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for _, file := range files {
		group.Go(func() error {
			return o.translateOne(ctx, cli, logger, file, translationOpts)
		})
	}

	return group.Wait()
}

func (o *documentOptions) translateOne(ctx context.Context, cli client.Client, logger zerolog.Logger, inputPath string, opts client.TranslationOptions) error {
	outputPath := o.output
	if outputPath == "" {
		outputPath = filepath.Join(o.outputDir, translatedName(inputPath, opts.TargetLang))
	}

	result, err := cli.TranslateDocumentFile(ctx, inputPath, outputPath, opts)
	if err != nil {
		logger.Error().Err(err).Str("file", inputPath).Msg("document translation failed")
		return fmt.Errorf("%s: %w", inputPath, err)
	}

	logger.Info().
		Str("file", inputPath).
		Str("output", outputPath).
		Int64("billed_characters", result.BilledCharacters).
		Msg("document translated")
	return nil
}

// translatedName derives an output filename such as report.de.pdf from
// report.pdf and target language DE.
func translatedName(inputPath, targetLang string) string {
	base := filepath.Base(inputPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return stem + "." + strings.ToLower(targetLang) + ext
}
