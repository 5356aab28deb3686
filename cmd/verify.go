package cmd

import (
	"context"
	"os"

	"github.com/pyneda/wsdlgen/lib"
	"github.com/pyneda/wsdlgen/pkg/pipeline"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verifyFormat string

var verifyCmd = &cobra.Command{
	Use:   "verify <wsdl-path-or-url>",
	Short: "Check that every reference of a service description resolves",
	Long: `Load a WSDL document and its imports and report every reference that does
not resolve. Nothing is generated.`,
	Args: cobra.ExactArgs(1),
	Run:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&verifyFormat, "format", "f", "pretty", "Output format: json, yaml, text, pretty, table")
}

func runVerify(cmd *cobra.Command, args []string) {
	logger := log.With().Str("component", "verify").Logger()

	format, err := lib.ParseFormatType(verifyFormat)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid output format")
		os.Exit(1)
	}
	cfg, err := pipelineConfig()
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	summary, err := pipeline.Verify(context.Background(), args[0], cfg)
	if err != nil {
		logger.Error().Err(err).Str("document", args[0]).Msg("Verification failed")
		os.Exit(1)
	}

	formatted, err := lib.FormatSingleOutput(summary, format)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to format output")
		os.Exit(1)
	}
	if err := lib.WriteOutput(os.Stdout, "", formatted); err != nil {
		logger.Error().Err(err).Msg("Failed to write output")
		os.Exit(1)
	}
}
