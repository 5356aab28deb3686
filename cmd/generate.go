package cmd

import (
	"context"
	"os"

	"github.com/pyneda/wsdlgen/internal/config"
	"github.com/pyneda/wsdlgen/lib"
	"github.com/pyneda/wsdlgen/pkg/pipeline"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	generateService string
	generateOutput  string
)

var generateCmd = &cobra.Command{
	Use:   "generate <wsdl-path-or-url>",
	Short: "Generate type and client descriptors",
	Long: `Load a WSDL document and its imports, verify every reference and print the
generated type and client descriptors.

Examples:
  # Generate from a remote service description
  wsdlgen generate https://www.dataaccess.com/webservicesserver/NumberConversion.wso?WSDL

  # Generate a single service as YAML into a file
  wsdlgen generate ./service.wsdl --service NumberConversion --format yaml -o out.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("format", "f", "json", "Output format: json, yaml, text, pretty, table")
	generateCmd.Flags().StringVarP(&generateService, "service", "s", "", "Only generate the client of this service")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write to this file instead of standard output")
	viper.BindPFlag("output.format", generateCmd.Flags().Lookup("format"))
}

func runGenerate(cmd *cobra.Command, args []string) {
	logger := log.With().Str("component", "generate").Logger()

	format, err := lib.ParseFormatType(viper.GetString("output.format"))
	if err != nil {
		logger.Error().Err(err).Msg("Invalid output format")
		os.Exit(1)
	}

	cfg, err := pipelineConfig()
	if err != nil {
		logger.Error().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}
	cfg.Service = generateService

	// partial output is never written
	out, err := pipeline.Run(context.Background(), args[0], cfg)
	if err != nil {
		event := logger.Error().Err(err).Str("document", args[0])
		if out != nil {
			event = event.Int("types", len(out.Types)).Int("clients", len(out.Clients))
		}
		event.Msg("Generation failed")
		os.Exit(1)
	}

	var formatted string
	if format == lib.Table {
		formatted = lib.FormatTable(out.Rows())
	} else {
		formatted, err = lib.FormatSingleOutput(out, format)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to format output")
		os.Exit(1)
	}
	if err := lib.WriteOutput(os.Stdout, generateOutput, formatted); err != nil {
		logger.Error().Err(err).Msg("Failed to write output")
		os.Exit(1)
	}
}

func pipelineConfig() (pipeline.Config, error) {
	opts, err := config.LoaderOptions()
	if err != nil {
		return pipeline.Config{}, err
	}
	cfg := pipeline.DefaultConfig()
	cfg.Loader = opts
	return cfg, nil
}
