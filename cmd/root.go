package cmd

import (
	"github.com/pyneda/wsdlgen/internal/config"
	"github.com/pyneda/wsdlgen/lib"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string
var debugLogging bool
var prettyLogs bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wsdlgen",
	Short: "Generate typed client descriptors from WSDL 1.1 service descriptions",
	Long: `wsdlgen loads a WSDL 1.1 document together with every WSDL and XSD
document it imports, verifies that every reference resolves, and produces
type descriptors and one client descriptor per service.

Descriptors are written to standard output; diagnostics go to standard error.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./wsdlgen.yaml or $HOME/.wsdlgen.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Use debug level logging")
	rootCmd.PersistentFlags().BoolVar(&prettyLogs, "pretty", true, "Use pretty logging instead JSON")

	rootCmd.PersistentFlags().Int("max-depth", 10, "Maximum import nesting depth")
	rootCmd.PersistentFlags().Int("workers", 4, "Documents fetched in parallel")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP fetch timeout (default from config)")
	rootCmd.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification when fetching documents")
	viper.BindPFlag("loader.max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	viper.BindPFlag("loader.workers", rootCmd.PersistentFlags().Lookup("workers"))
	viper.BindPFlag("loader.insecure_skip_verify", rootCmd.PersistentFlags().Lookup("insecure"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		lib.ConsoleLog(debugLogging, prettyLogs)
		if err := config.LoadConfig(cfgFile); err != nil {
			return err
		}
		if cmd.Flags().Changed("timeout") {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			viper.Set("loader.timeout", timeout)
		}
		return nil
	}
}
