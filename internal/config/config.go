package config

import (
	"errors"
	"os"

	"github.com/pyneda/wsdlgen/pkg/loader"
	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const envPrefix = "WSDLGEN"

// LoadConfig reads path, or the first wsdlgen.yaml found in the working
// directory or in $HOME as .wsdlgen.yaml. A missing file is not an error.
func LoadConfig(path string) error {
	SetDefaultConfig()
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return err
		}
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
		return nil
	}

	viper.SetConfigType("yaml")
	viper.SetConfigName("wsdlgen")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err == nil {
		log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
		return nil
	} else if !isNotFound(err) {
		return err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	viper.SetConfigName(".wsdlgen")
	viper.AddConfigPath(home)
	if err := viper.ReadInConfig(); err != nil {
		if isNotFound(err) {
			log.Debug().Msg("Config file not found, using defaults")
			return nil
		}
		return err
	}
	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("Using config file")
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

func SetDefaultConfig() {
	defaults := loader.DefaultOptions()

	// Loader
	viper.SetDefault("loader.max_depth", defaults.MaxDepth)
	viper.SetDefault("loader.workers", defaults.Workers)
	viper.SetDefault("loader.timeout", defaults.Timeout)
	viper.SetDefault("loader.insecure_skip_verify", false)
	viper.SetDefault("loader.headers", map[string]string{})
	viper.SetDefault("loader.known_namespaces", defaults.KnownNamespaces)

	// Output
	viper.SetDefault("output.format", "json")
}

// LoaderOptions returns the validated loader options.
func LoaderOptions() (loader.Options, error) {
	opts := loader.Options{
		MaxDepth:           viper.GetInt("loader.max_depth"),
		Workers:            viper.GetInt("loader.workers"),
		Timeout:            viper.GetDuration("loader.timeout"),
		InsecureSkipVerify: viper.GetBool("loader.insecure_skip_verify"),
		Headers:            viper.GetStringMapString("loader.headers"),
		KnownNamespaces:    viper.GetStringSlice("loader.known_namespaces"),
	}
	if len(opts.KnownNamespaces) == 0 {
		opts.KnownNamespaces = []string{wsdl.XSDNamespace}
	}
	if err := opts.Validate(); err != nil {
		return loader.Options{}, err
	}
	return opts, nil
}
