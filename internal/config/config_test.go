package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pyneda/wsdlgen/pkg/loader"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderOptions_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaultConfig()

	opts, err := LoaderOptions()
	require.NoError(t, err)
	assert.Equal(t, loader.DefaultOptions().MaxDepth, opts.MaxDepth)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, loader.DefaultOptions().KnownNamespaces, opts.KnownNamespaces)
	assert.Equal(t, "json", viper.GetString("output.format"))
}

func TestLoadConfig_File(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "wsdlgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`loader:
  max_depth: 3
  workers: 8
  timeout: 5s
  headers:
    Authorization: Bearer token
output:
  format: yaml
`), 0644))

	require.NoError(t, LoadConfig(path))
	opts, err := LoaderOptions()
	require.NoError(t, err)

	assert.Equal(t, 3, opts.MaxDepth)
	assert.Equal(t, 8, opts.Workers)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, "Bearer token", opts.Headers["authorization"])
	assert.Equal(t, "yaml", viper.GetString("output.format"))
}

func TestLoaderOptions_Invalid(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaultConfig()
	viper.Set("loader.workers", 0)

	_, err := LoaderOptions()
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
