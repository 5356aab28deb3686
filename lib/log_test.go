package lib

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestSetupLog(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	SetupLog(&buf, false, false)
	log.Debug().Msg("hidden")
	log.Info().Str("component", "loader").Msg("Loaded service description")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"loader"`)
	assert.Contains(t, buf.String(), `"message":"Loaded service description"`)

	buf.Reset()
	SetupLog(&buf, true, true)
	log.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
