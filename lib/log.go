package lib

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogTimeFormat = "2006-01-02T15:04:05.000"
)

// ConsoleLog sends the global logger to standard error so that standard
// output only carries generated descriptors.
func ConsoleLog(debug, pretty bool) {
	SetupLog(os.Stderr, debug, pretty)
}

// SetupLog configures the global logger to write to w.
func SetupLog(w io.Writer, debug, pretty bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if !pretty {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}

	out := w
	if runtime.GOOS == "windows" {
		if f, ok := w.(*os.File); ok {
			out = colorable.NewColorable(f)
		}
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: false, TimeFormat: LogTimeFormat})
}
