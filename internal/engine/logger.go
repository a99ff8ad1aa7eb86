package engine

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// engLog is the sub-logger for the engine package, with module=engine
// field. All solver logs go through it; the binary configures the
// global level and writer.
var engLog zerolog.Logger = log.With().Str("module", "engine").Logger()
