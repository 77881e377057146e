//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package logging implements the party loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/markkurossi/ringeval/ring"
	"github.com/rs/zerolog"
)

// PartyField is the log field holding the party ID.
const PartyField = "party"

// EnvVar names the environment variable controlling the log level.
// The value "no" disables logging.
const EnvVar = "RINGEVAL_LOG"

// NewWriter creates a console writer printing the party field before
// the log message.
func NewWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		FormatPrepare: func(e map[string]interface{}) error {
			if id, ok := e[PartyField]; ok {
				e[PartyField] = fmt.Sprintf("[%v]", id)
			}
			return nil
		},
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			PartyField,
			zerolog.MessageFieldName,
		},
		FieldsExclude: []string{PartyField},
	}
}

// Level resolves the log level from the level name. The RINGEVAL_LOG
// environment variable overrides the name.
func Level(name string) zerolog.Level {
	if env := os.Getenv(EnvVar); len(env) > 0 {
		name = env
	}
	switch name {
	case "no", "off", "disabled":
		return zerolog.Disabled
	case "":
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// New creates a logger writing to stderr at the named level.
func New(level string) zerolog.Logger {
	return zerolog.New(NewWriter(os.Stderr)).
		Level(Level(level)).
		With().
		Timestamp().
		Logger()
}

// Party returns a sub-logger for the party id.
func Party(logger zerolog.Logger, id ring.PartyID) zerolog.Logger {
	return logger.With().Str(PartyField, id.String()).Logger()
}
