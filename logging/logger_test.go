//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	t.Setenv(EnvVar, "")
	require.Equal(t, zerolog.InfoLevel, Level(""))
	require.Equal(t, zerolog.DebugLevel, Level("debug"))
	require.Equal(t, zerolog.Disabled, Level("no"))
	require.Equal(t, zerolog.InfoLevel, Level("verbose"))

	t.Setenv(EnvVar, "no")
	require.Equal(t, zerolog.Disabled, Level("debug"))
}

func TestParty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.NoColor = true

	logger := Party(zerolog.New(w), 2)
	logger.Info().Int("node", 5).Msg("send")

	out := buf.String()
	require.Contains(t, out, "[P²]")
	require.Contains(t, out, "send")
	require.Contains(t, out, "node=5")
}
