//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	config, err := Parse([]byte(`
transport: pipe
codec: proto
receive-timeout: 5s
seeds:
  - "` + strings.Repeat("01", 32) + `"
  - ""
`))
	require.NoError(t, err)
	require.Equal(t, TransportPipe, config.Transport)
	require.Equal(t, "proto", config.Codec)
	require.Equal(t, 5*time.Second, config.ReceiveTimeout)
	require.True(t, config.VerifySchedule)
	require.Equal(t, "info", config.LogLevel)

	seed, err := config.Seed(0)
	require.NoError(t, err)
	require.Equal(t, bytes.Repeat([]byte{1}, 32), seed)

	seed, err = config.Seed(1)
	require.NoError(t, err)
	require.Nil(t, seed)

	seed, err = config.Seed(2)
	require.NoError(t, err)
	require.Nil(t, seed)
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"transport: tcp",
		"receive-timeout: -1s",
		"seeds: [\"xyz\"]",
		"seeds: [\"0102\"]",
		"seeds: [\"\", \"\", \"\", \"\"]",
		"transport: [",
	} {
		_, err := Parse([]byte(input))
		require.Error(t, err, input)
	}
}

func TestLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "ringeval.yaml")
	require.NoError(t, os.WriteFile(file,
		[]byte("verify-schedule: false\nlog-level: debug\n"), 0644))

	config, err := Load(file)
	require.NoError(t, err)
	require.False(t, config.VerifySchedule)
	require.Equal(t, "debug", config.LogLevel)
	require.Equal(t, TransportChan, config.Transport)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestGetRandom(t *testing.T) {
	config := Default()
	require.NotNil(t, config.GetRandom())

	r := bytes.NewReader(nil)
	config.Rand = r
	require.Equal(t, r, config.GetRandom())
}
