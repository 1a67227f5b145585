package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			InitWithWriter(in, "json", &bytes.Buffer{})
			require.Equal(t, want, zerolog.GlobalLevel())
		})
	}
}

func TestJSONOutput(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	InitWithWriter("info", "json", &buf)
	log := Get()

	log.Debug().Msg("hidden")
	log.Info().Str("field", "student_id").Msg("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), `"field":"student_id"`)
	require.Contains(t, buf.String(), `"message":"shown"`)
}
