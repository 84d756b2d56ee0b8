package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tj/assert"
)

func TestParseLevel(t *testing.T) {
	testCases := map[string]struct {
		Level string
		Want  zerolog.Level
	}{
		"debug":   {Level: "debug", Want: zerolog.DebugLevel},
		"upper":   {Level: "WARN", Want: zerolog.WarnLevel},
		"warning": {Level: "warning", Want: zerolog.WarnLevel},
		"error":   {Level: "error", Want: zerolog.ErrorLevel},
		"off":     {Level: "off", Want: zerolog.Disabled},
		"unknown": {Level: "loud", Want: zerolog.InfoLevel},
	}

	for label, tc := range testCases {
		t.Run(label, func(t *testing.T) {
			assert.Equal(t, tc.Want, parseLevel(tc.Level))
		})
	}
}

func TestGet(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	SetupWriter(&buf, "info", "json")

	log := Get("registry")
	log.Debug().Msg("hidden")
	log.Info().Str("freq", "5T").Msg("resolved")

	var entry map[string]interface{}
	assert.Nil(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "registry", entry["component"])
	assert.Equal(t, "5T", entry["freq"])
	assert.Equal(t, "resolved", entry["message"])
}
