package dcmcodec

import (
	"testing"

	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dicomio"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestIntFromEnv(t *testing.T) {
	testCases := []struct {
		input  string
		output int
	}{
		{input: "100", output: 100},
		{input: "-100", output: -100},
	}
	for _, testCase := range testCases {
		t.Setenv("DCMCODEC_TEST", testCase.input)
		val, found := intFromEnv("DCMCODEC_TEST")
		assert.True(t, found)
		assert.Equal(t, testCase.output, val)
	}
	t.Setenv("DCMCODEC_TEST", "not a number")
	_, found := intFromEnv("DCMCODEC_TEST")
	assert.False(t, found)
	assert.Equal(t, 9000, intFromEnvDefault("DCMCODEC_TEST", 9000))
	assert.Equal(t, 9000, intFromEnvDefault("DCMCODEC_UNSET", 9000))
}

func TestBoolFromEnv(t *testing.T) {
	testCases := []struct {
		input  string
		output bool
	}{
		{input: "true", output: true},
		{input: "1", output: true},
		{input: "false", output: false},
		{input: "0", output: false},
	}
	for _, testCase := range testCases {
		t.Setenv("DCMCODEC_TEST", testCase.input)
		val, found := boolFromEnv("DCMCODEC_TEST")
		assert.True(t, found)
		assert.Equal(t, testCase.output, val)
	}
	assert.True(t, boolFromEnvDefault("DCMCODEC_UNSET", true))
	assert.Equal(t, "ascii", strFromEnvDefault("DCMCODEC_UNSET", "ascii"))
}

func TestGetConfig(t *testing.T) {
	t.Setenv("DCMCODEC_MAXDEPTH", "8")
	t.Setenv("DCMCODEC_STRICTMODE", "true")
	t.Setenv("DCMCODEC_ALLOCATELIMIT", "-1")
	t.Setenv("DCMCODEC_LOGLEVEL", "WARN")
	defer OverrideConfig(Config{LogLevel: "info"})
	configMu.Lock()
	config._set = false
	configMu.Unlock()

	cfg := GetConfig()
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, zapcore.WarnLevel, core.Level())
	assert.Equal(t, 2*1024*1024, cfg.BufferSize)

	opts := cfg.DecoderOptions()
	assert.Equal(t, 8, opts.MaxDepth)
	assert.True(t, opts.Strict)
	assert.Equal(t, int64(0), opts.AllocateLimit)
	assert.Equal(t, 2*1024*1024, opts.BufferSize)
}

func TestOverrideConfig(t *testing.T) {
	limit := common.OpenFileLimit
	defer func() {
		OverrideConfig(Config{LogLevel: "info"})
		common.OpenFileLimit = limit
	}()
	OverrideConfig(Config{OpenFileLimit: 256, LogLevel: "error"})
	cfg := GetConfig()
	assert.Equal(t, 256, cfg.OpenFileLimit)
	assert.Equal(t, 256, common.OpenFileLimit)
	assert.Equal(t, zapcore.ErrorLevel, core.Level())

	// zero values fall back to the decoder defaults
	opts := cfg.DecoderOptions()
	assert.Equal(t, int64(dicomio.DefaultAllocateLimit), opts.AllocateLimit)
	assert.Equal(t, dicomio.DefaultMaxDepth, opts.MaxDepth)
	assert.False(t, opts.Strict)
}
