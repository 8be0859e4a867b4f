// Package dcmcodec reads and writes DICOM Part 10 files.
//
// The codec itself lives in the `dicom` and `dicomio` packages; this package
// binds them to an environment-driven configuration and the file layout of
// a preamble, file meta information and data set.
package dcmcodec

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/b71729/dcmcodec/common"
	"github.com/b71729/dcmcodec/core"
	"github.com/b71729/dcmcodec/dicomio"
)

/*
===============================================================================
    Configuration
===============================================================================
*/

// Config represents the application configuration
type Config struct {
	LogLevel string
	/* By enabling `StrictMode`, the decoder will reject DICOM inputs which either:
	   - Contain a missing or wrong file meta information group length
	   - Contain an element with a value length exceeding the remaining file size. For example incomplete Pixel Data.
	   - Contain an unrecognised explicit VR code, or a delimiter carrying a length
	*/
	StrictMode bool

	// AllocateLimit caps the first allocation for a single value, in bytes.
	// Negative values disable the cap.
	AllocateLimit int64

	// MaxDepth bounds sequence nesting.
	MaxDepth int

	// BufferSize is the number of bytes to be buffered from disk when parsing dicoms
	BufferSize int

	OpenFileLimit int

	// do not access / write `_set`. It is used internally.
	_set bool
}

// intFromEnv retrieves `key` from the OS environment.
// if the key is not found, or cannot be expressed as an integer,
// `found` will be false.
func intFromEnv(key string) (val int, found bool) {
	valStr, found := os.LookupEnv(key)
	if !found {
		return
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		found = false
	}
	return
}

func intFromEnvDefault(key string, def int) (val int) {
	val, found := intFromEnv(key)
	if !found {
		val = def
	}
	return
}

func strFromEnvDefault(key string, def string) string {
	if val, found := os.LookupEnv(key); found {
		return val
	}
	return def
}

func boolFromEnv(key string) (val bool, found bool) {
	valStr, found := os.LookupEnv(key)
	if !found {
		return
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		found = false
	}
	return
}

func boolFromEnvDefault(key string, def bool) (val bool) {
	val, found := boolFromEnv(key)
	if !found {
		val = def
	}
	return
}

var (
	configMu sync.Mutex
	config   Config
)

// GetConfig returns the application configuration.
// Will set from environment if not already set.
func GetConfig() Config {
	configMu.Lock()
	defer configMu.Unlock()
	if !config._set {
		config.LogLevel = strings.ToLower(strFromEnvDefault("DCMCODEC_LOGLEVEL", "info"))
		config.StrictMode = boolFromEnvDefault("DCMCODEC_STRICTMODE", false)
		config.AllocateLimit = int64(intFromEnvDefault("DCMCODEC_ALLOCATELIMIT", dicomio.DefaultAllocateLimit))
		config.MaxDepth = intFromEnvDefault("DCMCODEC_MAXDEPTH", dicomio.DefaultMaxDepth)
		config.BufferSize = intFromEnvDefault("DCMCODEC_BUFFERSIZE", 2*1024*1024)
		config.OpenFileLimit = intFromEnvDefault("DCMCODEC_OPENFILELIMIT", 64)
		config.apply()
		config._set = true
	}
	return config
}

// OverrideConfig overrides the configuration parsed from environment with the one provided
func OverrideConfig(newconfig Config) {
	configMu.Lock()
	defer configMu.Unlock()
	newconfig._set = true // to prevent being reverted with subsequent calls to `GetConfig`
	newconfig.apply()
	config = newconfig
}

// apply pushes the process-wide parts of `c` to the packages that hold them.
func (c *Config) apply() {
	if c.LogLevel != "" && !core.SetLevel(c.LogLevel) {
		core.Log().Warnf(`invalid log level %q, choose from "debug", "info", "warn", "error", "fatal", or "none"`, c.LogLevel)
	}
	if c.OpenFileLimit > 0 {
		common.OpenFileLimit = c.OpenFileLimit
	}
}

// DecoderOptions returns decoder options reflecting `c`.
func (c Config) DecoderOptions() dicomio.DecoderOptions {
	opts := dicomio.DefaultDecoderOptions()
	opts.Strict = c.StrictMode
	switch {
	case c.AllocateLimit < 0:
		opts.AllocateLimit = 0
	case c.AllocateLimit > 0:
		opts.AllocateLimit = c.AllocateLimit
	}
	if c.MaxDepth > 0 {
		opts.MaxDepth = c.MaxDepth
	}
	if c.BufferSize > 0 {
		opts.BufferSize = c.BufferSize
	}
	return opts
}
