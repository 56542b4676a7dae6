package internal

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Config is shared by every runtime of the process.
type Config struct {
	Logger  *zap.Logger
	Metrics *Metrics // nil disables metrics
}

var config atomic.Pointer[Config]

func init() {
	config.Store(defaultConfig())
}

func defaultConfig() *Config {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}

	return &Config{Logger: logger}
}

func GetConfig() *Config {
	return config.Load()
}

// SetConfig replaces the process configuration. A nil logger disables logging.
func SetConfig(c Config) {
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	config.Store(&c)
}
