package common

import "github.com/rs/zerolog"

// Config is the configuration shared by all observable containers.
type Config struct {
	// Name is added to every log entry of the container, it can be empty.
	Name string

	// Logger receives debug entries about cancelled and rejected mutations and about bulk operations.
	// The zero value discards everything.
	Logger zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Logger: zerolog.Nop(),
	}
}

func (c Config) logger() zerolog.Logger {
	if c.Name == "" {
		return c.Logger
	}
	return c.Logger.With().Str("container", c.Name).Logger()
}
