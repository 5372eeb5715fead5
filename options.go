package sourcecat

import (
	"github.com/rs/zerolog"

	"github.com/astrokit/sourcecat/pkg/logging"
	"github.com/astrokit/sourcecat/pkg/match"
	"github.com/astrokit/sourcecat/pkg/units"
)

// Option is a function that configures a Match call
type Option func(*config) error

// config holds the resolved matching configuration
type config struct {
	threshold units.Quantity
	verbose   bool
	log       *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		threshold: match.DefaultThreshold,
	}
}

func (c *config) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// logger returns the logger matching the configuration: an explicit logger
// wins, verbose falls back to the default logger, and quiet discards all
// progress output.
func (c *config) logger() *zerolog.Logger {
	if c.log != nil {
		return c.log
	}
	if c.verbose {
		return logging.Default()
	}
	return &logging.Nop
}

// WithThreshold configures the spatial match threshold. Two sources whose
// separation is at most the threshold (inclusive) merge. The default is
// 0.036 arcsec.
func WithThreshold(threshold units.Quantity) Option {
	return func(c *config) error {
		c.threshold = threshold
		return nil
	}
}

// WithVerbose configures whether match progress is reported to the console
func WithVerbose(enabled bool) Option {
	return func(c *config) error {
		c.verbose = enabled
		return nil
	}
}

// WithLogger configures an explicit logger for match progress
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.log = logger
		return nil
	}
}
