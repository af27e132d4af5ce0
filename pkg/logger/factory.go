package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fsmkit/fsmkit/pkg/config"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production log aggregation systems.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development debugging.
	FormatText Format = "text"
)

// Option configures logger creation.
type Option func(*cfg)

func WithLevel(l slog.Level) Option {
	return func(c *cfg) { c.level = l }
}

// WithFormat sets output format.
// Panics for invalid formats to enforce fail-fast initialization -
// misconfiguration should prevent startup rather than cause runtime errors.
func WithFormat(f Format) Option {
	return func(c *cfg) {
		switch f {
		case FormatJSON, FormatText:
			c.format = f
		default:
			panic(fmt.Errorf("invalid log format %q: must be %q or %q", f, FormatJSON, FormatText))
		}
	}
}

// WithOutput sets custom output destination, ignoring nil writers for safety.
func WithOutput(w io.Writer) Option {
	return func(c *cfg) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds static attributes to every log record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *cfg) {
		if len(attrs) > 0 {
			c.attrs = append(c.attrs, attrs...)
		}
	}
}

// WithDevelopment configures development defaults: text format at debug
// level, so every dispatch decision of a machine is visible.
func WithDevelopment() Option {
	return func(c *cfg) {
		c.level = slog.LevelDebug
		c.format = FormatText
	}
}

// WithProduction configures production defaults: JSON format at info level.
func WithProduction() Option {
	return func(c *cfg) {
		c.level = slog.LevelInfo
		c.format = FormatJSON
	}
}

func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

type cfg struct {
	level  slog.Level
	format Format
	output io.Writer
	attrs  []slog.Attr
}

// defaultCfg provides production-safe defaults: JSON format with INFO level.
func defaultCfg() *cfg {
	return &cfg{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
}

// New creates a configured slog.Logger.
func New(opts ...Option) *slog.Logger {
	c := defaultCfg()
	for _, opt := range opts {
		opt(c)
	}

	handlerOpts := &slog.HandlerOptions{Level: c.level}

	var handler slog.Handler
	if c.format == FormatText {
		handler = slog.NewTextHandler(c.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(c.output, handlerOpts)
	}

	if len(c.attrs) > 0 {
		handler = handler.WithAttrs(c.attrs)
	}

	return slog.New(handler)
}

// EnvConfig is the environment surface for logger configuration.
type EnvConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// NewFromEnv builds a logger configured through LOG_LEVEL and LOG_FORMAT
// environment variables (a .env file is honored). Extra options are applied
// on top of the environment-derived ones.
func NewFromEnv(opts ...Option) (*slog.Logger, error) {
	var ec EnvConfig
	if err := config.Load(&ec); err != nil {
		return nil, err
	}

	level, err := parseLevel(ec.Level)
	if err != nil {
		return nil, err
	}

	format := Format(strings.ToLower(ec.Format))
	if format != FormatJSON && format != FormatText {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be %q or %q", ec.Format, FormatJSON, FormatText)
	}

	combined := append([]Option{WithLevel(level), WithFormat(format)}, opts...)
	return New(combined...), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
