// Package config loads configuration structs from environment variables
// using `env` struct tags, with optional defaults from a .env file.
//
// The engine itself takes no configuration; this package exists for the
// programs embedding it — demos, services, tests — so that diagnostics
// settings such as log level and format are wired the same way everywhere.
//
// # Usage
//
//	type DiagnosticsConfig struct {
//	    LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
//	    LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
//	}
//
//	var cfg DiagnosticsConfig
//	config.MustLoad(&cfg)
//
// Load parses the struct on every call; callers that need a singleton keep
// the parsed value themselves.
package config
