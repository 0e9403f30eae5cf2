// Package config loads typed configuration from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct tag parsing and
// github.com/joho/godotenv for .env files. Each package declares its own
// Config struct with `env` and `envDefault` tags and the binary loads them at
// startup:
//
//	var cfg booking.Config
//	config.MustLoad(&cfg)
//
// Load caches by type; Parse does not and accepts a variable prefix, which
// tests use to avoid clashing with the real environment.
package config
