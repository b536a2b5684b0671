// Package config loads service configuration from YAML files, .env files and
// environment variables.
//
// Viper reads cmd/<service>/config.yml (or an explicit file), godotenv loads
// the nearest .env, and every environment variable is bound under its nested
// key variants so SERVER_PORT overrides server.port.
//
//	var cfg Config
//	if err := config.LoadConfig("speech-api", &cfg); err != nil { ... }
//
// The service binary exposes --config and --env-file to override the search.
package config
