package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Backend:  BackendLocal,
			Endpoint: "http://127.0.0.1:0/cinemaddict",
			Timeout:  2 * time.Second,
		},
		Database: DatabaseConfig{
			Path:    ":memory:",
			Timeout: 1 * time.Second,
			Author:  "Tester",
		},
		UI:   defaultConfig().UI,
		Keys: defaultConfig().Keys,
		Log:  LogConfig{Level: "off"},
	}
}
