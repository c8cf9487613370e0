package config

import (
	"os"
	"time"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":5001",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Log: LogConfig{
			Requests: true,
		},
	}
}

const defaultContent = `# Task tracker configuration

server:
  addr: ":5001"
  read_timeout: 10s
  write_timeout: 10s
  idle_timeout: 60s
  shutdown_timeout: 5s
  # Maximum request body size in bytes
  max_body_bytes: 1048576

cors:
  allowed_origins: ["*"]

# Demo fixtures created at startup
seed:
  enabled: false
  file: ""  # Built-in fixtures are used if empty

log:
  requests: true
`

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	return os.WriteFile(path, []byte(defaultContent), 0644)
}
