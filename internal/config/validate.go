package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Timeout != "" {
		if _, err := ParseTimeout(c.Timeout); err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
	}

	if c.MaxPayload != "" {
		size, err := ParseSize(c.MaxPayload)
		if err != nil {
			return fmt.Errorf("maxPayload: %w", err)
		}
		if size == 0 {
			return fmt.Errorf("maxPayload: must be greater than zero")
		}
	}

	if c.Socket != "" && strings.TrimSpace(c.Socket) != c.Socket {
		return fmt.Errorf("socket: path has surrounding whitespace: %q", c.Socket)
	}

	return nil
}
