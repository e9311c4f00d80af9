package config

import (
	"fmt"
	"strings"
	"time"
)

// maxShutdownTimeout caps how long serve waits for in-flight intents and the
// tracer and meter flushes.
const maxShutdownTimeout = 2 * time.Minute

// ShutdownConfig bounds each graceful shutdown step: HTTP servers, tracer and meter providers.
type ShutdownConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the ShutdownConfig.
func (c *ShutdownConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Shutdown ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *ShutdownConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("shutdown timeout is not configured")
	}
	if c.Timeout > maxShutdownTimeout {
		return fmt.Errorf("shutdown timeout %v exceeds %v", c.Timeout, maxShutdownTimeout)
	}
	return nil
}
