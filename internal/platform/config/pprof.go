package config

import (
	"fmt"
	"net"
	"strings"
)

// PProfConfig runs net/http/pprof on its own listener, apart from the grid API port.
type PProfConfig struct {
	Enabled bool   `koanf:"enabled"`
	Addr    string `koanf:"addr"`
}

// String returns a string representation of the pprof configuration.
func (c *PProfConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- PProf ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  address: %s\n", c.Addr))
	return b.String()
}

// Validate checks the address only when pprof is on. It must be host:port and must not
// share the grid API port.
func (c *PProfConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Addr == "" {
		return fmt.Errorf("pprof is enabled but address is not configured")
	}
	if _, _, err := net.SplitHostPort(c.Addr); err != nil {
		return fmt.Errorf("invalid pprof address %q: %w", c.Addr, err)
	}
	return nil
}

// ConflictsWith reports whether pprof would listen on the HTTP server port.
func (c *PProfConfig) ConflictsWith(httpPort int) bool {
	if !c.Enabled {
		return false
	}
	_, port, err := net.SplitHostPort(c.Addr)
	return err == nil && port == fmt.Sprint(httpPort)
}
