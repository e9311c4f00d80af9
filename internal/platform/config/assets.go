package config

import (
	"fmt"
	"strings"
)

// AssetsConfig controls the bundled static product list served under /assets/.
// Dir overrides the embedded files with a directory on disk.
type AssetsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// String returns a string representation of the AssetsConfig.
func (c *AssetsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Assets ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  dir: %s\n", c.Dir))
	return b.String()
}

func (c *AssetsConfig) Validate() error {
	return nil
}
