package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DataSourceConfig points at the JSON endpoint the product list is fetched from.
// A zero Timeout means the request is never cut short.
type DataSourceConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the DataSourceConfig.
func (c *DataSourceConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Data Source ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", c.URL))
	b.WriteString(fmt.Sprintf("  timeout: %v\n", c.Timeout))
	return b.String()
}

func (c *DataSourceConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("data source URL is not configured")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid data source URL %q: %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("data source URL must use http or https: %s", c.URL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("data source timeout must not be negative: %v", c.Timeout)
	}
	return nil
}
