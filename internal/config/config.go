// Package config describes the productgrid service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/productgrid/internal/platform/config"
	"github.com/abgdnv/productgrid/internal/platform/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	DataSource config.DataSourceConfig `koanf:"datasource"`
	Assets     config.AssetsConfig     `koanf:"assets"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.DataSource.String())
	b.WriteString(c.Assets.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if c.PProf.ConflictsWith(c.HTTPServer.Port) {
		return fmt.Errorf("pprof address %s uses the HTTP server port %d", c.PProf.Addr, c.HTTPServer.Port)
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.DataSource.Validate(); err != nil {
		return err
	}
	if err := c.Assets.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return nil
}

var _ configloader.Validator = (*InspectConfig)(nil)

// InspectConfig is the subset of Config the inspect command reads.
type InspectConfig struct {
	DataSource config.DataSourceConfig `koanf:"datasource"`
	Log        config.LogConfig        `koanf:"log"`
}

func (c *InspectConfig) String() string {
	return c.DataSource.String() + c.Log.String()
}

// Validate checks if the configuration values are valid
func (c *InspectConfig) Validate() error {
	if err := c.DataSource.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}
