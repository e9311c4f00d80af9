// Package configloader layers the yaml file, the .env file and the process
// environment into a typed configuration struct.
package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultConfigFile = "config.yaml"
	defaultEnvFile    = ".env"
)

type Validator interface {
	Validate() error
}

// Files names the yaml and .env files read by LoadFiles. Missing files are skipped.
type Files struct {
	Config string
	Env    string
}

// Load reads config.yaml and .env from the working directory, then the
// environment variables prefixed with the upper-cased service name.
func Load[T any, PT interface {
	*T
	Validator
}](serviceName string) (PT, error) {
	return LoadFiles[T, PT](serviceName, Files{Config: defaultConfigFile, Env: defaultEnvFile})
}

// LoadFiles is Load with explicit file locations.
func LoadFiles[T any, PT interface {
	*T
	Validator
}](serviceName string, files Files) (PT, error) {
	cfg := PT(new(T))
	k := koanf.New(".")

	// envPrefix is <SERVICE_NAME>_, e.g. PRODUCTGRID_SERVER_PORT -> server.port
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))

	// 1. Load configuration from yaml file
	if files.Config != "" {
		if err := k.Load(file.Provider(files.Config), yaml.Parser()); err != nil {
			if !os.IsNotExist(err) {
				log.Printf("WARN: error loading YAML config file '%s': %v", files.Config, err)
			}
		}
	}

	// 2. Load environment variables from .env file
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}
	if files.Env != "" {
		if envFileMap, err := godotenv.Read(files.Env); err == nil {
			envMap := make(map[string]any)
			for key, value := range envFileMap {
				envMap[envTransformer(key)] = value
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				log.Printf("WARN: error loading .env config: %v", err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("WARN: error reading .env file: %v", err)
		}
	}

	// 3. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	// 4. Unmarshal the configuration into the Config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// 5. Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
