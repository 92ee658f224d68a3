// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Global exposes the server configuration.
var Global ServerConfig

// envPrefix prefixes every environment variable read by this package.
const envPrefix = "COOKIESTORE_"

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"COOKIESTORE_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"COOKIESTORE_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"COOKIESTORE_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"COOKIESTORE_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"COOKIESTORE_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"COOKIESTORE_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
	} `yaml:"basic"`

	Cookie struct {
		// Domain overrides the domain preference cookies are scoped to.
		// When empty, the registrable domain of each request's host is used.
		Domain string `env:"COOKIESTORE_COOKIE_DOMAIN,overwrite" yaml:"domain"`

		// Path scopes preference cookies. Changing it orphans preferences
		// stored under the previous path until they expire.
		Path string `env:"COOKIESTORE_COOKIE_PATH,overwrite" yaml:"path"`

		// SameSite is the SameSite mode of preference cookies: "lax" or "strict".
		SameSite     string        `env:"COOKIESTORE_COOKIE_SAMESITE,overwrite" yaml:"sameSite"`
		SameSiteMode http.SameSite `yaml:"-"`
	} `yaml:"cookie"`

	PageRows struct {
		// Modules lists the module identifiers offered on the settings page.
		Modules []string `env:"COOKIESTORE_PAGE_ROWS_MODULES,overwrite" yaml:"modules"`
	} `yaml:"pageRows"`

	Limiter struct {
		Enabled           bool `env:"COOKIESTORE_LIMITER,overwrite" yaml:"enabled"`
		RequestsPerSecond int  `env:"COOKIESTORE_LIMITER_RPS,overwrite" yaml:"requestsPerSecond"`
		Burst             int  `env:"COOKIESTORE_LIMITER_BURST,overwrite" yaml:"burst"`
	} `yaml:"limiter"`

	Response struct {
		Compression bool `env:"COOKIESTORE_COMPRESSION,overwrite" yaml:"compression"`
	} `yaml:"response"`

	Development struct {
		InDevelopment bool `env:"COOKIESTORE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"COOKIESTORE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"COOKIESTORE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"COOKIESTORE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	// Precedence: -config flag, then COOKIESTORE_CONFIGFILE, then ./config.yaml with a
	// fallback to ./config.yml.
	configFilePath := parsedConfigFlagValue

	if !configFlagUserSet {
		if envVar := os.Getenv(envPrefix + "CONFIGFILE"); envVar != "" {
			configFilePath = envVar
		} else if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			if _, statErr := os.Stat("./config.yml"); statErr == nil {
				configFilePath = "./config.yml"
			}
		}
	}

	if err := cfg.load(configFilePath); err != nil {
		return err
	}

	cfg.setupAudit()
	cfg.print()

	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

// load applies defaults, the YAML file at configFilePath, the .env file and the
// environment, in that order, then validates the result.
func (cfg *ServerConfig) load(configFilePath string) error {
	cfg.SetDefaults()
	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	return nil
}

// staticSkippedPathPrefixes are paths whose requests are not logged.
var staticSkippedPathPrefixes = []string{"/favicon.ico", "/robots.txt"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	for _, marker := range []string{"/.dockerenv", "/.containerenv"} {
		if _, err := os.Stat(marker); err == nil {
			return true
		}
	}

	// #nosec G304 -- well-known system file read for heuristics only.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}

	content := string(cgroup)

	for _, keyword := range []string{"docker", "kubepods", "containerd", "lxc", "crio", ".machine"} {
		if strings.Contains(content, keyword) {
			return true
		}
	}

	return false
}
