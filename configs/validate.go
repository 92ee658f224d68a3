// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/user"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errInvalidCookieDomain          = errors.New("invalid Cookie.Domain value")
	errInvalidCookiePath            = errors.New("invalid Cookie.Path value")
	errInvalidCookieSameSite        = errors.New("invalid Cookie.SameSite value, expected lax or strict")
	errNoPageRowsModules            = errors.New("PageRows.Modules must list at least one module")
	errInvalidPageRowsModule        = errors.New("invalid PageRows.Modules entry")
	errDuplicatePageRowsModule      = errors.New("duplicate PageRows.Modules entry")
	errInvalidLimiterRate           = errors.New("Limiter.RequestsPerSecond must be positive")
	errInvalidLimiterBurst          = errors.New("Limiter.Burst must be positive")
	errInvalidLogLevel              = errors.New("invalid Log.Level value")
	errInvalidLogFormat             = errors.New("invalid Log.Format value")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)

	// moduleIDRegexp keeps module identifiers valid inside a cookie name.
	moduleIDRegexp = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

	// cookiePathRegexp accepts an absolute path without characters that would
	// end or corrupt the Set-Cookie attribute.
	cookiePathRegexp = regexp.MustCompile(`^/[^\s;,\x00-\x1f\x7f]*$`)

	// cookieDomainRegexp accepts a host name, optionally with a leading dot.
	cookieDomainRegexp = regexp.MustCompile(`^\.?[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$`)
)

// validateAndSet validates the server configuration and populates some fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	if cfg.Cookie.Domain != "" {
		cfg.Cookie.Domain = strings.ToLower(strings.TrimSpace(cfg.Cookie.Domain))

		if !cookieDomainRegexp.MatchString(cfg.Cookie.Domain) {
			return fmt.Errorf("%w: %q", errInvalidCookieDomain, cfg.Cookie.Domain)
		}
	}

	if err := cfg.validateCookieScope(); err != nil {
		return err
	}

	if err := validatePageRowsModules(cfg.PageRows.Modules); err != nil {
		return err
	}

	if cfg.Limiter.Enabled {
		if cfg.Limiter.RequestsPerSecond <= 0 {
			return errInvalidLimiterRate
		}

		if cfg.Limiter.Burst <= 0 {
			return errInvalidLimiterBurst
		}
	}

	if _, ok := logLevels[cfg.Log.Level]; !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}

// sameSiteModes maps the accepted Cookie.SameSite values to their mode.
// "none" is left out: browsers drop SameSite=None cookies that are not
// Secure, and preference cookies never are.
var sameSiteModes = map[string]http.SameSite{
	"lax":    http.SameSiteLaxMode,
	"strict": http.SameSiteStrictMode,
}

// validateCookieScope checks Cookie.Path and Cookie.SameSite and sets Cookie.SameSiteMode.
func (cfg *ServerConfig) validateCookieScope() error {
	cfg.Cookie.Path = strings.TrimSpace(cfg.Cookie.Path)
	if !cookiePathRegexp.MatchString(cfg.Cookie.Path) {
		return fmt.Errorf("%w: %q", errInvalidCookiePath, cfg.Cookie.Path)
	}

	cfg.Cookie.SameSite = strings.ToLower(strings.TrimSpace(cfg.Cookie.SameSite))

	mode, ok := sameSiteModes[cfg.Cookie.SameSite]
	if !ok {
		return fmt.Errorf("%w: %q", errInvalidCookieSameSite, cfg.Cookie.SameSite)
	}

	cfg.Cookie.SameSiteMode = mode

	return nil
}

func validatePageRowsModules(modules []string) error {
	if len(modules) == 0 {
		return errNoPageRowsModules
	}

	for i, module := range modules {
		if !moduleIDRegexp.MatchString(module) {
			return fmt.Errorf("%w: %q", errInvalidPageRowsModule, module)
		}

		if slices.Contains(modules[:i], module) {
			return fmt.Errorf("%w: %q", errDuplicatePageRowsModule, module)
		}
	}

	return nil
}

// validateListener checks the unix socket or TCP settings in Basic.
func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = DefaultHost
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = DefaultPort
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		return nil
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	mode, err := parseSocketPermissions(cfg.Basic.RawUnixSocketPermissions)
	if err != nil {
		return err
	}

	cfg.Basic.UnixSocketPermissions = mode

	if cfg.Basic.UnixSocketUser != "" {
		lookup := func(name string) error { _, err := user.Lookup(name); return err }
		if digitsRegexp.MatchString(cfg.Basic.UnixSocketUser) {
			lookup = func(id string) error { _, err := user.LookupId(id); return err }
		}

		if lookup(cfg.Basic.UnixSocketUser) != nil {
			return errUnixSocketUserDoesNotExist
		}
	}

	if cfg.Basic.UnixSocketGroup != "" {
		lookup := func(name string) error { _, err := user.LookupGroup(name); return err }
		if digitsRegexp.MatchString(cfg.Basic.UnixSocketGroup) {
			lookup = func(id string) error { _, err := user.LookupGroupId(id); return err }
		}

		if lookup(cfg.Basic.UnixSocketGroup) != nil {
			return errUnixSocketGroupDoesNotExist
		}
	}

	return nil
}

// parseSocketPermissions accepts an octal mode ("660", "0660") or an ls-style
// string ("rw-rw----"). An empty value means 0o666.
func parseSocketPermissions(raw string) (os.FileMode, error) {
	switch {
	case raw == "":
		return 0o666, nil
	case fileModeOctalRegexp.MatchString(raw):
		mode, _ := strconv.ParseUint(raw, 8, 32)

		return os.FileMode(mode), nil
	case fileModeStringRegexp.MatchString(raw):
		const lastBit = 8

		mode := os.FileMode(0)

		for i, c := range raw {
			if c != '-' {
				mode |= 1 << (lastBit - i)
			}
		}

		return mode, nil
	default:
		return 0, errUnixSocketInvalidPermissions
	}
}
