// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Command genconfig writes example configuration files generated from the defaults.
//
//	go run ./cmd/genconfig [-out deploy]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	config "github.com/cjnimes/Cookie/configs"
	"github.com/cjnimes/Cookie/core/audit"
)

const (
	envOutputFile  = ".env.example"
	yamlOutputFile = "config.yaml.example"
	filePerm       = 0o644
	dirPerm        = 0o755

	envFileHeader = `# Cookiestore configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.

`
	yamlFileHeader = `# Cookiestore configuration (via configuration file)
#
# Copy this file to config.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
)

func main() {
	audit.SetDefaultLogger()

	outDir := flag.String("out", "deploy", "Directory the example files are written to.")
	flag.Parse()

	cfg := defaultConfig()

	yamlContent, err := renderYAML(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	if err := os.MkdirAll(*outDir, dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", *outDir).Msg("Failed to create output directory")
	}

	writeFile(filepath.Join(*outDir, envOutputFile), renderEnv(cfg))
	writeFile(filepath.Join(*outDir, yamlOutputFile), yamlContent)
}

// defaultConfig returns the defaults as the server would resolve them for TCP.
func defaultConfig() *config.ServerConfig {
	cfg := &config.ServerConfig{}
	cfg.SetDefaults()

	cfg.Basic.Host = config.DefaultHost
	cfg.Basic.Port = config.DefaultPort

	return cfg
}

func writeFile(path, content string) {
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write example file")
	}

	log.Info().Str("path", path).Msg("Successfully generated example file")
}

// renderEnv lists every environment variable of cfg, grouped by section.
//
// Only the listener address is left uncommented.
func renderEnv(cfg *config.ServerConfig) string {
	var sb strings.Builder
	sb.WriteString(envFileHeader)

	val := reflect.ValueOf(*cfg)
	typ := val.Type()

	// Iterate over the top-level struct fields.
	for i := range typ.NumField() {
		structField := typ.Field(i)
		structValue := val.Field(i)

		if structValue.Kind() != reflect.Struct || structField.Name == "Build" {
			continue
		}

		var section strings.Builder

		// Iterate over the fields of the nested struct.
		innerTyp := structValue.Type()
		for j := range innerTyp.NumField() {
			field := innerTyp.Field(j)
			value := structValue.Field(j)

			tag, ok := field.Tag.Lookup("env")
			if !ok {
				continue
			}

			envVarName := strings.Split(tag, ",")[0]

			switch {
			case envVarName == "COOKIESTORE_PORT" || envVarName == "COOKIESTORE_HOST":
				fmt.Fprintf(&section, "%s=\"%v\"\n", envVarName, value.Interface())
			case value.Kind() == reflect.Slice:
				fmt.Fprintf(&section, "# %s=%s\n", envVarName, joinSlice(value))
			case value.Kind() == reflect.String && value.Len() == 0:
				fmt.Fprintf(&section, "# %s=\n", envVarName)
			default:
				fmt.Fprintf(&section, "# %s=%v\n", envVarName, value.Interface())
			}
		}

		if section.Len() == 0 {
			continue
		}

		fmt.Fprintf(&sb, "## %s\n%s\n", structField.Name, section.String())
	}

	return sb.String()
}

func joinSlice(value reflect.Value) string {
	parts := make([]string, 0, value.Len())
	for i := range value.Len() {
		parts = append(parts, fmt.Sprint(value.Index(i).Interface()))
	}

	return strings.Join(parts, ",")
}

// renderYAML marshals cfg and comments out every setting, keeping section headers.
func renderYAML(cfg *config.ServerConfig) (string, error) {
	var yamlContent strings.Builder
	if err := yaml.NewEncoder(&yamlContent, yaml.Indent(2)).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "basic:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)

			continue
		}

		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	return sb.String(), nil
}
