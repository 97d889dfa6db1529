// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"cogentcore.org/gpubuf/base/errors"
	"cogentcore.org/gpubuf/base/fsx"
	"cogentcore.org/gpubuf/base/iox/tomlx"
	"cogentcore.org/gpubuf/base/iox/yamlx"
)

// Config is the configuration of the gpubuf tool, which can be read
// from a TOML or YAML file and overridden by command line flags.
type Config struct {
	// Includes are other config files that this one includes, which are
	// looked for in the directory of this file. Values set in this file
	// overwrite those set in included files.
	Includes []string `toml:"includes,omitempty" yaml:"includes,omitempty"`

	// Driver is the buffer driver: soft or webgpu.
	Driver string `toml:"driver" yaml:"driver"`

	// Fallback requests a software WebGPU adapter.
	Fallback bool `toml:"fallback" yaml:"fallback"`

	// Debug traces every driver call.
	Debug bool `toml:"debug" yaml:"debug"`

	// LogLevel is the minimum level logged: debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`

	// Demo configures the demo command.
	Demo DemoConfig `toml:"demo" yaml:"demo"`
}

// DemoConfig configures the demo command.
type DemoConfig struct {
	// Length is the number of float32 elements of the buffer.
	Length int `toml:"length" yaml:"length"`

	// Values fill the buffer, and must have Length elements.
	Values []float32 `toml:"values" yaml:"values"`

	// Index is the element set to Value.
	Index int `toml:"index" yaml:"index"`

	Value float32 `toml:"value" yaml:"value"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Driver:   "soft",
		LogLevel: "info",
		Demo: DemoConfig{
			Length: 5,
			Values: []float32{1, 2, 3, 4, 5},
			Index:  3,
			Value:  3.14,
		},
	}
}

// maxIncludeDepth bounds the nesting of includes.
const maxIncludeDepth = 10

// isYAML returns whether the file is read as YAML rather than TOML.
func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// openFiles reads the config from the given files, in order,
// choosing the format of each by its extension.
func openFiles(cfg *Config, files []string) error {
	for _, file := range files {
		var err error
		if isYAML(file) {
			err = yamlx.Open(cfg, file)
		} else {
			err = tomlx.Open(cfg, file)
		}
		if err != nil {
			return fmt.Errorf("gpubuf config %q: %w", file, err)
		}
	}
	return nil
}

// OpenConfig reads the config from the given file, looking for it and its
// includes on the given paths (the current directory if none). The includes
// are opened in the natural include order so that includers overwrite
// included settings, and cfg.Includes is set to the full include stack.
func OpenConfig(cfg *Config, file string, paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".", filepath.Dir(file)}
	}
	found, ok := findFile(paths, file)
	if !ok {
		return fmt.Errorf("gpubuf OpenConfig: no files found for %q", file)
	}
	files := []string{found}
	if err := openFiles(cfg, files); err != nil {
		return err
	}
	paths = append(paths, filepath.Dir(found))
	incs := includeStack(paths, cfg.Includes)
	if len(incs) == 0 {
		return nil
	}
	var errs []error
	for i := len(incs) - 1; i >= 0; i-- {
		if inc, ok := findFile(paths, incs[i]); ok {
			errs = append(errs, openFiles(cfg, []string{inc}))
		}
	}
	errors.Log(errors.Join(errs...))
	// reopen the including file
	if err := openFiles(cfg, files); err != nil {
		return err
	}
	cfg.Includes = incs
	return nil
}

// findFile returns the first match for file on paths.
func findFile(paths []string, file string) (string, bool) {
	files := fsx.FindFilesOnPaths(paths, file)
	if len(files) == 0 {
		return "", false
	}
	return files[0], true
}

// includeStack returns the given includes followed by everything they
// include in turn, depth first, each file only once.
func includeStack(paths []string, includes []string) []string {
	var stack []string
	seen := map[string]bool{}
	var add func(incs []string, depth int)
	add = func(incs []string, depth int) {
		if depth >= maxIncludeDepth {
			slog.Warn("gpubuf config: includes nested too deeply", "includes", incs)
			return
		}
		for _, inc := range incs {
			if seen[inc] {
				continue
			}
			seen[inc] = true
			stack = append(stack, inc)
			file, ok := findFile(paths, inc)
			if !ok {
				slog.Warn("gpubuf config: include not found", "include", inc)
				continue
			}
			var ic Config
			if errors.Log(openFiles(&ic, []string{file})) != nil {
				continue
			}
			add(ic.Includes, depth+1)
		}
	}
	add(includes, 0)
	return stack
}

// SaveConfig writes the config to the given file, in TOML or YAML
// depending on its extension.
func SaveConfig(cfg *Config, file string) error {
	if isYAML(file) {
		return yamlx.Save(cfg, file)
	}
	return tomlx.Save(cfg, file)
}

// logLevel parses the configured log level.
func (cfg *Config) logLevel() (slog.Level, error) {
	var lvl slog.Level
	err := lvl.UnmarshalText([]byte(cfg.LogLevel))
	return lvl, err
}
