// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gpubuf exercises typed GPU buffers against the soft or
// WebGPU driver.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"cogentcore.org/gpubuf/base/errors"
	"cogentcore.org/gpubuf/gpu"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

// app holds the state shared by the commands.
type app struct {
	cfg *Config

	// configFile is the --config flag.
	configFile string

	// logOut is where logs are written.
	logOut io.Writer

	// profileMode and profilePath are the --profile and --profile-path flags.
	profileMode string
	profilePath string

	profiler interface{ Stop() }
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: DefaultConfig(), logOut: os.Stderr}
	root := &cobra.Command{
		Use:           "gpubuf",
		Short:         "Typed GPU buffer objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.configure(cmd); err != nil {
				return err
			}
			return a.startProfile()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			a.stopProfile()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.configFile, "config", "c", "", "config file (.toml, .yaml or .yml)")
	pf.StringP("driver", "d", a.cfg.Driver, "buffer driver: soft or webgpu")
	pf.Bool("fallback", a.cfg.Fallback, "request a software WebGPU adapter")
	pf.Bool("debug", a.cfg.Debug, "trace every driver call")
	pf.String("log-level", a.cfg.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&a.profileMode, "profile", "", "profile the command: cpu, mem or mutex")
	pf.StringVar(&a.profilePath, "profile-path", "", "directory for the profile (default a temporary directory)")

	root.AddCommand(newDemoCmd(a), newUniformCmd(a), newConfigCmd(a))
	return root
}

// configure reads the config file, then applies the flags that were
// set on the command line, and sets up logging.
func (a *app) configure(cmd *cobra.Command) error {
	if a.configFile != "" {
		if err := OpenConfig(a.cfg, a.configFile); err != nil {
			return err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("driver") {
		a.cfg.Driver = errors.Log1(fs.GetString("driver"))
	}
	if fs.Changed("fallback") {
		a.cfg.Fallback = errors.Log1(fs.GetBool("fallback"))
	}
	if fs.Changed("debug") {
		a.cfg.Debug = errors.Log1(fs.GetBool("debug"))
	}
	if fs.Changed("log-level") {
		a.cfg.LogLevel = errors.Log1(fs.GetString("log-level"))
	}
	lvl, err := a.cfg.logLevel()
	if err != nil {
		return err
	}
	if a.cfg.Debug && lvl > slog.LevelDebug {
		lvl = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.logOut, &slog.HandlerOptions{Level: lvl})))
	gpu.Debug = a.cfg.Debug
	return nil
}

// startProfile starts the profile selected by --profile, if any.
// Only one profile can run at a time.
func (a *app) startProfile() error {
	var mode func(*profile.Profile)
	switch a.profileMode {
	case "":
		return nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "mutex":
		mode = profile.MutexProfile
	default:
		return fmt.Errorf("gpubuf: unknown profile %q (want cpu, mem or mutex)", a.profileMode)
	}
	opts := []func(*profile.Profile){mode, profile.NoShutdownHook, profile.Quiet}
	if a.profilePath != "" {
		opts = append(opts, profile.ProfilePath(a.profilePath))
	}
	a.profiler = profile.Start(opts...)
	return nil
}

func (a *app) stopProfile() {
	if a.profiler != nil {
		a.profiler.Stop()
		a.profiler = nil
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("gpubuf", "err", err)
		os.Exit(1)
	}
}
