// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"cogentcore.org/gpubuf/base/iox/tomlx"
	"cogentcore.org/gpubuf/base/iox/yamlx"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *app) *cobra.Command {
	var format, save string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration, or save it to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if save != "" {
				return SaveConfig(app.cfg, save)
			}
			switch format {
			case "toml":
				return tomlx.Write(app.cfg, cmd.OutOrStdout())
			case "yaml":
				return yamlx.Write(app.cfg, cmd.OutOrStdout())
			}
			return fmt.Errorf("gpubuf config: unknown format %q (want toml or yaml)", format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml or yaml")
	cmd.Flags().StringVarP(&save, "save", "o", "", "save to the given file instead, in the format of its extension")
	return cmd
}
