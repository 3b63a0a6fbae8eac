// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/rewriterc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// newRulesCmd creates the command that prints the effective rule table
func newRulesCmd(opts *rootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show the rules a pass would apply, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			log.FromContext(cmd.Context()).Header(cfg.String())

			data := pterm.TableData{{"#", "Kind", "Pattern", "Replacement"}}
			for i, r := range cfg.Rules {
				kind := "text"
				if r.Regex {
					kind = "regex"
				}
				data = append(data, []string{fmt.Sprintf("%d", i+1), kind, r.From, r.To})
			}

			if err := pterm.DefaultTable.WithHasHeader().WithWriter(cmd.OutOrStdout()).WithData(data).Render(); err != nil {
				return errors.Errorf("rendering rules: %w", err)
			}
			return nil
		},
	}

	return cmd
}
