// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/marketcore/internal/lifecycle"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the transition table registry for consistency",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := lifecycle.ValidateTables(); err != nil {
			return err
		}
		for _, rt := range lifecycle.RegisteredTypes() {
			table, _ := lifecycle.TableFor(rt)
			fmt.Printf("%s:\n", rt)
			for _, status := range table.Statuses() {
				if table.IsTerminal(status) {
					fmt.Printf("  %s (terminal)\n", status)
					continue
				}
				fmt.Printf("  %s -> %v\n", status, table.AllowedNext(status))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
