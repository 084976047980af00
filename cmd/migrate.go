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

	"github.com/cardinalhq/marketcore/internal/dbopen"
	"github.com/cardinalhq/marketcore/mdb/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := setupLogging(); err != nil {
			return err
		}
		ctx := cmd.Context()

		pool, err := dbopen.OpenPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := migrations.RunMigrations(ctx, pool); err != nil {
			return err
		}

		version, dirty, err := migrations.CurrentVersion(pool)
		if err != nil {
			return err
		}
		fmt.Printf("schema version %d (dirty=%v)\n", version, dirty)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
