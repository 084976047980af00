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

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cardinalhq/marketcore/internal/dbopen"
	"github.com/cardinalhq/marketcore/mdb"
)

var auditLimit int32

var auditCmd = &cobra.Command{
	Use:   "audit <record-id>",
	Short: "Show the audit trail for a resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := setupLogging(); err != nil {
			return err
		}
		ctx := cmd.Context()

		recordID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("parse record id: %w", err)
		}

		pool, err := dbopen.OpenPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		store := mdb.NewStore(pool)

		records, err := store.AuditForRecord(ctx, recordID, auditLimit)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("%s %s %s %s: %s -> %s actor=%s metadata=%s\n",
				rec.CreatedAt.Format("2006-01-02T15:04:05Z"), rec.ID,
				rec.ResourceType, rec.EventType,
				rec.StatusBefore, rec.StatusAfter, rec.Actor, string(rec.Metadata))
		}
		fmt.Printf("%d audit entries\n", len(records))
		return nil
	},
}

func init() {
	auditCmd.Flags().Int32Var(&auditLimit, "limit", 50, "maximum entries to show")
	rootCmd.AddCommand(auditCmd)
}
