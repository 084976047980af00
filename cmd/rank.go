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
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/marketcore/internal/dbopen"
	"github.com/cardinalhq/marketcore/internal/matching"
	"github.com/cardinalhq/marketcore/mdb"
)

var (
	rankStatsFile string
	rankFromDB    bool
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and rank worker candidates",
	Long: `Rank workers either from a JSON file containing an array of worker
statistics records, or from the worker_stats table with --db.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := setupLogging(); err != nil {
			return err
		}
		ctx := cmd.Context()

		var statsList []matching.WorkerStats
		switch {
		case rankFromDB:
			pool, err := dbopen.OpenPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			store := mdb.NewStore(pool)
			statsList, err = store.ListWorkerStats(ctx)
			if err != nil {
				return err
			}
		case rankStatsFile != "":
			data, err := os.ReadFile(rankStatsFile)
			if err != nil {
				return err
			}
			if err := json.Unmarshal(data, &statsList); err != nil {
				return fmt.Errorf("parse %s: %w", rankStatsFile, err)
			}
		default:
			return fmt.Errorf("either --stats-file or --db is required")
		}

		ranked := matching.RankWorkers(statsList)
		for _, m := range ranked {
			fmt.Printf("#%d %s score=%d reasons=[%s]\n",
				m.MatchRank, m.WorkerID, m.Score, strings.Join(m.Reasons, "; "))
		}
		fmt.Printf("%d of %d candidates ranked\n", len(ranked), len(statsList))
		return nil
	},
}

func init() {
	rankCmd.Flags().StringVar(&rankStatsFile, "stats-file", "", "JSON file with worker statistics records")
	rankCmd.Flags().BoolVar(&rankFromDB, "db", false, "rank every worker in the worker_stats table")
	rootCmd.AddCommand(rankCmd)
}
