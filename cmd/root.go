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
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cardinalhq/marketcore/config"
	"github.com/cardinalhq/marketcore/internal/idgen"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marketcore",
	Short: "Marketplace lifecycle guard and worker matching core",
	Long: `Operational tooling for the marketplace core: schema migrations,
transition table validation, worker ranking, and audit inspection.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setupLogging configures the process default logger from config and starts
// the OTel SDK when exporting is enabled.
func setupLogging() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(logHandler(level)).With(
		slog.String("service", serviceName),
		slog.Int64("instance_id", idgen.DefaultFlakeGenerator.NextID()),
	))
	return cfg, setupOTelSDK()
}
