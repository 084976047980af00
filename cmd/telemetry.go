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
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cardinalhq/oteltools/pkg/telemetry"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

const serviceName = "marketcore"

// otlpEnabled reports whether log records and spans should be exported over
// OTLP in addition to the local text output.
func otlpEnabled() bool {
	return os.Getenv("OTEL_SERVICE_NAME") != "" && os.Getenv("ENABLE_OTLP_TELEMETRY") == "true"
}

// logHandler builds the process log handler: a plain text handler, fanned out
// to the OTel log bridge when OTLP export is enabled.
func logHandler(level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if otlpEnabled() {
		return slogmulti.Fanout(
			slog.NewTextHandler(os.Stderr, opts),
			otelslog.NewHandler(serviceName),
		)
	}
	return slog.NewTextHandler(os.Stderr, opts)
}

// setupOTelSDK starts the OTel SDK when export is enabled and registers its
// shutdown to run after the command finishes.
func setupOTelSDK() error {
	if !otlpEnabled() {
		return nil
	}
	slog.Info("OpenTelemetry exporting enabled")
	otelShutdown, err := telemetry.SetupOTelSDK(context.Background())
	if err != nil {
		return fmt.Errorf("failed to setup OpenTelemetry SDK: %w", err)
	}
	cobra.OnFinalize(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(ctx); err != nil {
			slog.Warn("failed to shut down OpenTelemetry SDK", slog.Any("error", err))
		}
	})
	return nil
}
