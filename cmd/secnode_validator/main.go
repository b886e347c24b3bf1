package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"secnode_validator/internal/config"
	"secnode_validator/internal/logging"
	"secnode_validator/internal/reload"
	"secnode_validator/internal/validate"
	"secnode_validator/telemetry"
)

const (
	exitOK      = 0
	exitBlocked = 2
)

type lokiLabels map[string]string

func (l lokiLabels) String() string {
	parts := make([]string, 0, len(l))
	for k, v := range l {
		parts = append(parts, fmt.Sprintf("%s=%s", k, v))
	}
	return strings.Join(parts, ",")
}

func (l lokiLabels) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok {
		return fmt.Errorf("label must be key=value, got %q", value)
	}
	l[strings.TrimSpace(key)] = strings.TrimSpace(val)
	return nil
}

func main() {
	cfgPath := flag.String("config", "", "Path to the node configuration document (JSON or YAML)")
	outDir := flag.String("out", "outputs/runs/dev", "Output folder for run artifacts")
	watch := flag.Bool("watch", false, "Keep running and revalidate when the document changes")
	metricsListen := flag.String("metrics-listen", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	logLevel := flag.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFormat := flag.String("log-format", "json", "Log format (json or text)")
	lokiURL := flag.String("loki-url", "", "Ship logs to this Loki push endpoint")
	labels := lokiLabels{}
	flag.Var(labels, "loki-label", "Loki stream label as key=value (repeatable)")
	flag.Parse()

	if *cfgPath == "" {
		fmt.Fprintln(os.Stderr, "missing required flag: -config")
		flag.Usage()
		os.Exit(exitBlocked)
	}

	logger, cleanup, err := logging.Setup(logging.Config{
		Level:  *logLevel,
		Format: *logFormat,
		Loki: logging.LokiConfig{
			Enabled: *lokiURL != "",
			URL:     *lokiURL,
			Labels:  labels,
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to setup logger")
	}
	defer cleanup()
	logger = logger.With().Str("run_id", uuid.NewString()).Logger()
	log.Logger = logger

	collector := telemetry.Collector(telemetry.Noop())
	if *metricsListen != "" {
		prom, err := telemetry.NewPrometheusCollector(nil)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to register metrics")
		}
		collector = prom
		go serveMetrics(*metricsListen, logger)
	}

	runner := validate.NewRunner(
		validate.WithLogger(logger),
		validate.WithCollector(collector),
	)

	if !*watch {
		os.Exit(runOnce(*cfgPath, *outDir, runner, collector, logger))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	os.Exit(runWatch(ctx, *cfgPath, *outDir, runner, collector, logger))
}

func serveMetrics(listen string, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(listen, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics endpoint stopped")
	}
}

// runOnce executes a single validation run and writes the artifacts. Exit
// code 2 means generation must not proceed: either the document could not
// be loaded or at least one rule reported an error.
func runOnce(cfgPath, outDir string, runner *validate.Runner, collector telemetry.Collector, logger zerolog.Logger) int {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", outDir).Msg("failed to create output folder")
		return exitBlocked
	}

	doc, err := config.Load(cfgPath)
	if doc != nil && doc.Raw != nil {
		if writeErr := writeRaw(outDir, doc.Raw); writeErr != nil {
			logger.Error().Err(writeErr).Msg("failed to write raw config")
			return exitBlocked
		}
	}
	if err != nil {
		var shapeErr *config.SchemaError
		if errors.As(err, &shapeErr) {
			for _, v := range shapeErr.Violations {
				logger.Error().Str("path", v.Path).Str("reason", v.Message).Msg("document shape violation")
			}
		} else {
			logger.Error().Err(err).Msg("failed to load configuration")
		}
		collector.IncValidationRun("invalid")
		return exitBlocked
	}

	normalized, err := doc.Normalized()
	if err != nil {
		logger.Error().Err(err).Msg("failed to normalize configuration")
		return exitBlocked
	}
	if err := os.WriteFile(filepath.Join(outDir, "normalized_config.json"), normalized, 0o644); err != nil {
		logger.Error().Err(err).Msg("failed to write normalized config")
		return exitBlocked
	}

	findings := runner.Run(doc.Node)
	report := validate.BuildReport(findings)

	encoded, err := report.Encode()
	if err != nil {
		logger.Error().Err(err).Msg("failed to encode report")
		return exitBlocked
	}
	reportPath := filepath.Join(outDir, "validation_report.json")
	if err := os.WriteFile(reportPath, encoded, 0o644); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
		return exitBlocked
	}

	logger.Info().
		Int("errors", report.Summary.Errors).
		Int("warnings", report.Summary.Warnings).
		Str("report", reportPath).
		Msg("validation completed")

	if validate.HasErrors(findings) {
		collector.IncValidationRun("blocked")
		logger.Error().Msg("rule validation failed, generation cannot proceed")
		return exitBlocked
	}
	collector.IncValidationRun("passed")
	return exitOK
}

// runWatch revalidates the document whenever it changes on disk. The last
// completed run decides the exit code once the context is cancelled.
func runWatch(ctx context.Context, cfgPath, outDir string, runner *validate.Runner, collector telemetry.Collector, logger zerolog.Logger) int {
	watcher, err := reload.NewWatcher(cfgPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create watcher")
		return exitBlocked
	}

	code := runOnce(cfgPath, outDir, runner, collector, logger)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return code
		case <-ticker.C:
			if !watcher.Check() {
				continue
			}
			collector.IncHotReload(watcher.Path())
			logger.Info().Str("file", watcher.Path()).Msg("configuration changed, revalidating")
			code = runOnce(cfgPath, outDir, runner, collector, logger)
		}
	}
}

func writeRaw(outDir string, raw interface{}) error {
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal raw config: %w", err)
	}
	return os.WriteFile(filepath.Join(outDir, "raw_config.json"), data, 0o644)
}
