package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func resetCounters() {
	runCounterLock.Lock()
	runCounter = nil
	runCounterLock.Unlock()
	findingCounterLock.Lock()
	findingCounter = nil
	findingCounterLock.Unlock()
	reloadCounterLock.Lock()
	reloadCounter = nil
	reloadCounterLock.Unlock()
}

func TestNoopCollector(t *testing.T) {
	collector := Noop()
	require.NotNil(t, collector)
	collector.IncValidationRun("passed")
	collector.ObserveFindings("R-PLC-010", "WARNING", 3)
	collector.IncHotReload("node.json")
}

func TestPrometheusCollectorRegistersAndReusesCounters(t *testing.T) {
	resetCounters()

	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg)
	require.NoError(t, err)
	require.NotNil(t, collector)

	collector.IncValidationRun("passed")
	collector.ObserveFindings("R-PLC-010", "WARNING", 3)
	collector.IncHotReload("node.json")

	metrics, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, metrics, 3)

	byName := make(map[string]*dto.MetricFamily, len(metrics))
	for _, mf := range metrics {
		byName[mf.GetName()] = mf
	}
	requireCounterValue(t, byName["secnode_validator_runs_total"], 1)
	requireCounterValue(t, byName["secnode_validator_findings_total"], 3)
	requireCounterValue(t, byName["secnode_validator_config_hot_reload_total"], 1)

	again, err := NewPrometheusCollector(reg)
	require.NoError(t, err)
	require.Same(t, collector.runs, again.runs)

	again.IncValidationRun("passed")
	metrics, err = reg.Gather()
	require.NoError(t, err)
	for _, mf := range metrics {
		if mf.GetName() == "secnode_validator_runs_total" {
			requireCounterValue(t, mf, 2)
		}
	}
}

func TestObserveFindingsIgnoresZeroCount(t *testing.T) {
	resetCounters()

	reg := prometheus.NewRegistry()
	collector, err := NewPrometheusCollector(reg)
	require.NoError(t, err)

	collector.ObserveFindings("R-DI-001", "ERROR", 0)

	metrics, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range metrics {
		require.NotEqual(t, "secnode_validator_findings_total", mf.GetName())
	}
}

func requireCounterValue(t *testing.T, mf *dto.MetricFamily, value float64) {
	t.Helper()
	require.NotNil(t, mf)
	require.Len(t, mf.Metric, 1)
	require.NotNil(t, mf.Metric[0].Counter)
	require.Equal(t, value, mf.Metric[0].Counter.GetValue())
}
