package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector captures telemetry events emitted by the validation engine.
//
// Implementations may forward metrics to Prometheus, loggers or other
// monitoring systems. They should be inexpensive to call because hooks are
// executed inline with validation runs, including watch-mode reruns.
type Collector interface {
	IncValidationRun(outcome string)
	ObserveFindings(ruleID string, severity string, count int)
	IncHotReload(file string)
}

type noopCollector struct{}

// Noop returns a collector that discards all metrics.
func Noop() Collector {
	return noopCollector{}
}

func (noopCollector) IncValidationRun(string)             {}
func (noopCollector) ObserveFindings(string, string, int) {}
func (noopCollector) IncHotReload(string)                 {}

// PrometheusCollector exposes validation counters via Prometheus.
type PrometheusCollector struct {
	runs       *prometheus.CounterVec
	findings   *prometheus.CounterVec
	hotReloads *prometheus.CounterVec
}

var (
	runCounter         *prometheus.CounterVec
	runCounterLock     sync.Mutex
	findingCounter     *prometheus.CounterVec
	findingCounterLock sync.Mutex
	reloadCounter      *prometheus.CounterVec
	reloadCounterLock  sync.Mutex
)

// NewPrometheusCollector registers the required metrics with the provided registerer.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	runCounterLock.Lock()
	if runCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secnode_validator_runs_total",
			Help: "Number of validation runs grouped by outcome (passed, blocked, invalid).",
		}, []string{"outcome"})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					runCounter = existing
				} else {
					runCounterLock.Unlock()
					return nil, err
				}
			} else {
				runCounterLock.Unlock()
				return nil, err
			}
		} else {
			runCounter = counter
		}
	}
	runCounterLock.Unlock()

	findingCounterLock.Lock()
	if findingCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secnode_validator_findings_total",
			Help: "Number of findings produced per rule and severity.",
		}, []string{"rule", "severity"})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					findingCounter = existing
				} else {
					findingCounterLock.Unlock()
					return nil, err
				}
			} else {
				findingCounterLock.Unlock()
				return nil, err
			}
		} else {
			findingCounter = counter
		}
	}
	findingCounterLock.Unlock()

	reloadCounterLock.Lock()
	if reloadCounter == nil {
		counter := prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "secnode_validator_config_hot_reload_total",
			Help: "Number of watch-mode revalidations triggered per configuration file.",
		}, []string{"file"})
		if err := reg.Register(counter); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
					reloadCounter = existing
				} else {
					reloadCounterLock.Unlock()
					return nil, err
				}
			} else {
				reloadCounterLock.Unlock()
				return nil, err
			}
		} else {
			reloadCounter = counter
		}
	}
	reloadCounterLock.Unlock()

	return &PrometheusCollector{
		runs:       runCounter,
		findings:   findingCounter,
		hotReloads: reloadCounter,
	}, nil
}

// IncValidationRun increments the run counter for the given outcome.
func (p *PrometheusCollector) IncValidationRun(outcome string) {
	if p == nil || p.runs == nil {
		return
	}
	p.runs.WithLabelValues(outcome).Inc()
}

// ObserveFindings records findings for a rule and severity.
func (p *PrometheusCollector) ObserveFindings(ruleID string, severity string, count int) {
	if p == nil || p.findings == nil || count == 0 {
		return
	}
	p.findings.WithLabelValues(ruleID, severity).Add(float64(count))
}

// IncHotReload increments the counter for the provided file path.
func (p *PrometheusCollector) IncHotReload(file string) {
	if p == nil || p.hotReloads == nil {
		return
	}
	p.hotReloads.WithLabelValues(file).Inc()
}
