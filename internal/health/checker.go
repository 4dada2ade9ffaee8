package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const checkTimeout = 2 * time.Second

// Pinger reports whether a single dependency is reachable. *pgxpool.Pool
// satisfies it directly; other dependencies wrap their reachability probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// CheckResult is the health of one dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Result is the aggregate health response. Status is "down" if any
// dependency check failed.
type Result struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

type check struct {
	name   string
	pinger Pinger
}

// Checker probes a set of named dependencies and exports their state as a
// Prometheus gauge labelled by dependency name.
type Checker struct {
	checks []check
	logger *slog.Logger
	gauge  *prometheus.GaugeVec
}

// NewChecker registers the health gauge on reg and returns an empty checker.
// Dependencies are attached with Add.
func NewChecker(logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bojbot",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		logger: logger.With("component", "health"),
		gauge:  gauge,
	}
}

// Add registers a named dependency to be probed on every readiness check.
func (c *Checker) Add(name string, p Pinger) *Checker {
	c.checks = append(c.checks, check{name: name, pinger: p})
	return c
}

// Liveness reports that the process itself is running.
func (c *Checker) Liveness(_ context.Context) Result {
	return Result{Status: "up"}
}

// Readiness pings every registered dependency and reports per-check status.
func (c *Checker) Readiness(ctx context.Context) Result {
	result := Result{
		Status: "up",
		Checks: make(map[string]CheckResult, len(c.checks)),
	}

	for _, chk := range c.checks {
		if err := c.ping(ctx, chk.pinger); err != nil {
			c.logger.Warn("health check failed", "dependency", chk.name, "error", err)
			result.Status = "down"
			result.Checks[chk.name] = CheckResult{Status: "down", Error: err.Error()}
			c.gauge.WithLabelValues(chk.name).Set(0)
			continue
		}
		result.Checks[chk.name] = CheckResult{Status: "up"}
		c.gauge.WithLabelValues(chk.name).Set(1)
	}

	return result
}

func (c *Checker) ping(ctx context.Context, p Pinger) error {
	pingCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return p.Ping(pingCtx)
}
