// Package health reports the health of a running engine.
//
// The checker serves three endpoints:
// - /health - Basic liveness check
// - /health/ready - Readiness check for load balancers
// - /health/detailed - Full status including ledger invariants
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/log"

	"github.com/nativeswap/nativeswap/app"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
	StatusUnknown   Status = "unknown"
)

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Status    Status         `json:"status"`
	Message   string         `json:"message,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Metrics   map[string]any `json:"metrics,omitempty"`
}

// HealthCheck represents the overall health check response
type HealthCheck struct {
	Status     Status                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
}

// Engine is the part of the engine the checker probes.
type Engine interface {
	Status(ctx context.Context) (app.Status, error)
	CheckInvariants(ctx context.Context) ([]string, error)
}

// Checker performs health checks on the engine
type Checker struct {
	logger log.Logger
	engine Engine

	maxResponseTime time.Duration

	mu            sync.RWMutex
	lastCheck     time.Time
	cachedHealth  *HealthCheck
	cacheDuration time.Duration
}

// Config holds configuration for the health checker
type Config struct {
	// MaxResponseTime is the slowest acceptable status query
	MaxResponseTime time.Duration

	// CacheDuration is how long to cache readiness results
	CacheDuration time.Duration
}

// DefaultConfig returns the default health check configuration
func DefaultConfig() Config {
	return Config{
		MaxResponseTime: 2 * time.Second,
		CacheDuration:   5 * time.Second,
	}
}

// NewChecker creates a new health checker
func NewChecker(logger log.Logger, cfg Config, engine Engine) (*Checker, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	return &Checker{
		logger:          logger,
		engine:          engine,
		maxResponseTime: cfg.MaxResponseTime,
		cacheDuration:   cfg.CacheDuration,
	}, nil
}

// Check performs a health check. Detailed checks also run the ledger
// invariants and are never served from cache.
func (c *Checker) Check(ctx context.Context, detailed bool) (*HealthCheck, error) {
	if !detailed && c.shouldUseCached() {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.cachedHealth, nil
	}

	health := &HealthCheck{
		Timestamp:  time.Now(),
		Components: make(map[string]ComponentHealth),
	}

	checks := []struct {
		name string
		fn   func(context.Context) ComponentHealth
	}{
		{"store", c.checkStore},
		{"ledger", c.checkLedger},
	}
	if detailed {
		checks = append(checks, struct {
			name string
			fn   func(context.Context) ComponentHealth
		}{"invariants", c.checkInvariants})
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, check := range checks {
		wg.Add(1)
		go func(name string, fn func(context.Context) ComponentHealth) {
			defer wg.Done()
			result := fn(ctx)
			mu.Lock()
			health.Components[name] = result
			mu.Unlock()
		}(check.name, check.fn)
	}
	wg.Wait()

	health.Status = c.calculateOverallStatus(health.Components)
	if st, ok := health.Components["ledger"].Metrics["ledger_version"].(string); ok {
		health.Version = st
	}

	if !detailed {
		c.mu.Lock()
		c.lastCheck = time.Now()
		c.cachedHealth = health
		c.mu.Unlock()
	}
	return health, nil
}

// checkStore verifies the committed store answers in time
func (c *Checker) checkStore(ctx context.Context) ComponentHealth {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.maxResponseTime)
	defer cancel()

	start := time.Now()
	st, err := c.engine.Status(timeoutCtx)
	duration := time.Since(start)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("Store query failed: %v", err),
			Timestamp: time.Now(),
		}
	}

	metrics := map[string]any{
		"query_time_ms": duration.Milliseconds(),
		"version":       st.Version,
	}

	componentStatus := StatusHealthy
	message := "Store is responsive"
	if duration > c.maxResponseTime/2 {
		componentStatus = StatusDegraded
		message = "Store response time is degraded"
	}

	return ComponentHealth{
		Status:    componentStatus,
		Message:   message,
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkLedger reports whether the ledger accepts trades
func (c *Checker) checkLedger(ctx context.Context) ComponentHealth {
	st, err := c.engine.Status(ctx)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnknown,
			Message:   fmt.Sprintf("Failed to read ledger status: %v", err),
			Timestamp: time.Now(),
		}
	}

	metrics := map[string]any{
		"ledger_version": st.LedgerVersion,
		"pools":          st.Pools,
		"fee_bps":        st.FeeBps,
		"paused":         st.Paused,
	}

	switch {
	case !st.Initialized:
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   "Genesis has not been applied",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	case st.Paused:
		return ComponentHealth{
			Status:    StatusDegraded,
			Message:   "Ledger is paused",
			Timestamp: time.Now(),
			Metrics:   metrics,
		}
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "Ledger is accepting trades",
		Timestamp: time.Now(),
		Metrics:   metrics,
	}
}

// checkInvariants runs every ledger invariant against committed state
func (c *Checker) checkInvariants(ctx context.Context) ComponentHealth {
	broken, err := c.engine.CheckInvariants(ctx)
	if err != nil {
		return ComponentHealth{
			Status:    StatusUnknown,
			Message:   fmt.Sprintf("Invariant check failed: %v", err),
			Timestamp: time.Now(),
		}
	}
	if len(broken) > 0 {
		return ComponentHealth{
			Status:    StatusUnhealthy,
			Message:   fmt.Sprintf("%d invariants broken", len(broken)),
			Timestamp: time.Now(),
			Metrics:   map[string]any{"broken": broken},
		}
	}
	return ComponentHealth{
		Status:    StatusHealthy,
		Message:   "All invariants hold",
		Timestamp: time.Now(),
	}
}

// calculateOverallStatus determines the overall health status based on component statuses
func (c *Checker) calculateOverallStatus(components map[string]ComponentHealth) Status {
	hasUnhealthy := false
	hasDegraded := false

	for _, component := range components {
		switch component.Status {
		case StatusUnhealthy:
			hasUnhealthy = true
		case StatusDegraded, StatusUnknown:
			hasDegraded = true
		}
	}

	if hasUnhealthy {
		return StatusUnhealthy
	}
	if hasDegraded {
		return StatusDegraded
	}
	return StatusHealthy
}

// shouldUseCached determines if cached health check results should be used
func (c *Checker) shouldUseCached() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cachedHealth == nil {
		return false
	}
	return time.Since(c.lastCheck) < c.cacheDuration
}

// HandleHealth handles the basic liveness check endpoint
func (c *Checker) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// HandleReady handles the readiness check endpoint. A paused ledger is
// degraded but still ready.
func (c *Checker) HandleReady(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, false)
}

// HandleDetailed handles the detailed health check endpoint
func (c *Checker) HandleDetailed(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, true)
}

func (c *Checker) serve(w http.ResponseWriter, r *http.Request, detailed bool) {
	health, err := c.Check(r.Context(), detailed)
	if err != nil {
		c.logger.Error("Health check failed", "error", err, "detailed", detailed)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}

	statusCode := http.StatusOK
	if health.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}
	writeJSON(w, statusCode, health)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
