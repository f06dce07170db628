package utils

import (
	"context"
	"sync"
	"time"
)

// HealthCheck pings one dependency.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Checks    map[string]bool `json:"checks"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every check passed on the last probe.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Checks {
		if !ok {
			return false
		}
	}
	return true
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// ProbeHealth runs every check once and stores the result.
func ProbeHealth(ctx context.Context, checks map[string]HealthCheck) HealthStatus {
	results := make(map[string]bool, len(checks))
	for name, check := range checks {
		cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		results[name] = check(cctx) == nil
		cancel()
	}

	status := HealthStatus{Checks: results, CheckedAt: time.Now()}
	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks and updates in-memory state
// until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, checks map[string]HealthCheck) {
	ProbeHealth(ctx, checks)
	go func() {
		ticker := time.NewTicker(HealthProbeInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ProbeHealth(ctx, checks)
			}
		}
	}()
}
