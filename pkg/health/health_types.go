package health

import (
	"sync"
	"time"
)

// Status represents the health status of a building check
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the outcome of one diagnostic
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ms"`
}

// CheckFunc performs a diagnostic
type CheckFunc func() Check

// HealthChecker runs a named set of diagnostics
type HealthChecker struct {
	checks map[string]CheckFunc
	mu     sync.RWMutex
}

// Response is the combined result; the worst check status wins
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
}
