package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

// OkHealthChecker always reports healthy; the pipeline degrades rather
// than halts, so liveness is the only meaningful check.
type OkHealthChecker struct{}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}
