package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pandamarket/api/api-gateway/config"
	"github.com/pandamarket/api/pkg/logger"
)

// InstanceHealth is the health of one backend instance
type InstanceHealth struct {
	Service   string        `json:"service"`
	Status    string        `json:"status"` // healthy or unhealthy
	URL       string        `json:"url"`
	Latency   time.Duration `json:"latency_ms"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// GatewayHealth is the aggregated gateway view
type GatewayHealth struct {
	Gateway   string           `json:"gateway"`
	Status    string           `json:"status"` // healthy, degraded or unhealthy
	Instances []InstanceHealth `json:"instances"`
	Uptime    time.Duration    `json:"uptime_seconds"`
}

// HealthChecker probes every configured backend instance
type HealthChecker struct {
	config    *config.GatewayConfig
	client    *http.Client
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(cfg *config.GatewayConfig) *HealthChecker {
	return &HealthChecker{
		config:    cfg,
		client:    &http.Client{Timeout: 5 * time.Second},
		startTime: time.Now(),
	}
}

// CheckInstance probes a single backend instance
func (h *HealthChecker) CheckInstance(ctx context.Context, serviceName, baseURL, healthPath string) InstanceHealth {
	start := time.Now()
	result := InstanceHealth{
		Service:   serviceName,
		URL:       baseURL,
		Timestamp: time.Now(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+healthPath, nil)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		result.Latency = time.Since(start)
		return result
	}

	resp, err := h.client.Do(req)
	if err != nil {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("failed to reach instance: %v", err)
		result.Latency = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.Latency = time.Since(start)
	if resp.StatusCode == http.StatusOK {
		result.Status = "healthy"
	} else {
		result.Status = "unhealthy"
		result.Error = fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	}
	return result
}

// CheckAll probes every instance of every service concurrently
func (h *HealthChecker) CheckAll(ctx context.Context) GatewayHealth {
	var (
		instances []InstanceHealth
		wg        sync.WaitGroup
		mu        sync.Mutex
	)

	for name, svc := range h.config.Services {
		for _, instance := range svc.Instances {
			wg.Add(1)
			go func(serviceName, url, healthPath string) {
				defer wg.Done()
				result := h.CheckInstance(ctx, serviceName, url, healthPath)

				mu.Lock()
				instances = append(instances, result)
				mu.Unlock()

				if result.Status != "healthy" {
					logger.Logger.Warn().
						Str("service", serviceName).
						Str("url", url).
						Str("error", result.Error).
						Msg("Instance health check failed")
				}
			}(name, instance, svc.HealthCheck)
		}
	}
	wg.Wait()

	return GatewayHealth{
		Gateway:   "api-gateway",
		Status:    overallStatus(instances),
		Instances: instances,
		Uptime:    time.Since(h.startTime),
	}
}

func overallStatus(instances []InstanceHealth) string {
	healthy := 0
	for _, inst := range instances {
		if inst.Status == "healthy" {
			healthy++
		}
	}
	switch {
	case healthy == len(instances):
		return "healthy"
	case healthy > 0:
		return "degraded"
	default:
		return "unhealthy"
	}
}

// QuickCheck reports only the gateway's own liveness
func (h *HealthChecker) QuickCheck() map[string]interface{} {
	return map[string]interface{}{
		"status":    "healthy",
		"gateway":   "api-gateway",
		"uptime":    time.Since(h.startTime).Seconds(),
		"timestamp": time.Now(),
	}
}
