package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// Version metadata injected at build time via -ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// HealthService reports process liveness and catalog readiness.
type HealthService struct {
	dataFile  string
	logger    *slog.Logger
	startedAt time.Time
}

// NewHealthService creates a health service over the configured data file.
func NewHealthService(dataFile string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		dataFile:  dataFile,
		logger:    logger.With(slog.String("component", "health_service")),
		startedAt: time.Now(),
	}
}

// HealthCheck reports overall health: degraded when the data file is gone,
// since every data route will answer 503 in that state.
func (s *HealthService) HealthCheck(ctx context.Context) map[string]interface{} {
	status := "healthy"
	checks := map[string]interface{}{
		"data_file": s.dataFileCheck(),
	}
	if checks["data_file"].(map[string]interface{})["status"] != "ok" {
		status = "degraded"
	}
	return map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
		"checks":    checks,
	}
}

// ReadinessCheck reports whether the service can answer data requests.
func (s *HealthService) ReadinessCheck(ctx context.Context) map[string]interface{} {
	check := s.dataFileCheck()
	ready := check["status"] == "ok"
	return map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"data_file": check,
	}
}

// LivenessCheck reports that the process is up.
func (s *HealthService) LivenessCheck(ctx context.Context) map[string]interface{} {
	return map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}

// Version returns build metadata.
func (s *HealthService) Version() map[string]interface{} {
	return map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
}

func (s *HealthService) dataFileCheck() map[string]interface{} {
	info, err := os.Stat(s.dataFile)
	if err != nil {
		return map[string]interface{}{
			"status": "missing",
			"path":   s.dataFile,
		}
	}
	return map[string]interface{}{
		"status":     "ok",
		"path":       s.dataFile,
		"size_bytes": info.Size(),
	}
}
