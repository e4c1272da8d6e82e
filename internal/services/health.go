package services

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"aisolutions/internal/database"
)

const healthTimeout = 2 * time.Second

// HealthResult is the body of a health check response
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Error   string `json:"error,omitempty"`
}

// HealthService implements the health service
type HealthService struct {
	db      *gorm.DB
	service string
	log     *zap.Logger
}

// NewHealthService creates a new health service
func NewHealthService(db *gorm.DB, service string, log *zap.Logger) *HealthService {
	return &HealthService{db: db, service: service, log: log}
}

// Check pings the database. ok is false when the ping fails.
func (s *HealthService) Check(ctx context.Context) (result *HealthResult, ok bool) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := database.HealthCheck(ctx, s.db); err != nil {
		s.log.Warn("health check failed", zap.Error(err))
		return &HealthResult{Status: "unhealthy", Service: s.service, Error: "database unavailable"}, false
	}
	database.ReportStats(s.db)
	return &HealthResult{Status: "healthy", Service: s.service}, true
}
