package services

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// requestLogCap bounds the in-memory request log.
const requestLogCap = 500

// RequestLogEntry records one handled API request.
type RequestLogEntry struct {
	Timestamp    time.Time     `json:"timestamp"`
	Path         string        `json:"path"`
	Method       string        `json:"method"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
}

// MonitoringService keeps a bounded in-memory log of API requests.
type MonitoringService struct {
	logs []RequestLogEntry
	mu   sync.RWMutex
}

// NewMonitoringService creates a new MonitoringService.
func NewMonitoringService() *MonitoringService {
	return &MonitoringService{
		logs: make([]RequestLogEntry, 0),
	}
}

// LogRequest records one request, evicting the oldest entry at capacity.
func (s *MonitoringService) LogRequest(entry RequestLogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, entry)
	if len(s.logs) > requestLogCap {
		s.logs = s.logs[len(s.logs)-requestLogCap:]
	}
}

// LoggingMiddleware records request information as a gin middleware.
func (s *MonitoringService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Admin and monitoring traffic would drown out the interesting
		// entries.
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/api/v1/admin") || strings.HasPrefix(path, "/api/v1/monitoring") {
			return
		}

		s.LogRequest(RequestLogEntry{
			Timestamp:    start,
			Path:         path,
			Method:       c.Request.Method,
			StatusCode:   c.Writer.Status(),
			ResponseTime: time.Since(start),
		})
	}
}

// RecentLogs returns up to limit entries, newest first.
func (s *MonitoringService) RecentLogs(limit int) []RequestLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.logs) {
		limit = len(s.logs)
	}

	recent := make([]RequestLogEntry, 0, limit)
	for i := len(s.logs) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, s.logs[i])
	}
	return recent
}
