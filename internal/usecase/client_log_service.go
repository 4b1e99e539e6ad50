package usecase

import (
	"strings"

	"airtrip-service/internal/domain/entity"
	"airtrip-service/pkg/logger"
)

// ClientLogService forwards browser log records into the service log
type ClientLogService struct {
	logger logger.Logger
}

// NewClientLogService creates a new client log service
func NewClientLogService(logger logger.Logger) *ClientLogService {
	return &ClientLogService{
		logger: logger.With("source", "client"),
	}
}

// Record logs one client record at its own level; unknown levels log as info
func (s *ClientLogService) Record(record entity.LogRecord) {
	fields := []interface{}{
		"fileName", record.FileName,
		"lineNumber", record.LineNumber,
		"columnNumber", record.ColumnNumber,
	}

	switch strings.ToLower(record.Level) {
	case "debug", "trace":
		s.logger.Debug(record.Message, fields...)
	case "warn", "warning":
		s.logger.Warn(record.Message, fields...)
	case "error":
		s.logger.Error(record.Message, fields...)
	default:
		s.logger.Info(record.Message, fields...)
	}
}
