package audit

import (
	"context"
	"log/slog"
)

// LogSink writes audit events as structured log records.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger.With("component", "audit")}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"action", event.Action,
		"timestamp", event.Timestamp,
		"address_id", event.AddressID,
		"country", event.Country,
		"vat_number", event.VATNumber,
		"status", event.Status,
		"source", event.Source,
		"reason", event.Reason,
		"request_id", event.RequestID,
		"client_ip", event.ClientIP,
	)
	return nil
}
