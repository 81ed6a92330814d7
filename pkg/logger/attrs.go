package logger

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// ensureInstanceID prefers an explicit id, then INSTANCE_ID, then host plus a random suffix.
func ensureInstanceID(v string) string {
	if v != "" {
		return v
	}
	if v = os.Getenv("INSTANCE_ID"); v != "" {
		return v
	}

	hn, err := os.Hostname()
	if err != nil || hn == "" {
		hn = "activity"
	}
	return hn + "-" + uuid.NewString()[:8]
}

// commonAttrs is attached to every record: process identity first, then cfg.Attrs.
func commonAttrs(cfg Config) []slog.Attr {
	attrs := make([]slog.Attr, 0, 4+len(cfg.Attrs))
	attrs = append(attrs,
		slog.String("service", cfg.Service),
		slog.String("env", cfg.Env.String()),
		slog.String("version", cfg.Version),
		slog.String("instance_id", cfg.InstanceID),
	)
	return append(attrs, cfg.Attrs...)
}
