package utils

import (
	"log/slog"

	"library-catalog/internal/models"
)

func ExportData(logs []models.AuditLog) error {
	for _, entry := range logs {
		slog.Info("audit export",
			"timestamp", entry.Timestamp,
			"entity", entry.Entity,
			"action", entry.Action,
		)
	}
	return nil
}
