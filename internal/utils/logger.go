package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"library-catalog/internal/models"
)

// Logger appends audit records to a Mongo collection. Entries start with
// exported=false and are picked up by the export daemon.
type Logger struct {
	Collection *mongo.Collection
}

func (l *Logger) Log(ctx context.Context, entity, action string, data any) error {
	entry := models.AuditLog{
		Timestamp: time.Now(),
		Entity:    entity,
		Action:    action,
		Data:      data,
	}
	_, err := l.Collection.InsertOne(ctx, entry)
	return err
}
