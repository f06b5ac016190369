package daemon

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"library-catalog/internal/models"
	"library-catalog/internal/utils"
)

// LogExporter periodically exports unexported audit-log entries and marks
// them as exported.
type LogExporter struct {
	Coll     *mongo.Collection
	Interval time.Duration

	stop chan struct{}
}

func (l *LogExporter) Start() {
	l.stop = make(chan struct{})
	go l.run()
}

func (l *LogExporter) Stop() {
	close(l.stop)
}

func (l *LogExporter) run() {
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.export()
		}
	}
}

func (l *LogExporter) export() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := l.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		slog.Warn("audit export query failed", "error", err)
		return
	}

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		slog.Warn("audit export decode failed", "error", err)
		return
	}
	if len(logs) == 0 {
		return
	}

	if err := utils.ExportData(logs); err != nil {
		slog.Warn("audit export failed", "error", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		ids = append(ids, entry.ID)
	}

	_, err = l.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"exported": true}},
	)
	if err != nil {
		slog.Warn("audit export mark failed", "error", err)
	}
}
