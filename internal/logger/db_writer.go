package logger

import (
	"context"
	"fmt"
	"os"
	"time"

	common_models "invest-portal/internal/common/models"
	"invest-portal/internal/config"
	"invest-portal/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

type LogEntry struct {
	Level     zapcore.Level
	Message   string
	IpAddress string
	RequestID string
	Caller    string
}

// DBLogWriter inserts log entries into the logs collection from a background worker.
type DBLogWriter struct {
	collection *mongo.Collection
	logChan    chan LogEntry
	appId      string
}

func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		collection: mongodb.DB.Collection("logs"),
		logChan:    make(chan LogEntry, 1000),
		appId:      cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog never blocks; entries are dropped while the buffer is full.
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		fmt.Fprintln(os.Stderr, "DB log channel full, dropping:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		w.collection.InsertOne(context.Background(), toRecord(entry, w.appId))
	}
}

func toRecord(entry LogEntry, appId string) common_models.Log {
	return common_models.Log{
		Message:      entry.Message,
		Level:        entry.Level.String(),
		RequestID:    entry.RequestID,
		IpAddress:    entry.IpAddress,
		Caller:       entry.Caller,
		LogLevelId:   mapLevelToInt(entry.Level),
		AppId:        appId,
		CreatedOnUtc: time.Now().UTC(),
	}
}

func mapLevelToInt(l zapcore.Level) int {
	switch l {
	case zapcore.DebugLevel:
		return 10
	case zapcore.InfoLevel:
		return 20
	case zapcore.WarnLevel:
		return 30
	case zapcore.ErrorLevel:
		return 40
	case zapcore.FatalLevel:
		return 50
	default:
		return 20
	}
}
