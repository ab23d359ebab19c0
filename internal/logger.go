package internal

import (
	"fmt"
	"time"
	"vinti4/services"

	"go.uber.org/zap"
)

// LogMessage is a warning or error copied to the database log collection.
type LogMessage struct {
	Time     time.Time `json:"time" bson:"time"`
	Level    string    `json:"level" bson:"level"`
	Category string    `json:"category" bson:"category"`
	Text     string    `json:"text" bson:"text"`
}

func (m *LogMessage) DataType() string {
	return "log"
}

// Logger writes to zap and copies warnings and errors to the database when one is set.
type Logger struct {
	category string
	debug    bool
	database services.Database
	log      *zap.Logger
}

func NewLogger(category string, debug bool, database services.Database) *Logger {
	var base *zap.Logger
	var err error
	if debug {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		base = zap.NewNop()
	}
	return &Logger{
		category: category,
		debug:    debug,
		database: database,
		log:      base.With(zap.String("category", category)),
	}
}

func (l *Logger) Debug(text string) {
	if !l.debug {
		return
	}
	l.log.Debug(text)
}

func (l *Logger) Info(text string) {
	l.log.Info(text)
}

func (l *Logger) Warn(text string) {
	l.log.Warn(text)
	l.save("warn", text)
}

func (l *Logger) Error(text string, err error) {
	l.log.Error(text, zap.Error(err))
	l.save("error", fmt.Sprintf("%s: %v", text, err))
}

func (l *Logger) save(level, text string) {
	if l.database == nil {
		return
	}
	message := &LogMessage{
		Time:     time.Now(),
		Level:    level,
		Category: l.category,
		Text:     text,
	}
	if err := l.database.WriteLogMessage(message); err != nil {
		l.log.Warn("write log message", zap.Error(err))
	}
}
