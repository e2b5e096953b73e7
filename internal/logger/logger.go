package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// Logger wraps slog.Logger. SQL returns a view of it that implements gorm's logger.Interface.
type Logger struct {
	*slog.Logger
	sqlLevel gormlogger.LogLevel
}

func New(level string) *Logger {
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) *Logger {
	var lvl slog.Level
	sqlLevel := gormlogger.Warn
	switch level {
	case "debug":
		lvl = slog.LevelDebug
		sqlLevel = gormlogger.Info
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
		sqlLevel = gormlogger.Error
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{Logger: slog.New(handler), sqlLevel: sqlLevel}
}

// SQL returns a gorm logger backed by l. Every statement is traced at debug
// level when l was built with level "debug".
func (l *Logger) SQL() gormlogger.Interface {
	return &sqlLogger{log: l.Logger, level: l.sqlLevel}
}

type sqlLogger struct {
	log   *slog.Logger
	level gormlogger.LogLevel
}

func (s *sqlLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	return &sqlLogger{log: s.log, level: level}
}

func (s *sqlLogger) Info(ctx context.Context, msg string, args ...any) {
	if s.level >= gormlogger.Info {
		s.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *sqlLogger) Warn(ctx context.Context, msg string, args ...any) {
	if s.level >= gormlogger.Warn {
		s.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *sqlLogger) Error(ctx context.Context, msg string, args ...any) {
	if s.level >= gormlogger.Error {
		s.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
	}
}

func (s *sqlLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if s.level <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && s.level >= gormlogger.Error:
		s.log.ErrorContext(ctx, "sql query failed", "sql", sql, "rows", rows, "elapsed", elapsed, "error", err)
	case s.level >= gormlogger.Info:
		s.log.DebugContext(ctx, "sql query", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
