package logger

import (
	"context"
	"sync"

	"relman/pkg/core/config"
	"relman/pkg/core/consts"

	"github.com/openzipkin/zipkin-go"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

type Log struct {
	*logrus.Entry
}

var (
	log *Log
	mu  sync.Mutex
)

func newLogrus(level string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logLevel := logrus.InfoLevel
	switch level {
	case "debug":
		logLevel = logrus.DebugLevel
	case "warn":
		logLevel = logrus.WarnLevel
	case "error":
		logLevel = logrus.ErrorLevel
	}
	l.SetLevel(logLevel)
	return l
}

// InitLogger 初始化全局日志，后续 GetLogger 返回同一个实例
func InitLogger(level string) *Log {
	mu.Lock()
	defer mu.Unlock()
	log = &Log{Entry: logrus.NewEntry(newLogrus(level))}
	return log
}

func GetLogger() *Log {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		return log
	}
	return &Log{Entry: logrus.NewEntry(newLogrus("debug"))}
}

// Send2Cloud 将日志同步写入阿里云 SLS
func (l *Log) Send2Cloud(appName, host string, cfg config.LogConfig) {
	l.Entry.Logger.AddHook(NewSlsHook(appName, host, cfg))
}

func (l *Log) WithField(key string, value interface{}) *Log {
	return &Log{l.Entry.WithField(key, value)}
}

func (l *Log) GetLogger() *logrus.Entry {
	return l.Entry
}

func (l *Log) WithEntryName(entryName string) *Log {
	return l.WithField("EntryName", entryName)
}

func (l *Log) WithErr(err error) *Log {
	if err == nil {
		return l
	}
	return l.WithField("Err", err.Error())
}

func (l *Log) WithTrace(ctx context.Context) *Log {
	if span := zipkin.SpanFromContext(ctx); span != nil {
		return l.WithField("TraceId", span.Context().TraceID.String())
	}
	traceID, ok := ctx.Value(consts.TraceKey).(string)
	if !ok {
		traceID = uuid.NewV4().String()
	}
	return l.WithField("TraceId", traceID)
}

func (l *Log) WithUserID(userId interface{}) *Log {
	return l.WithField("UserId", userId)
}
