// Package logger файловый логгер сервиса поверх logrus.
// Сервисные слои зависят только от printf-интерфейса Logger
// (Info/Warn/Error), объявляемого на стороне потребителя.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger логгер сервиса с уровнями и записью в файл
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// New создает логгер, пишущий в указанный файл.
// level: debug | info | warn | error
func New(filePath, level string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, fmt.Errorf("logger: create log dir: %w", err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logger: open log file: %w", err)
	}

	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("logger: parse level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(file)
	log.SetLevel(parsedLevel)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	return &Logger{log: log, file: file}, nil
}

// Debug пишет отладочное сообщение
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}

// Info пишет информационное сообщение
func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

// Warn пишет предупреждение
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warnf(format, v...)
}

// Error пишет сообщение об ошибке
func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatalf(format, v...)
}

// Close закрывает файл логов
func (l *Logger) Close() error {
	return l.file.Close()
}
