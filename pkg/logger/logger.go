package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
var Log *logrus.Logger

// Options задает явные параметры логгера (флаги CLI перекрывают окружение).
type Options struct {
	Level  string    // trace, debug, info, warn, error
	Format string    // "json" или "text"
	Output io.Writer // по умолчанию os.Stdout
}

// Init инициализирует глобальный логгер из переменных окружения LOG_LEVEL и LOG_FORMAT.
// Вызывается один раз при старте процесса (main или TestMain).
func Init() {
	Configure(Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// Configure пересоздает глобальный логгер с заданными опциями.
// Пустые поля получают значения по умолчанию.
func Configure(opts Options) {
	Log = logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if opts.Level == "" || err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	// "json" - для продакшена и сбора логов, "text" - для разработки.
	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	} else {
		Log.SetOutput(os.Stdout)
	}
}

// Component возвращает запись лога с полем component.
func Component(name string) *logrus.Entry {
	if Log == nil {
		Init()
	}
	return Log.WithField("component", name)
}
