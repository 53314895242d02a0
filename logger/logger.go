package logger

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Fatal(msg string)
	WithField(key string, value interface{}) Logger
}

var (
	log  Logger
	once sync.Once
)

// Init initializes the file-backed logger. The wizard owns the terminal, so
// log output goes to ~/.firefly/firefly.log instead of stderr.
func Init() {
	once.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			panic("Failed to get user home directory: " + err.Error())
		}

		fireflyDir := filepath.Join(homeDir, ".firefly")
		err = os.MkdirAll(fireflyDir, 0755)
		if err != nil {
			panic("Failed to create .firefly directory: " + err.Error())
		}

		logFile, err := os.OpenFile(filepath.Join(fireflyDir, "firefly.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			panic("Failed to open log file: " + err.Error())
		}

		zerologLogger := zerolog.New(logFile).With().Timestamp().Logger()
		log = &ZerologAdapter{logger: &zerologLogger}
	})
}

// Get returns the logger instance, or a null logger if Init was never called.
func Get() Logger {
	if log == nil {
		return NewNullLogger()
	}
	return log
}

// ZerologAdapter adapts zerolog.Logger to our Logger interface
type ZerologAdapter struct {
	logger *zerolog.Logger
}

func (z *ZerologAdapter) Debug(msg string) { z.logger.Debug().Msg(msg) }
func (z *ZerologAdapter) Info(msg string)  { z.logger.Info().Msg(msg) }
func (z *ZerologAdapter) Warn(msg string)  { z.logger.Warn().Msg(msg) }
func (z *ZerologAdapter) Error(msg string) { z.logger.Error().Msg(msg) }
func (z *ZerologAdapter) Fatal(msg string) { z.logger.Fatal().Msg(msg) }
func (z *ZerologAdapter) WithField(key string, value interface{}) Logger {
	newLogger := z.logger.With().Interface(key, value).Logger()
	return &ZerologAdapter{logger: &newLogger}
}

type NullLogger struct{}

func (NullLogger) Debug(msg string) {}
func (NullLogger) Info(msg string)  {}
func (NullLogger) Warn(msg string)  {}
func (NullLogger) Error(msg string) {}
func (NullLogger) Fatal(msg string) {}
func (NullLogger) WithField(key string, value interface{}) Logger {
	return NullLogger{}
}

func NewNullLogger() Logger {
	return NullLogger{}
}
