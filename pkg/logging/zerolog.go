// Package logging adapts zerolog to the pion logging interfaces used by the
// client and transport packages.
package logging

import (
	"fmt"
	"io"
	"strings"

	pionlog "github.com/pion/logging"
	"github.com/rs/zerolog"
)

// ParseLevel maps a level name to a zerolog level. "disabled" turns logging
// off.
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "disabled", "off":
		return zerolog.Disabled, nil
	default:
		return zerolog.ParseLevel(strings.ToLower(name))
	}
}

// ZerologFactory creates scoped loggers writing to one zerolog.Logger.
type ZerologFactory struct {
	root zerolog.Logger
}

// NewZerologFactory creates a factory writing human-readable lines to w.
func NewZerologFactory(w io.Writer, level zerolog.Level) *ZerologFactory {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return NewZerologFactoryFrom(zerolog.New(out).Level(level).With().Timestamp().Logger())
}

// NewZerologFactoryFrom wraps an existing logger.
func NewZerologFactoryFrom(root zerolog.Logger) *ZerologFactory {
	return &ZerologFactory{root: root}
}

// NewLogger implements pion's LoggerFactory.
func (f *ZerologFactory) NewLogger(scope string) pionlog.LeveledLogger {
	return &zerologLogger{log: f.root.With().Str("scope", scope).Logger()}
}

// Logger returns the underlying logger for direct use.
func (f *ZerologFactory) Logger() *zerolog.Logger {
	return &f.root
}

type zerologLogger struct {
	log zerolog.Logger
}

func (l *zerologLogger) Trace(msg string) { l.log.Trace().Msg(msg) }
func (l *zerologLogger) Tracef(format string, args ...interface{}) {
	l.log.Trace().Msg(fmt.Sprintf(format, args...))
}
func (l *zerologLogger) Debug(msg string) { l.log.Debug().Msg(msg) }
func (l *zerologLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msg(fmt.Sprintf(format, args...))
}
func (l *zerologLogger) Info(msg string) { l.log.Info().Msg(msg) }
func (l *zerologLogger) Infof(format string, args ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(format, args...))
}
func (l *zerologLogger) Warn(msg string) { l.log.Warn().Msg(msg) }
func (l *zerologLogger) Warnf(format string, args ...interface{}) {
	l.log.Warn().Msg(fmt.Sprintf(format, args...))
}
func (l *zerologLogger) Error(msg string) { l.log.Error().Msg(msg) }
func (l *zerologLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msg(fmt.Sprintf(format, args...))
}

var _ pionlog.LoggerFactory = (*ZerologFactory)(nil)
