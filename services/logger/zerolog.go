package logsvc

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// ZerologLogger is the console logger used in DEV and tests.
type ZerologLogger struct {
	log zerolog.Logger
}

var _ core.Logger = (*ZerologLogger)(nil)

func NewZerologLogger(out io.Writer) *ZerologLogger {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
	return &ZerologLogger{log: zl}
}

func (l *ZerologLogger) Enable(enabled bool) {
	if enabled {
		l.log = l.log.Level(zerolog.DebugLevel)
	} else {
		l.log = l.log.Level(zerolog.Disabled)
	}
}

// expected fmt: msg | error, map[string]interface{}, user.Identity
func (l *ZerologLogger) emit(ev *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			ev = ev.Err(v)
		case user.Identity:
			ev = ev.Str("username", v.Username).Str("role", v.Role)
		case map[string]interface{}:
			ev = ev.Fields(v)
		default:
			ev = ev.Interface("ctx", v)
		}
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Debug(msg string, args ...interface{}) { l.emit(l.log.Debug(), msg, args) }
func (l *ZerologLogger) Info(msg string, args ...interface{})  { l.emit(l.log.Info(), msg, args) }
func (l *ZerologLogger) Warn(msg string, args ...interface{})  { l.emit(l.log.Warn(), msg, args) }
func (l *ZerologLogger) Error(msg string, args ...interface{}) { l.emit(l.log.Error(), msg, args) }
func (l *ZerologLogger) Fatal(msg string, args ...interface{}) { l.emit(l.log.Fatal(), msg, args) }
