package providers

import (
	"context"
	"fmt"
	"log/slog"
)

// stripeLogger routes the Stripe SDK's own logging into slog.
type stripeLogger struct {
	logger *slog.Logger
}

func (l *stripeLogger) Debugf(format string, v ...interface{}) {
	l.log(slog.LevelDebug, format, v...)
}

func (l *stripeLogger) Infof(format string, v ...interface{}) {
	// the SDK logs every request at info; keep that out of function logs
	l.log(slog.LevelDebug, format, v...)
}

func (l *stripeLogger) Warnf(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

// Errorf is downgraded: failed calls are logged once, at error level, by the
// checkout service.
func (l *stripeLogger) Errorf(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

func (l *stripeLogger) log(level slog.Level, format string, v ...interface{}) {
	if !l.logger.Enabled(context.Background(), level) {
		return
	}
	l.logger.Log(context.Background(), level, fmt.Sprintf(format, v...))
}
