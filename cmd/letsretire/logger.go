package main

import (
	"context"
	"fmt"
	"log/slog"
)

// slogAdapter routes engine log lines onto a slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) log(level slog.Level, format string, args ...any) {
	if !a.l.Enabled(context.Background(), level) {
		return
	}
	a.l.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func (a slogAdapter) Debugf(format string, args ...any) { a.log(slog.LevelDebug, format, args...) }
func (a slogAdapter) Infof(format string, args ...any)  { a.log(slog.LevelInfo, format, args...) }
func (a slogAdapter) Warnf(format string, args ...any)  { a.log(slog.LevelWarn, format, args...) }
func (a slogAdapter) Errorf(format string, args ...any) { a.log(slog.LevelError, format, args...) }
