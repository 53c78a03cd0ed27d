package telemetry

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lmittmann/tint"
)

// InitSlog makes a colored stderr logger the slog default, debug records are
// only shown when `verbose` is set.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})))
}

// SlogAPI writes reports to the default slog logger.
type SlogAPI struct{}

// attrs returns the id (if any) followed by the params under a "params" group.
func (SlogAPI) attrs(id string, params []any) []any {
	out := make([]any, 0, 2)
	if id != "" {
		out = append(out, slog.String("id", id))
	}
	if len(params) > 0 {
		group := make([]any, 0, len(params))
		for i, p := range params {
			if err, ok := p.(error); ok {
				p = err.Error()
			}
			group = append(group, slog.Any(strconv.Itoa(i), p))
		}
		out = append(out, slog.Group("params", group...))
	}
	return out
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	slog.Error("broken component", s.attrs(id, params)...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	slog.Warn("warning", s.attrs(id, params)...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	slog.Debug(message, s.attrs("", params)...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	slog.Debug("count", "id", id, "n", count)
}
