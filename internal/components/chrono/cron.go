package chrono

import (
	"context"
	"fmt"
	"yjqy-scraper/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

const report_scheduler = "scheduler"

// Scheduler runs callbacks on cron expressions (ex. "0 3 * * *", "@every 6h")
// evaluated in the clock's location. A callback still running when its next
// tick arrives skips that tick.
type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler(clock Clock, tel telemetry.API) Scheduler {
	logger := cronLogger{tel: telemetry.NewScopedAPI("cron", tel)}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(clock.Location()),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	c.Start()
	return Scheduler{cron: c}
}

func (s Scheduler) Add(expr string, callback func()) error {
	_, err := s.cron.AddFunc(expr, callback)
	if err != nil {
		return fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return nil
}

// Stop prevents new runs, the returned context is done once running callbacks return.
func (s Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// cronLogger adapts telemetry.API to cron.Logger.
type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) pairs(keysAndValues []any) []any {
	out := make([]any, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out = append(out, fmt.Sprintf("%v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	return out
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug(msg, l.pairs(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	params := append([]any{fmt.Errorf("%s: %w", msg, err)}, l.pairs(keysAndValues)...)
	l.tel.ReportBroken(report_scheduler, params...)
}
