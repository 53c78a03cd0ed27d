package chrono

import (
	"errors"
	"testing"
	"time"
	"yjqy-scraper/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestLocalClock(t *testing.T) {
	clock, err := NewLocalClock(SiteTimezone)
	require.NoError(t, err)
	require.Equal(t, SiteTimezone, clock.Location().String())
	require.Equal(t, clock.Location(), clock.Now().Location())

	_, err = NewLocalClock("Not/A_Zone")
	require.Error(t, err)
}

func TestScheduler(t *testing.T) {
	clock, err := NewLocalClock(SiteTimezone)
	require.NoError(t, err)
	scheduler := NewScheduler(clock, &telemetry.RecordingAPI{})
	defer scheduler.Stop()

	require.Error(t, scheduler.Add("not a schedule", func() {}))

	ran := make(chan struct{}, 1)
	require.NoError(t, scheduler.Add("@every 10ms", func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled callback never ran")
	}
}

func TestCronLogger(t *testing.T) {
	tel := &telemetry.RecordingAPI{}
	logger := cronLogger{tel: tel}

	require.Equal(t, []any{"entry=1", "next=soon"}, logger.pairs([]any{"entry", 1, "next", "soon", "dangling"}))

	logger.Info("start")
	logger.Error(errors.New("panic"), "job failed")
	require.Equal(t, []string{"start"}, tel.Debug)
	require.Equal(t, []string{report_scheduler}, tel.Broken)
}
