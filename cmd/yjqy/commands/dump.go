package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
	"yjqy-scraper/internal/components/chrono"
	"yjqy-scraper/internal/dump"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	outputDir    string
	showProgress bool
	schedule     string
)

func init() {
	addDumpFlags(dumpCmd)
	rootCmd.AddCommand(dumpCmd)
}

func addDumpFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&outputDir, "out", "", "The directory to write results to, overrides output_dir.")
	cmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar over the schools.")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Repeat the dump on a cron schedule (ex. \"0 3 * * *\") in Asia/Shanghai time until interrupted.")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [--out <dir>] [--progress] [--schedule <cron>]",
	Short: "Writes the results of every query of every school to <out>/<code><name>/<id>-<label>.json.",
	Args:  cobra.NoArgs,
	Run:   runDump,
}

func runDump(cmd *cobra.Command, args []string) {
	opts := dump.Options{
		OutputDir: config.OutputDir,
		Skip:      config.SkipSchools,
	}
	if outputDir != "" {
		opts.OutputDir = outputDir
	}
	if showProgress {
		opts.Progress = os.Stderr
	}
	dumper := dump.NewDumper(newClient(), opts, tel)

	if schedule == "" {
		err := dumpOnce(cmd.Context(), dumper)
		if err != nil {
			fatal("dump failed", err)
		}
		return
	}

	clock, err := chrono.NewLocalClock(chrono.SiteTimezone)
	if err != nil {
		fatal("failed to load timezone", err)
	}
	scheduler := chrono.NewScheduler(clock, tel)
	err = scheduler.Add(schedule, func() {
		slog.Info("scheduled dump starting", "at", clock.Now().Format(time.DateTime))
		err := dumpOnce(cmd.Context(), dumper)
		if err != nil {
			slog.Error("scheduled dump failed", "err", err.Error())
		}
	})
	if err != nil {
		fatal("invalid schedule", err)
	}
	slog.Info("waiting for schedule", "schedule", schedule)

	<-cmd.Context().Done()
	<-scheduler.Stop().Done()
}

func dumpOnce(ctx context.Context, dumper dump.Dumper) error {
	start := time.Now()
	summary, err := dumper.Run(ctx)
	printSummary(summary)
	if err != nil {
		return err
	}
	slog.Info("dump finished", "records", summary.Records(), "seconds", time.Since(start).Seconds())
	return nil
}

func printSummary(summary dump.Summary) {
	if len(summary.Schools) == 0 {
		return
	}

	t := NewTable()
	t.AppendHeader(table.Row{"Code", "Name", "Queries", "Records", "Directory"})
	for _, s := range summary.Schools {
		queries := fmt.Sprint(s.Queries)
		if s.Skipped {
			queries = "skipped"
		}
		t.AppendRow(table.Row{s.School.Code, s.School.Name, queries, s.Records, s.Dir})
	}
	t.AppendFooter(table.Row{"", "", "", summary.Records(), ""})
	t.Render()
}
