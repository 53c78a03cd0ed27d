package commands

import (
	"context"
	"fmt"
	"os"
	"time"
	"yjqy-scraper/internal/components/telemetry"
	"yjqy-scraper/internal/scrapers/yjqy"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool

	config Config
	tel    telemetry.API = telemetry.SlogAPI{}
	otel   telemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "yjqy [--config config.json5] [--out <dir>] [--progress]",
	Short: "yjqy dumps every info query of every school on qy.yjzqy.net to json files.",
	Long: `yjqy dumps every info query of every school on qy.yjzqy.net to json files.

Without a subcommand it runs the full dump, the other subcommands inspect a
single page of the site.`,
	Args:               cobra.NoArgs,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
	Run:                runDump,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "The configuration file to read.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages.")
	addDumpFlags(rootCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	telemetry.InitSlog(verbose)

	var err error
	config, err = readConfig(configPath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", configPath, err)
	}

	otel, err = telemetry.SetupFromEnv(cmd.Context(), "yjqy")
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	if otel.Enabled() {
		tel = telemetry.NewOtelAPI(telemetry.SlogAPI{})
		telemetry.InstrumentPerfStats(cmd.Context(), 15*time.Second)
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return otel.Shutdown(ctx)
}

func newClient() *yjqy.Client {
	opts, err := config.clientOptions()
	if err != nil {
		fatal("failed to create message dump directory", err)
	}
	client, err := yjqy.NewClient(opts, tel)
	if err != nil {
		fatal("failed to create client", err)
	}
	return client
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
