package commands

import (
	"time"
	"yjqy-scraper/internal/components/configutil"
	"yjqy-scraper/internal/components/telemetry"
	"yjqy-scraper/internal/dump"
	"yjqy-scraper/internal/scrapers/yjqy"
)

type Config struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	// OutputDir is where the dump writes its school directories.
	OutputDir   string   `json:"output_dir"`
	SkipSchools []string `json:"skip_schools"`
	// TimeoutSeconds of 0 means requests never time out.
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	CloudflareBypass  bool    `json:"cloudflare_bypass"`
	// MessageDump is a directory that receives every http exchange, empty
	// disables it.
	MessageDump string `json:"message_dump"`
}

func defaultConfig() Config {
	return Config{
		BaseUrl:     yjqy.DefaultBaseUrl,
		UserAgent:   yjqy.DefaultUserAgent,
		OutputDir:   "out",
		SkipSchools: dump.DefaultSkip,
	}
}

func readConfig(path string) (Config, error) {
	return configutil.ReadConfigWithDefaults(path, defaultConfig())
}

func (c Config) clientOptions() (yjqy.ClientOptions, error) {
	opts := yjqy.ClientOptions{
		BaseUrl:           c.BaseUrl,
		UserAgent:         c.UserAgent,
		Timeout:           time.Duration(c.TimeoutSeconds) * time.Second,
		RequestsPerSecond: c.RequestsPerSecond,
		CloudflareBypass:  c.CloudflareBypass,
	}
	if c.MessageDump != "" {
		output, err := telemetry.NewFilesystemOutput(c.MessageDump)
		if err != nil {
			return yjqy.ClientOptions{}, err
		}
		opts.MessageOutput = output
	}
	return opts, nil
}
