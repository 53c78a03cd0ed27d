package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"yjqy-scraper/internal/scrapers/yjqy"

	"github.com/stretchr/testify/require"
)

func TestMatchSchool(t *testing.T) {
	schools := []yjqy.School{
		{Code: "yjgj", Name: "阳江高级中学"},
		{Code: "yjsyxx", Name: "阳江市实验学校"},
		{Code: "yjyz", Name: "阳江市第一中学"},
	}

	testCases := []struct {
		arg      string
		expected string
	}{
		{arg: "yjyz", expected: "yjyz"},
		{arg: "阳江市第一中学", expected: "yjyz"},
		{arg: "阳江市实验", expected: "yjsyxx"},
		{arg: "阳江高级", expected: "yjgj"},
		{arg: " 阳江 高级中学\n", expected: "yjgj"},
	}

	for _, test := range testCases {
		t.Run(test.arg, func(t *testing.T) {
			school, ok := matchSchool(schools, test.arg)
			require.True(t, ok)
			require.Equal(t, test.expected, school.Code)
		})
	}

	_, ok := matchSchool(nil, "yjyz")
	require.False(t, ok)
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := readConfig(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)

	err = os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// slow down for the live site
		requests_per_second: 2,
		timeout_seconds: 30,
		output_dir: "dump",
	}`), 0644)
	require.NoError(t, err)

	cfg, err = readConfig(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "dump", cfg.OutputDir)
	require.Equal(t, yjqy.DefaultBaseUrl, cfg.BaseUrl)
	require.Equal(t, []string{"yjsyxx"}, cfg.SkipSchools)

	opts, err := cfg.clientOptions()
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, opts.Timeout)
	require.Equal(t, 2.0, opts.RequestsPerSecond)
	require.Nil(t, opts.MessageOutput)

	cfg.MessageDump = filepath.Join(dir, "messages")
	opts, err = cfg.clientOptions()
	require.NoError(t, err)
	require.NotNil(t, opts.MessageOutput)
	require.DirExists(t, cfg.MessageDump)
}
