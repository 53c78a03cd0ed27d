package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string   `json:"base_url"`
	Skip    []string `json:"skip"`
	Rate    float64  `json:"rate"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestSplitExt(t *testing.T) {
	table := []struct {
		input  string
		prefix string
		ext    string
	}{
		{input: "config.json5", prefix: "config", ext: "json5"},
		{input: "config.dev.json5", prefix: "config.dev", ext: "json5"},
		{input: "config", prefix: "config", ext: ""},
	}
	for _, row := range table {
		prefix, ext := splitExt(row.input)
		require.Equal(t, row.prefix, prefix)
		require.Equal(t, row.ext, ext)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		base_url: "http://example.com/",
		skip: ["yjsyxx"],
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ rate: 2.5 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "http://example.com/", cfg.BaseUrl)
	require.Equal(t, []string{"yjsyxx"}, cfg.Skip)
	require.Equal(t, 2.5, cfg.Rate)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadConfigWithDefaults(t *testing.T) {
	defaults := testConfig{
		BaseUrl: "http://qy.yjzqy.net:9090/",
		Skip:    []string{"yjsyxx"},
	}

	cfg, err := ReadConfigWithDefaults(filepath.Join(t.TempDir(), "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ base_url: "http://localhost:9090/" }`)
	cfg, err = ReadConfigWithDefaults(filepath.Join(dir, "config.json5"), defaults)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9090/", cfg.BaseUrl)
	require.Equal(t, []string{"yjsyxx"}, cfg.Skip)
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{ base_url: `)
	_, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}
