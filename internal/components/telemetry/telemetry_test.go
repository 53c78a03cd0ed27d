package telemetry

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestScopedAPI(t *testing.T) {
	rec := &RecordingAPI{}
	api := NewScopedAPI("client", NewScopedAPI("yjqy", rec))

	api.ReportBroken("get-schools")
	api.ReportWarning("get-queries")
	api.ReportCount("records", 3)

	require.Equal(t, []string{"yjqy: client: get-schools"}, rec.Broken)
	require.Equal(t, []string{"yjqy: client: get-queries"}, rec.Warnings)
	require.Equal(t, int64(3), rec.Counts["yjqy: client: records"])
}

func TestFormatHeaders(t *testing.T) {
	require.Equal(t, "", formatHeaders(http.Header{}))
	require.Equal(t, "Content-Type: text/html", formatHeaders(http.Header{
		"Content-Type": {"text/html"},
	}))
}

func TestInstrumentResty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "messages")
	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	rec := &RecordingAPI{}
	client := resty.New().SetBaseURL(server.URL)
	InstrumentResty(client, rec, output)

	_, err = client.R().
		SetFormData(map[string]string{"xmid": "1"}).
		Post("/sc/yjyz/stu_chaxun.php")
	require.NoError(t, err)
	_, err = client.R().Get("/missing")
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(dir, "1.txt"))
	require.NoError(t, err)
	require.Contains(t, string(first), "POST "+server.URL+"/sc/yjyz/stu_chaxun.php")
	require.Contains(t, string(first), "xmid=1")
	require.Contains(t, string(first), "<html>ok</html>")

	second, err := os.ReadFile(filepath.Join(dir, "2.txt"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(second), "404"))

	require.Contains(t, rec.Debug, report_resty_request)
	require.Contains(t, rec.Debug, report_resty_response)
	require.Empty(t, rec.Broken)
}

func TestInstrumentRestyError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	rec := &RecordingAPI{}
	client := resty.New()
	InstrumentResty(client, rec, nil)

	_, err := client.R().Get(url + "/list/link_qy.php")
	require.Error(t, err)
	require.Equal(t, []string{report_resty_response}, rec.Broken)
}
