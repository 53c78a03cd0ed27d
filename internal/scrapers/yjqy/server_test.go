package yjqy

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"yjqy-scraper/internal/components/telemetry"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// fakeSite serves the testdata pages gb2312 encoded the way the real site does.
type fakeSite struct {
	t      testing.TB
	server *httptest.Server

	mu       sync.Mutex
	forms    []url.Values
	requests []string
	// overrides maps a request path to the page served instead of the default.
	overrides map[string]string
	status    map[string]int
}

func newFakeSite(t testing.TB) *fakeSite {
	site := &fakeSite{
		t:         t,
		overrides: map[string]string{},
		status:    map[string]int{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /list/link_qy.php", func(w http.ResponseWriter, r *http.Request) {
		site.serve(w, r, "link_qy.html")
	})
	mux.HandleFunc("GET /sc/{code}/stu_chaxun.php", func(w http.ResponseWriter, r *http.Request) {
		site.serve(w, r, "stu_chaxun.html")
	})
	mux.HandleFunc("POST /sc/{code}/stu_chaxun.php", func(w http.ResponseWriter, r *http.Request) {
		err := r.ParseForm()
		if err != nil {
			t.Error(err)
		}
		site.mu.Lock()
		site.forms = append(site.forms, r.PostForm)
		site.mu.Unlock()

		if r.PostForm.Has("xjh_inf") {
			site.serve(w, r, "results.html")
			return
		}
		site.serve(w, r, "columns.html")
	})
	mux.HandleFunc("GET /sc/{code}/banben.php", func(w http.ResponseWriter, r *http.Request) {
		site.serve(w, r, "banben.html")
	})

	site.server = httptest.NewServer(mux)
	t.Cleanup(site.server.Close)
	return site
}

func (s *fakeSite) baseUrl() string {
	return s.server.URL + "/"
}

func (s *fakeSite) serve(w http.ResponseWriter, r *http.Request, page string) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	override, hasOverride := s.overrides[r.URL.Path]
	status, hasStatus := s.status[r.URL.Path]
	s.mu.Unlock()

	if hasStatus {
		w.WriteHeader(status)
		return
	}

	var contents string
	if hasOverride {
		contents = override
	} else {
		raw, err := os.ReadFile(filepath.Join("testdata", page))
		if err != nil {
			s.t.Error(err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		contents = string(raw)
	}
	contents = strings.ReplaceAll(contents, "{{base}}", s.baseUrl())

	encoded, err := simplifiedchinese.GBK.NewEncoder().String(contents)
	if err != nil {
		s.t.Error(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("content-type", "text/html")
	w.Write([]byte(encoded))
}

func (s *fakeSite) client(t testing.TB) *Client {
	client, err := NewClient(ClientOptions{BaseUrl: s.baseUrl()}, &telemetry.RecordingAPI{})
	if err != nil {
		t.Fatal(err)
	}
	return client
}
