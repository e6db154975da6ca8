package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/bloodline-tools/bloodline/pkg/pedigree"
	"github.com/bloodline-tools/bloodline/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := pedigree.MapStore{}
	store.Add(pedigree.Individual{ID: "subj", Name: "Subject", SireID: "f", DamID: "m"})
	store.Add(pedigree.Individual{ID: "f", Name: "Father", Sex: pedigree.SexMale, SireID: "legend"})
	store.Add(pedigree.Individual{ID: "m", Name: "Mother", Sex: pedigree.SexFemale, SireID: "legend"})
	store.Add(pedigree.Individual{ID: "legend", Name: "Legend", Sex: pedigree.SexMale})

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(store, "fp", nil, logger)
	srv := httptest.NewServer(New(runner, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `"ok"`) {
		t.Errorf("body = %q", body)
	}
}

func TestPedigreeTable(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/pedigree/subj?gen=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(body, "<table class=\"pedigree\">") {
		t.Error("body should contain the pedigree table")
	}
	if !strings.Contains(body, "Legend 50.00% 2 x 2") {
		t.Error("body should contain the inbreeding summary")
	}
}

func TestPedigreeWheel(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/pedigree/subj/wheel.svg")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(body, "<svg") {
		t.Error("body should be an SVG document")
	}
}

func TestPedigreeReport(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/pedigree/subj/report?gen=3")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var report pipeline.ReportJSON
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if report.Subject != "subj" {
		t.Errorf("Subject = %q", report.Subject)
	}
	if len(report.Entries) != 1 || report.Entries[0].ID != "legend" {
		t.Errorf("Entries = %+v", report.Entries)
	}
}

func TestUnknownSubjectStillRenders(t *testing.T) {
	srv := testServer(t)

	resp, body := get(t, srv, "/pedigree/nobody")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Unknown") {
		t.Error("unknown subjects render an explicit unknown pedigree")
	}
}

func TestBadGenParam(t *testing.T) {
	srv := testServer(t)

	for _, q := range []string{"gen=0", "gen=-2", "gen=abc"} {
		resp, _ := get(t, srv, "/pedigree/subj?"+q)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", q, resp.StatusCode)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := testServer(t)

	resp, _ := get(t, srv, "/health")
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	// Incoming IDs are preserved
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("X-Request-ID", "fixed-id")
	resp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp2.Body.Close()
	if got := resp2.Header.Get("X-Request-ID"); got != "fixed-id" {
		t.Errorf("X-Request-ID = %q, want fixed-id", got)
	}
}
