package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/dnaeon/go-vcr.v4/pkg/recorder"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetch_WithVCR(t *testing.T) {
	rec, err := recorder.New(filepath.Join("testdata", "vcr", "stations_feed"))
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	defer rec.Stop()

	client := &http.Client{
		Transport: rec,
		Timeout:   10 * time.Second,
	}

	c := NewClient("https://feed.example.com/livecyclehireupdates.xml", client, testLogger())
	stations, lastUpdate, err := c.Fetch(context.Background(), 0)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(stations))
	}

	first := stations[0]
	if first.ID != "1" || first.Name != "River Street , Clerkenwell" {
		t.Errorf("unexpected first station: %+v", first)
	}
	if first.TerminalName != "001023" {
		t.Errorf("expected terminal 001023, got %s", first.TerminalName)
	}
	if first.Lat != 51.52916347 || first.Long != -0.109970527 {
		t.Errorf("unexpected coordinates: %f, %f", first.Lat, first.Long)
	}
	if !first.Installed || first.Locked {
		t.Errorf("unexpected lifecycle flags: %+v", first)
	}
	if first.NbBikes != 4 || first.NbEBikes != 1 || first.NbDocks != 19 {
		t.Errorf("unexpected dock counts: %+v", first)
	}

	if lastUpdate.UnixMilli() != 1387898880000 {
		t.Errorf("unexpected lastUpdate: %v", lastUpdate)
	}
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		io.WriteString(w, `<stations lastUpdate="1700000000000"><station><id>9</id><name>Test Dock</name><terminalName>009999</terminalName><lat>51.5</lat><long>-0.1</long></station></stations>`)
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), testLogger())
	stations, _, err := c.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
	if len(stations) != 1 || stations[0].ID != "9" {
		t.Errorf("unexpected stations: %+v", stations)
	}
}

func TestFetch_DoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), testLogger())
	if _, _, err := c.Fetch(context.Background(), 3); err == nil {
		t.Fatal("expected error for 404 response")
	}
	if attempts != 1 {
		t.Errorf("expected a single attempt for a client error, got %d", attempts)
	}
}

func TestFetch_MalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"not": "xml"}`)
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), testLogger())
	if _, _, err := c.Fetch(context.Background(), 0); err == nil {
		t.Fatal("expected error for malformed feed")
	}
}

func TestFetch_ExhaustedRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(server.URL, server.Client(), testLogger())
	if _, _, err := c.Fetch(context.Background(), 1); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}
