package tle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoadDefault(t *testing.T) {
	e, err := Load(context.Background(), Source{Default: ISSTLE}, testLogger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.NORADID != 25544 {
		t.Errorf("NORAD ID = %d, want 25544", e.NORADID)
	}
}

func TestLoadFileSelectsNORAD(t *testing.T) {
	path := filepath.Join(t.TempDir(), "set.tle")
	if err := os.WriteFile(path, []byte(IntelsatTLE+"\n"+ISSTLE+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	e, err := Load(context.Background(), Source{File: path, NORADID: 25544, Default: IntelsatTLE}, testLogger)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if e.Name != "ISS (ZARYA)" {
		t.Errorf("name = %q, want ISS (ZARYA)", e.Name)
	}

	_, err = Load(context.Background(), Source{File: path, NORADID: 1}, testLogger)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestLoadURLWritesThroughCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(ISSTLE))
	}))
	defer server.Close()

	src := Source{URL: server.URL, CacheDir: t.TempDir(), MaxAge: time.Hour}

	for i := 0; i < 2; i++ {
		e, err := Load(context.Background(), src, testLogger)
		if err != nil {
			t.Fatalf("Load %d failed: %v", i, err)
		}
		if e.NORADID != 25544 {
			t.Errorf("Load %d: NORAD ID = %d, want 25544", i, e.NORADID)
		}
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("server hit %d times, want 1 (second load from cache)", got)
	}
}

func TestLoadNoValidEntries(t *testing.T) {
	_, err := Load(context.Background(), Source{Default: "nothing useful here"}, testLogger)
	if !errors.Is(err, ErrInvalidTLE) {
		t.Errorf("error = %v, want ErrInvalidTLE", err)
	}
}

func TestLoadNoSource(t *testing.T) {
	if _, err := Load(context.Background(), Source{}, testLogger); err == nil {
		t.Fatal("expected error with no source configured")
	}
}
