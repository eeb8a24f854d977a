package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEntrySendsTextBody(t *testing.T) {
	var gotBody map[string]string
	var gotRequestID, gotContentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/entry", r.URL.Path)
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")

		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &gotBody))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second, srv.Client())
	require.NoError(t, c.CreateEntry(context.Background(), "Hello"))

	assert.Equal(t, map[string]string{"text": "Hello"}, gotBody)
	assert.Equal(t, "application/json", gotContentType)
	assert.Len(t, gotRequestID, 36, "request id should be a uuid")
}

func TestListEntriesPreservesServerOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/entries", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"text":"second","dateTime":"2024-03-02T10:00:00Z","ts":"b"},
			{"text":"first","dateTime":"2024-03-01 09:30:00","ts":"a"},
			{"text":"third","dateTime":1709500000000,"ts":"c"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, srv.Client())
	entries, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, []string{"b", "a", "c"}, []string{entries[0].TS, entries[1].TS, entries[2].TS})
	assert.Equal(t, "second", entries[0].Text)
	assert.Equal(t, 2024, entries[0].DateTime.Year())
	assert.Equal(t, time.March, entries[1].DateTime.Month())
	assert.Equal(t, int64(1709500000000), entries[2].DateTime.UnixMilli())
}

func TestListEntriesEmptyIsNotNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL, time.Second, srv.Client()).ListEntries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, srv.Client())
	err := c.CreateEntry(context.Background(), "Hello")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "create entry", statusErr.Op)
	assert.Equal(t, "database unavailable", statusErr.Body)
	assert.Equal(t, 1, calls, "requests must not be retried")
}

func TestListEntriesBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, srv.Client()).ListEntries(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list entries: decode response")
}

func TestRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, srv.Client())
	_, err := c.ListEntries(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestSetEndpoint(t *testing.T) {
	hit := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient("http://127.0.0.1:1", time.Second, srv.Client())
	c.SetEndpoint(srv.URL+"/", 2*time.Second)
	assert.Equal(t, srv.URL, c.BaseURL())

	_, err := c.ListEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/entries", <-hit)
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
}
