package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smartinb/go-url-shortener/internal/cache"
	"github.com/smartinb/go-url-shortener/internal/service"
	"github.com/smartinb/go-url-shortener/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := storage.CreateMemoryStorage()
	require.NoError(t, err)

	logger := zap.NewNop()
	allocator := service.NewAllocator(store, service.NewKeyGenerator(), service.DefaultKeyLength, logger)
	urlService := service.NewURL(store, allocator, cache.NewMemoryCache(time.Minute), logger)

	ts := httptest.NewServer(Init(urlService, "http://localhost:8080", logger))
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func TestCreateAndResolveFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/url", `{"url":"https://www.example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID       int64  `json:"id"`
			URL      string `json:"url"`
			URLKey   string `json:"url_key"`
			ShortURL string `json:"short_url"`
		} `json:"data"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &created)

	assert.Equal(t, "https://www.example.com", created.Data.URL)
	assert.Len(t, created.Data.URLKey, 8)
	assert.Equal(t, "http://localhost:8080/"+created.Data.URLKey, created.Data.ShortURL)
	assert.Equal(t, "URL created successfully", created.Message)

	resp, err := http.Get(ts.URL + "/url/" + created.Data.URLKey)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var resolved struct {
		Data map[string]any `json:"data"`
	}
	decodeBody(t, resp, &resolved)

	assert.Equal(t, "https://www.example.com", resolved.Data["url"])
	assert.Equal(t, created.Data.URLKey, resolved.Data["url_key"])
	assert.NotContains(t, resolved.Data, "short_url")
}

func TestCreateRejectsInvalidURL(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/url", `{"url":"not-a-url"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Status bool     `json:"status"`
		Errors []string `json:"errors"`
	}
	decodeBody(t, resp, &body)

	assert.False(t, body.Status)
	assert.Contains(t, body.Errors, "The url format is invalid.")
}

func TestResolveUnknownKey(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/url/nothere1")
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)

	assert.False(t, body.Status)
	assert.Equal(t, "URL not found", body.Message)
}

func TestListPaginationFlow(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 20; i++ {
		resp := postJSON(t, ts.URL+"/url", fmt.Sprintf(`{"url":"https://www.example.com/item/%d"}`, i))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	var listing struct {
		Data        []map[string]any `json:"data"`
		CurrentPage int              `json:"current_page"`
		LastPage    int              `json:"last_page"`
		Total       int              `json:"total"`
	}

	resp, err := http.Get(ts.URL + "/url")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &listing)

	assert.Len(t, listing.Data, 15)
	assert.Equal(t, 1, listing.CurrentPage)
	assert.Equal(t, 2, listing.LastPage)
	assert.Equal(t, 20, listing.Total)

	resp, err = http.Get(ts.URL + "/url?unpaginated=true")
	require.NoError(t, err)
	decodeBody(t, resp, &listing)

	assert.Len(t, listing.Data, 20)
	assert.Equal(t, 1, listing.LastPage)
	assert.Equal(t, 20, listing.Total)
}

func TestUpdateAndDeleteFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/url", `{"url":"https://www.example.com"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID     int64  `json:"id"`
			URLKey string `json:"url_key"`
		} `json:"data"`
	}
	decodeBody(t, resp, &created)

	client := &http.Client{}

	updateReq, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/url/%d", ts.URL, created.Data.ID),
		strings.NewReader(`{"url":"https://www.changed.com"}`))
	require.NoError(t, err)
	updateReq.Header.Set("Content-Type", "application/json")

	resp, err = client.Do(updateReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var updated struct {
		Data struct {
			URL    string `json:"url"`
			URLKey string `json:"url_key"`
		} `json:"data"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, "https://www.changed.com", updated.Data.URL)
	assert.Equal(t, created.Data.URLKey, updated.Data.URLKey)

	deleteReq, err := http.NewRequest(http.MethodDelete,
		fmt.Sprintf("%s/url/%d", ts.URL, created.Data.ID), nil)
	require.NoError(t, err)

	resp, err = client.Do(deleteReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted map[string]any
	decodeBody(t, resp, &deleted)
	assert.EqualValues(t, created.Data.ID, deleted["id"])

	resp, err = client.Do(deleteReq)
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
