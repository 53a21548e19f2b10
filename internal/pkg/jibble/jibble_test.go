package jibble

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *clientImpl {
	return &clientImpl{
		apiURL:     server.URL,
		httpClient: server.Client(),
	}
}

func TestTimeEntriesFollowsPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"value":[{"id":"e3","personId":"p1","type":"Out","time":"2026-03-02T17:00:00Z","belongsToDate":"2026-03-02"}]}`)
			return
		}

		assert.Contains(t, r.URL.Query().Get("$filter"), "belongsToDate ge 2026-03-02")
		fmt.Fprintf(w, `{
			"value":[
				{"id":"e1","personId":"p1","type":"In","time":"2026-03-02T09:00:00Z","belongsToDate":"2026-03-02"},
				{"id":"e2","personId":"p2","type":"In","time":"2026-03-02T09:05:00Z","belongsToDate":"2026-03-02"}
			],
			"@odata.nextLink":"%s/v1/TimeEntries?page=2"
		}`, server.URL)
	}))
	defer server.Close()

	entries, err := newTestClient(server).TimeEntries(context.Background(), "2026-03-02", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, "Out", entries[2].Type)
}

func TestListAllStopsAtPageCap(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"value":[{"id":"g1","name":"Acme"}],"@odata.nextLink":"%s/v1/Groups"}`, server.URL)
	}))
	defer server.Close()

	_, err := newTestClient(server).Groups(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pagination exceeded")
}

func TestGetRejectsNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newTestClient(server).People(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}
