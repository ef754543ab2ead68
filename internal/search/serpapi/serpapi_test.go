package serpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-lead-sourcer/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	var gotQuery, gotKey, gotNum string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotKey = r.URL.Query().Get("api_key")
		gotNum = r.URL.Query().Get("num")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"organic_results":[
			{"link":"https://www.linkedin.com/in/jane-doe-4af821b","title":"Jane Doe - Account Executive | LinkedIn","snippet":"Salt Lake City"},
			{"link":"https://example.com","title":"Other","snippet":""}
		]}`))
	}))
	defer srv.Close()

	c := NewClient("secret").WithEndpoint(srv.URL)
	hits, err := c.Search(context.Background(), `site:linkedin.com/in "Account Executive"`, 15)

	require.NoError(t, err)
	assert.Equal(t, `site:linkedin.com/in "Account Executive"`, gotQuery)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "15", gotNum)
	require.Len(t, hits, 2)
	assert.Equal(t, "Jane Doe - Account Executive | LinkedIn", hits[0].Title)
	assert.Equal(t, "Salt Lake City", hits[0].Snippet)
}

func TestSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantNil bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{}`, wantErr: search.ErrRateLimited},
		{name: "malformed", status: http.StatusOK, body: `not json`, wantErr: search.ErrMalformed},
		{name: "no results", status: http.StatusOK, body: `{"error":"Google hasn't returned any results for this query."}`, wantNil: true},
		{name: "bad key", status: http.StatusUnauthorized, body: `{"error":"Invalid API key."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			hits, err := NewClient("k").WithEndpoint(srv.URL).Search(context.Background(), "q", 10)
			if tt.wantNil {
				assert.NoError(t, err)
				assert.Empty(t, hits)
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
