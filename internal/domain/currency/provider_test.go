package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_Fetch(t *testing.T) {
	t.Run("decodes a rate table", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/INR", r.URL.Path)
			w.Write([]byte(`{"rates":{"USD":0.012031,"EUR":0.01105}}`))
		}))
		defer srv.Close()

		provider := NewHTTPProvider(srv.URL, srv.Client())
		table, err := provider.Fetch(context.Background(), "inr")

		require.NoError(t, err)
		assert.Equal(t, "INR", table.Base)
		assert.True(t, table.Rates["USD"].Equal(decimal.RequireFromString("0.012031")))
		assert.False(t, table.FetchedAt.IsZero())
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHTTPProvider(srv.URL, srv.Client()).Fetch(context.Background(), "INR")
		assert.Error(t, err)
	})

	t.Run("empty rate map is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"rates":{}}`))
		}))
		defer srv.Close()

		_, err := NewHTTPProvider(srv.URL, srv.Client()).Fetch(context.Background(), "INR")
		assert.Error(t, err)
	})
}
