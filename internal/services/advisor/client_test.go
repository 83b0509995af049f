package advisor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domain "handshake/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePrice(t *testing.T) {
	t.Run("decodes a fairness evaluation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/evaluate-price", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"fairMarketValue":280,"goodDeal":true,"suggestion":"Fair offer."}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		eval, err := client.EvaluatePrice(context.Background(), EvaluatePriceRequest{
			Description: "used city bike",
			Price:       250,
			Seller:      "2",
		})

		require.NoError(t, err)
		assert.Equal(t, int64(280), eval.FairMarketValue)
		assert.True(t, eval.GoodDeal)
	})

	t.Run("rejects an empty description locally", func(t *testing.T) {
		client := NewClient("http://advisor.invalid", time.Second)
		_, err := client.EvaluatePrice(context.Background(), EvaluatePriceRequest{Price: 100})
		assert.Error(t, err)
	})

	t.Run("unreachable service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // refuse connections

		client := NewClient(server.URL, time.Second)
		_, err := client.EvaluatePrice(context.Background(), EvaluatePriceRequest{
			Description: "used city bike",
			Price:       250,
		})

		assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
	})

	t.Run("non JSON error page", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>502 Bad Gateway</html>"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.EvaluatePrice(context.Background(), EvaluatePriceRequest{
			Description: "used city bike",
			Price:       250,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidServerResponse)
	})

	t.Run("garbled success body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json at all"))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.EvaluatePrice(context.Background(), EvaluatePriceRequest{
			Description: "used city bike",
			Price:       250,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidServerResponse)
	})

	t.Run("structured upstream error is surfaced as a typed failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"price out of range"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		_, err := client.EvaluatePrice(context.Background(), EvaluatePriceRequest{
			Description: "used city bike",
			Price:       250,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidServerResponse)
		assert.Contains(t, err.Error(), "price out of range")
	})
}

func TestGenerateLocations(t *testing.T) {
	t.Run("returns the ranked candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/generate-location", r.URL.Path)
			w.Write([]byte(`{"data":[
				{"SuitableLocationName":"Café Central","SuitableLocationGoogleMapsLink":"https://maps.google.com/?q=cafe"},
				{"SuitableLocationName":"Gare du Nord","SuitableLocationGoogleMapsLink":"https://maps.google.com/?q=gare"}
			]}`))
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		candidates, err := client.GenerateLocations(context.Background(), LocationRequest{
			Lat1: 48.85, Lon1: 2.35, Lat2: 48.86, Lon2: 2.34,
		})

		require.NoError(t, err)
		require.Len(t, candidates, 2)
		assert.Equal(t, "Café Central", candidates[0].Name)
		assert.Equal(t, "https://maps.google.com/?q=gare", candidates[1].MapLink)
	})

	t.Run("cancelled context aborts the call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := NewClient(server.URL, time.Second)
		_, err := client.GenerateLocations(ctx, LocationRequest{})

		assert.ErrorIs(t, err, domain.ErrNetworkUnavailable)
	})
}
