package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*OrdersClient, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Hour})
	return NewOrdersClient(srv.URL, 2*time.Second, cb), &hits
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestOrdersClient_CreateOrderResolvesID(t *testing.T) {
	var got dto.CreateOrderRequest
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]string{"_id": "abc123", "orderId": "ord-9"})
	})

	id, err := c.CreateOrder(context.Background(), dto.CreateOrderRequest{
		OrderType:   "instore",
		PaymentMode: "cash",
		Total:       decimal.NewFromInt(3450),
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "instore", got.OrderType)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(3450)))
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestOrdersClient_ServerErrorMessage(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "phone is required"})
	})

	_, err := c.CreateOrder(context.Background(), dto.CreateOrderRequest{})
	var se *apierror.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "phone is required", se.Message)
	assert.Equal(t, "phone is required", apierror.NewSubmissionError(err).Message)
	assert.EqualValues(t, 1, atomic.LoadInt32(hits))
}

func TestOrdersClient_PlainTextErrorFallsBackToBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("duplicate order"))
	})

	_, err := c.ListOrders(context.Background())
	var se *apierror.ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "duplicate order", se.Message)
}

func TestOrdersClient_NotFoundIsErrNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "no such item"})
	})

	err := c.DeleteItem(context.Background(), "missing")
	assert.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestOrdersClient_NonJSONSuccessIsMalformed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	})

	_, err := c.ListOrders(context.Background())
	var me *apierror.MalformedResponseError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, http.StatusOK, me.Status)
	assert.Contains(t, me.Snippet, "maintenance")
}

func TestOrdersClient_ListOrdersAcceptsWrappedArrays(t *testing.T) {
	bodies := []string{
		`[{"_id":"a","orderType":"online","total":"100","createdAt":"2026-10-15T10:00:00Z","items":[]}]`,
		`{"orders":[{"orderId":"a","orderType":"online","total":100,"createdAt":1760522400000}]}`,
		`{"data":[{"id":"a","orderType":"online","total":100}]}`,
	}
	for _, body := range bodies {
		b := body
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.URL.Query().Get("_ts"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(b))
		})
		orders, err := c.ListOrders(context.Background())
		require.NoError(t, err, b)
		require.Len(t, orders, 1, b)
		assert.Equal(t, "a", orders[0].ID)
		assert.True(t, orders[0].Total.Equal(decimal.NewFromInt(100)))
	}
}

func TestOrdersClient_ListOrdersSkipsBadRecords(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
		  {"_id":"1","orderType":"instore","total":500,"items":[{"name":"Rice","quantity":1,"price":500}]},
		  {"_id":"2","orderType":"online","total":900,"items":"legacy"},
		  "not-an-order",
		  {"_id":"3","orderType":"online","total":300,"items":["Coke",{"name":"Fanta","quantity":2,"price":150}]}
		]`))
	})

	orders, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, "1", orders[0].ID)
	require.Len(t, orders[0].Items, 1)

	assert.Equal(t, "2", orders[1].ID)
	assert.Empty(t, orders[1].Items, "a non-array items value yields no lines")
	assert.True(t, orders[1].Total.Equal(decimal.NewFromInt(900)))

	assert.Equal(t, "3", orders[2].ID)
	require.Len(t, orders[2].Items, 1, "bare string items are dropped")
	assert.Equal(t, "Fanta", orders[2].Items[0].Name)
}

func TestOrdersClient_5xxOpensBreakerWithoutRetry(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"detail": "upstream down"})
	})

	for i := 0; i < 2; i++ {
		_, err := c.ListOrders(context.Background())
		var se *apierror.ServerError
		require.ErrorAs(t, err, &se)
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(hits), "each call is attempted exactly once")
	assert.Equal(t, CBOpen, c.BreakerState())

	_, err := c.ListOrders(context.Background())
	var ne *apierror.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.EqualValues(t, 2, atomic.LoadInt32(hits))
}

func TestOrdersClient_4xxDoesNotTripBreaker(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "bad"})
	})
	for i := 0; i < 5; i++ {
		_, _ = c.ListItems(context.Background())
	}
	assert.Equal(t, CBClosed, c.BreakerState())
}

func TestOrdersClient_TransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewOrdersClient(url, time.Second, nil)
	_, err := c.CreateOrder(context.Background(), dto.CreateOrderRequest{})
	var ne *apierror.NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, apierror.GenericSubmissionFailure, apierror.NewSubmissionError(err).Message)
}
