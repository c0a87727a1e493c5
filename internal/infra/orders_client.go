package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"chopengine/internal/apierror"
	"chopengine/internal/dto"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// ── Remote order store client ─────────────────────────────────────────────────
// OrdersClient talks to an external order/inventory store over its REST
// surface. Every call is attempted once: there is no retry policy on the
// resty client, and the circuit breaker only fails fast while the store is
// down.

var errUpstream5xx = errors.New("upstream 5xx")

type OrdersClient struct {
	http *resty.Client
	cb   *CircuitBreaker
}

func NewOrdersClient(baseURL string, timeout time.Duration, cb *CircuitBreaker) *OrdersClient {
	if cb == nil {
		cb = NewCircuitBreaker(DefaultCBConfig())
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)

	return &OrdersClient{http: httpClient, cb: cb}
}

// BreakerState is reported by the health endpoint.
func (c *OrdersClient) BreakerState() CBState { return c.cb.State() }

// ── Orders ────────────────────────────────────────────────────────────────────

func (c *OrdersClient) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (string, error) {
	var ref dto.CreatedOrderRef
	resp, err := c.do(ctx, "create order", http.MethodPost, "/orders", nil, req, &ref)
	if err != nil {
		return "", err
	}
	id := ref.Resolve()
	if id == "" {
		return "", &apierror.MalformedResponseError{Status: resp.StatusCode(), Snippet: apierror.Snippet(resp.String())}
	}
	return id, nil
}

// ListOrders fetches the full order history. Stores that wrap the array in
// {"orders": [...]} or {"data": [...]} are accepted too. Records that are
// not order objects are dropped so one bad row cannot hide the rest.
func (c *OrdersClient) ListOrders(ctx context.Context) ([]dto.OrderRecord, error) {
	var raw json.RawMessage
	query := map[string]string{"_ts": strconv.FormatInt(time.Now().UnixMilli(), 10)}
	resp, err := c.do(ctx, "list orders", http.MethodGet, "/orders", query, nil, &raw)
	if err != nil {
		return nil, err
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		var wrapped struct {
			Orders []json.RawMessage `json:"orders"`
			Data   []json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, &apierror.MalformedResponseError{Status: resp.StatusCode(), Snippet: apierror.Snippet(resp.String())}
		}
		elems = wrapped.Data
		if wrapped.Orders != nil {
			elems = wrapped.Orders
		}
	}

	orders, skipped := dto.DecodeOrderRecords(elems)
	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Int("kept", len(orders)).Msg("orders client: dropped undecodable order records")
	}
	return orders, nil
}

// ── Inventory ─────────────────────────────────────────────────────────────────

func (c *OrdersClient) ListItems(ctx context.Context) ([]dto.InventoryItemResponse, error) {
	var out []dto.InventoryItemResponse
	_, err := c.do(ctx, "list inventory items", http.MethodGet, "/inventory/items", nil, nil, &out)
	return out, err
}

func (c *OrdersClient) CreateItem(ctx context.Context, req dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	var out dto.InventoryItemResponse
	if _, err := c.do(ctx, "create inventory item", http.MethodPost, "/inventory/items", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *OrdersClient) UpdateItem(ctx context.Context, id string, req dto.UpdateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	var out dto.InventoryItemResponse
	if _, err := c.do(ctx, "update inventory item", http.MethodPatch, "/inventory/items/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *OrdersClient) DeleteItem(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete inventory item", http.MethodDelete, "/inventory/items/"+id, nil, nil, nil)
	return err
}

func (c *OrdersClient) ListStock(ctx context.Context) ([]dto.StockEntryResponse, error) {
	var out []dto.StockEntryResponse
	_, err := c.do(ctx, "list stock", http.MethodGet, "/inventory/stock", nil, nil, &out)
	return out, err
}

func (c *OrdersClient) CreateStock(ctx context.Context, req dto.CreateStockEntryRequest) (*dto.StockEntryResponse, error) {
	var out dto.StockEntryResponse
	if _, err := c.do(ctx, "restock", http.MethodPost, "/inventory/stock", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *OrdersClient) UpdateStock(ctx context.Context, id string, req dto.UpdateStockEntryRequest) (*dto.StockEntryResponse, error) {
	var out dto.StockEntryResponse
	if _, err := c.do(ctx, "update stock entry", http.MethodPatch, "/inventory/stock/"+id, nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *OrdersClient) DeleteStock(ctx context.Context, id string) error {
	_, err := c.do(ctx, "delete stock entry", http.MethodDelete, "/inventory/stock/"+id, nil, nil, nil)
	return err
}

func (c *OrdersClient) ListMovements(ctx context.Context, limit int) ([]dto.StockEntryResponse, error) {
	var out []dto.StockEntryResponse
	query := map[string]string{"limit": strconv.Itoa(limit)}
	_, err := c.do(ctx, "list movements", http.MethodGet, "/inventory/movements", query, nil, &out)
	return out, err
}

// ── Transport ─────────────────────────────────────────────────────────────────

// do runs one request through the breaker and maps the outcome onto the
// error taxonomy. Only transport failures and 5xx replies count against the
// breaker; a cancelled context does not.
func (c *OrdersClient) do(ctx context.Context, op, method, path string, query map[string]string, body, out any) (*resty.Response, error) {
	var (
		resp    *resty.Response
		callErr error
	)
	cbErr := c.cb.Execute(func() error {
		req := c.http.R().SetContext(ctx)
		if len(query) > 0 {
			req.SetQueryParams(query)
		}
		if body != nil {
			req.SetHeader("Content-Type", "application/json").SetBody(body)
		}
		resp, callErr = req.Execute(method, path)
		switch {
		case callErr != nil && ctx.Err() != nil:
			return nil
		case callErr != nil:
			return callErr
		case resp.StatusCode() >= http.StatusInternalServerError:
			return errUpstream5xx
		}
		return nil
	})
	if errors.Is(cbErr, ErrCircuitOpen) {
		return nil, &apierror.NetworkError{Op: op, Err: cbErr}
	}
	if callErr != nil {
		return nil, &apierror.NetworkError{Op: op, Err: callErr}
	}
	if resp.IsError() {
		return resp, errorFromResponse(resp)
	}
	if out == nil {
		return resp, nil
	}
	if !looksLikeJSON(resp) {
		return resp, &apierror.MalformedResponseError{Status: resp.StatusCode(), Snippet: apierror.Snippet(resp.String())}
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return resp, &apierror.MalformedResponseError{Status: resp.StatusCode(), Snippet: apierror.Snippet(resp.String())}
	}
	return resp, nil
}

// looksLikeJSON sniffs the content type, falling back to the first byte for
// stores that omit the header.
func looksLikeJSON(resp *resty.Response) bool {
	if strings.Contains(strings.ToLower(resp.Header().Get("Content-Type")), "json") {
		return true
	}
	b := bytes.TrimSpace(resp.Body())
	return len(b) > 0 && (b[0] == '{' || b[0] == '[')
}

// errorFromResponse prefers the server's {error} (or {message}) text and
// falls back to a snippet of the raw body, then to the status line.
func errorFromResponse(resp *resty.Response) error {
	msg := ""
	if looksLikeJSON(resp) {
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
			Detail  string `json:"detail"`
		}
		if err := json.Unmarshal(resp.Body(), &payload); err == nil {
			msg = dto.FirstNonEmpty(payload.Error, payload.Message, payload.Detail)
		}
	}
	if msg == "" {
		msg = apierror.Snippet(resp.String())
	}
	if msg == "" {
		msg = resp.Status()
	}
	return &apierror.ServerError{Status: resp.StatusCode(), Message: msg}
}
