package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/eltech/pos-terminal/internal/domain/entity"
	"github.com/eltech/pos-terminal/pkg/apperror"
)

// Client is the REST implementation of gateway.InventoryGateway. It talks to
// the inventory backend with bearer auth, retrying exactly once on 401 after
// forcing a token refresh.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenSource
	log     *logrus.Entry
}

// NewClient creates a backend client. The transport is instrumented so
// backend latency shows up in traces.
func NewClient(baseURL string, tokens *TokenSource, timeout time.Duration, log *logrus.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		log:     log.WithField("component", "backend"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// apiEnvelope is the backend's standard response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ListProducts fetches the full sellable catalog.
func (c *Client) ListProducts(ctx context.Context) ([]entity.CatalogItem, error) {
	var items []entity.CatalogItem
	if err := c.do(ctx, http.MethodGet, "/api/v1/products", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// CreateSale submits a sale. A 4xx response carries the backend's validation
// message back to the caller as a submission rejection; transport failures
// and 5xx responses surface as network failures so the snapshot can be
// retried.
func (c *Client) CreateSale(ctx context.Context, sub *entity.SaleSubmission) (*entity.SaleRecord, error) {
	var record entity.SaleRecord
	if err := c.do(ctx, http.MethodPost, "/api/v1/sales", sub, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// do runs one authenticated request, retrying once on 401 after invalidating
// the cached token.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.log.Debug("backend returned 401, refreshing token and retrying")
		c.tokens.Invalidate()
		resp, err = c.send(ctx, method, path, body)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Wrapf(apperror.ErrNetworkFailure, "backend returned status %d", resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return c.decodeRejection(resp)
	}

	if out == nil {
		return nil
	}
	env := apiEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(apperror.ErrNetworkFailure, "decoding backend response")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(apperror.ErrNetworkFailure, "decoding backend payload")
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, "building backend request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	tok, err := c.tokens.Token()
	if err != nil {
		return nil, errors.Wrap(apperror.ErrNetworkFailure, err.Error())
	}
	req.Header.Set("Authorization", AuthHeader(tok))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(apperror.ErrNetworkFailure, err.Error())
	}
	return resp, nil
}

// decodeRejection turns a 4xx backend response into a submission rejection
// carrying the backend's own message.
func (c *Client) decodeRejection(resp *http.Response) error {
	env := apiEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil || env.Message == "" {
		return apperror.NewSubmissionRejectedError("")
	}
	return apperror.NewSubmissionRejectedError(env.Message)
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()
}
