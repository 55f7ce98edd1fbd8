package inventory

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/icholy/digest"
	"github.com/opencrowbar/crowbar-inventory/internal/app"
	"github.com/opencrowbar/crowbar-inventory/internal/metrics"
	"github.com/opencrowbar/crowbar-inventory/internal/model"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	component = "inventory.crowbar"
	pkgName   = "internal/inventory"

	statusLabelError = "error"
)

var (
	// ErrRequest is returned when the inventory request could not be made or completed.
	ErrRequest = errors.New("error in inventory request")

	// ErrResponseRead is returned when the inventory response body could not be read.
	ErrResponseRead = errors.New("error reading inventory response")

	// ErrResponseStatus is matched by a FetchError with errors.Is.
	ErrResponseStatus = errors.New("unexpected inventory response status")
)

// FetchError is returned for an inventory response with a status other than 200.
type FetchError struct {
	StatusCode int
	Body       string
}

// Error returns the response body, the status is included only when the body is empty.
func (e *FetchError) Error() string {
	if e.Body == "" {
		return ErrResponseStatus.Error() + ": " + strconv.Itoa(e.StatusCode)
	}

	return e.Body
}

func (e *FetchError) Unwrap() error {
	return ErrResponseStatus
}

// Client fetches the Ansible inventory from the OpenCrowbar status API.
type Client struct {
	address string
	client  *retryablehttp.Client
	logger  *logrus.Logger
}

// NewClient returns a Client that authenticates to the OpenCrowbar API with HTTP Digest.
//
// Requests are made exactly once, the client does not retry and sets no timeout.
func NewClient(opts *app.CrowbarOptions, logger *logrus.Logger) *Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 0
	client.CheckRetry = noRetryPolicy
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = &leveledLogger{logger: logger}

	client.HTTPClient.Transport = otelhttp.NewTransport(
		&digest.Transport{
			Username:  opts.Username,
			Password:  opts.Password,
			Transport: client.HTTPClient.Transport,
		},
	)

	return &Client{
		address: opts.Address,
		client:  client,
		logger:  logger,
	}
}

// noRetryPolicy never retries, every response is handed back to Fetch
// with its body unread, transport errors are returned as is.
func noRetryPolicy(ctx context.Context, _ *http.Response, _ error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	return false, nil
}

// Fetch returns the raw inventory response body for the query.
//
// A response with a status other than 200 is returned as a *FetchError.
func (c *Client) Fetch(ctx context.Context, query model.Query) ([]byte, error) {
	ctx, span := otel.Tracer(pkgName).Start(
		ctx,
		"Crowbar.Fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("crowbar.query", string(query.Kind))),
	)
	defer span.End()

	body, err := c.fetch(ctx, query, span)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	return body, nil
}

func (c *Client) fetch(ctx context.Context, query model.Query, span trace.Span) ([]byte, error) {
	if err := validHost(query.Host); err != nil {
		return nil, err
	}

	inventoryURL := URL(c.address, query)

	le := c.logger.WithFields(
		logrus.Fields{
			"component": component,
			"query":     query.Kind,
			"url":       inventoryURL,
		},
	)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, inventoryURL, nil)
	if err != nil {
		return nil, errors.Wrap(ErrRequest, err.Error())
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", model.AppName)

	startTS := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.ObserveRequest(string(query.Kind), statusLabelError, startTS, 0)

		return nil, errors.Wrap(ErrRequest, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.ObserveRequest(string(query.Kind), strconv.Itoa(resp.StatusCode), startTS, len(body))

	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.Int("crowbar.response_bytes", len(body)),
	)

	if err != nil {
		return nil, errors.Wrap(ErrResponseRead, err.Error())
	}

	le.WithFields(
		logrus.Fields{
			"status":  resp.StatusCode,
			"bytes":   len(body),
			"elapsed": time.Since(startTS).String(),
		},
	).Debug("inventory response received")

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
