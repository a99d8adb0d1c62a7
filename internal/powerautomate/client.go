package powerautomate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/flowscan/internal/auth"
	"github.com/scan-io-git/flowscan/pkg/shared/httpclient"
)

const (
	// APIVersion is sent as the api-version query parameter on every call.
	APIVersion = "2016-11-01"
	// ClientScope is the value of the x-ms-client-scope header.
	ClientScope = "urn:Microsoft.Flow"
)

// service wraps a client to access different services.
type service struct {
	client *Client
}

// Client configures and manages access to the flow management API, holding service implementations and an HTTP client.
type Client struct {
	HTTPClient   *httpclient.Client
	BaseURL      string
	Logger       hclog.Logger
	Environments EnvironmentsService
	Flows        FlowsService

	token auth.AccessToken
}

// EnvironmentsService defines the interface for environment-related operations.
type EnvironmentsService interface {
	List(ctx context.Context) ([]Environment, error)
}

// FlowsService defines the interface for flow-related operations.
// Implementations path-escape the environment name in the request URL.
type FlowsService interface {
	List(ctx context.Context, env Environment) ([]FlowRecord, error)
}

// New initializes a new API client authenticated with the given access token.
func New(httpClient *httpclient.Client, baseURL string, token auth.AccessToken, logger hclog.Logger) *Client {
	client := &Client{
		HTTPClient: httpClient,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Logger:     logger,
		token:      token,
	}

	client.Environments = NewEnvironmentsService(client)
	client.Flows = NewFlowsService(client)

	return client
}

// headersBuilder returns a request carrying the bearer token and the headers the API requires.
func (c *Client) headersBuilder(ctx context.Context) *resty.Request {
	return c.HTTPClient.RestyClient.R().
		SetContext(ctx).
		SetAuthToken(string(c.token)).
		SetHeader("x-ms-client-scope", ClientScope).
		SetHeader("Accept", "application/json")
}

// get sends a GET request for the path below the base URL.
func (c *Client) get(ctx context.Context, path string) (*resty.Response, error) {
	return c.headersBuilder(ctx).
		SetQueryParam("api-version", APIVersion).
		Get(c.BaseURL + path)
}

// decodeList parses a {"value": [...]} collection body.
// A body that is not JSON or lacks the value array is a fault.
func decodeList[T any](op string, resp *resty.Response) ([]T, error) {
	var out listResponse[T]
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &FaultError{Op: op, Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}
	if out.Value == nil {
		return nil, &FaultError{Op: op, Err: fmt.Errorf("response has no %q array", "value")}
	}
	return *out.Value, nil
}
