package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/flowscan/internal/config"
	"github.com/scan-io-git/flowscan/pkg/shared/httpclient"
)

const grantTypeClientCredentials = "client_credentials"

// AccessToken is an opaque bearer token valid for a single run.
type AccessToken string

// Acquirer exchanges application credentials for an access token.
type Acquirer struct {
	HTTPClient *httpclient.Client
	Authority  string
	Logger     hclog.Logger
}

// tokenResponse is the subset of the token endpoint response that is read.
type tokenResponse struct {
	AccessToken *string `json:"access_token"`
}

// NewAcquirer creates an Acquirer that requests tokens from the given authority host.
func NewAcquirer(client *httpclient.Client, authority string, logger hclog.Logger) *Acquirer {
	return &Acquirer{
		HTTPClient: client,
		Authority:  strings.TrimRight(authority, "/"),
		Logger:     logger,
	}
}

// TokenURL returns the v2.0 token endpoint of the tenant.
func (a *Acquirer) TokenURL(tenantID string) string {
	return fmt.Sprintf("%s/%s/oauth2/v2.0/token", a.Authority, url.PathEscape(tenantID))
}

// AcquireToken performs a single client-credentials grant.
func (a *Acquirer) AcquireToken(ctx context.Context, creds config.Credentials) (AccessToken, error) {
	endpoint := a.TokenURL(creds.TenantID)
	a.Logger.Debug("requesting access token", "endpoint", endpoint, "client_id", creds.ClientID, "scope", creds.Scope)

	resp, err := a.HTTPClient.RestyClient.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetFormData(map[string]string{
			"client_id":     creds.ClientID,
			"client_secret": creds.ClientSecret,
			"scope":         creds.Scope,
			"grant_type":    grantTypeClientCredentials,
		}).
		Post(endpoint)
	if err != nil {
		a.Logger.Error("failed to get access token", "error", err)
		return "", &AuthError{Kind: RequestFailed, Err: err}
	}

	if !resp.IsSuccess() {
		body := string(resp.Body())
		a.Logger.Error("failed to get access token",
			"status_code", resp.StatusCode(),
			"body", body,
		)
		return "", &AuthError{Kind: RequestRejected, StatusCode: resp.StatusCode(), Body: body}
	}

	var body tokenResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		a.Logger.Error("failed to parse token response", "error", err)
		return "", &AuthError{Kind: MalformedResponse, StatusCode: resp.StatusCode(), Err: err}
	}
	if body.AccessToken == nil || *body.AccessToken == "" {
		err := errors.New("access_token field is missing")
		a.Logger.Error("failed to parse token response", "error", err)
		return "", &AuthError{Kind: MalformedResponse, StatusCode: resp.StatusCode(), Err: err}
	}

	a.Logger.Info("access token retrieved")
	return AccessToken(*body.AccessToken), nil
}
