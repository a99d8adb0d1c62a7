package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/flowscan/internal/config"
	"github.com/scan-io-git/flowscan/pkg/shared/httpclient"
)

var testCreds = config.Credentials{
	TenantID:     "contoso",
	ClientID:     "app-id",
	ClientSecret: "app-secret",
	Scope:        config.DefaultScope,
}

func newTestAcquirer(t *testing.T, handler http.HandlerFunc) *Acquirer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := httpclient.New(hclog.NewNullLogger(), &config.Config{})
	require.NoError(t, err)
	return NewAcquirer(client, srv.URL+"/", hclog.NewNullLogger())
}

func TestAcquireToken(t *testing.T) {
	a := newTestAcquirer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contoso/oauth2/v2.0/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "app-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, config.DefaultScope, r.PostForm.Get("scope"))
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"Bearer","expires_in":3599,"access_token":"T"}`))
	})

	token, err := a.AcquireToken(context.Background(), testCreds)
	require.NoError(t, err)
	assert.Equal(t, AccessToken("T"), token)
}

func TestAcquireTokenRejected(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError} {
		status := status
		t.Run(http.StatusText(status), func(t *testing.T) {
			a := newTestAcquirer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
			})

			token, err := a.AcquireToken(context.Background(), testCreds)
			assert.Empty(t, token)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, RequestRejected, authErr.Kind)
			assert.Equal(t, status, authErr.StatusCode)
			assert.Equal(t, `{"error":"invalid_client"}`, authErr.Body)
		})
	}
}

func TestAcquireTokenMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>oops</html>`},
		{name: "missing access_token", body: `{"token_type":"Bearer"}`},
		{name: "empty access_token", body: `{"access_token":""}`},
		{name: "null access_token", body: `{"access_token":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAcquirer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := a.AcquireToken(context.Background(), testCreds)

			var authErr *AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, MalformedResponse, authErr.Kind)
		})
	}
}

func TestAcquireTokenRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client, err := httpclient.New(hclog.NewNullLogger(), &config.Config{})
	require.NoError(t, err)
	a := NewAcquirer(client, srv.URL, hclog.NewNullLogger())

	_, err = a.AcquireToken(context.Background(), testCreds)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, RequestFailed, authErr.Kind)
	assert.Error(t, authErr.Unwrap())
}

func TestTokenURL(t *testing.T) {
	a := NewAcquirer(nil, config.DefaultAuthority, hclog.NewNullLogger())
	assert.Equal(t,
		"https://login.microsoftonline.com/contoso.onmicrosoft.com/oauth2/v2.0/token",
		a.TokenURL("contoso.onmicrosoft.com"),
	)
}
