package powerautomate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/flowscan/internal/config"
	"github.com/scan-io-git/flowscan/pkg/shared/httpclient"
)

// newTestClient serves routes keyed by URL path from a mock API.
func newTestClient(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer T", r.Header.Get("Authorization"))
		assert.Equal(t, ClientScope, r.Header.Get("x-ms-client-scope"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, APIVersion, r.URL.Query().Get("api-version"))

		handler, ok := routes[r.URL.EscapedPath()]
		if !ok {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	httpClient, err := httpclient.New(hclog.NewNullLogger(), &config.Config{})
	require.NoError(t, err)
	return New(httpClient, srv.URL+"/environments/", "T", hclog.NewNullLogger())
}

func respond(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestEnvironmentsList(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments": respond(http.StatusOK, `{"value":[{"name":"env-b","location":"europe"},{"name":"env-a"},{"name":"Default-1"}]}`),
	})

	envs, err := c.Environments.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Environment{{Name: "env-b"}, {Name: "env-a"}, {Name: "Default-1"}}, envs)
}

func TestEnvironmentsListEmpty(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments": respond(http.StatusOK, `{"value":[]}`),
	})

	envs, err := c.Environments.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, envs)
}

func TestEnvironmentsListFailed(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments": respond(http.StatusForbidden, `{"error":{"code":"Forbidden"}}`),
	})

	_, err := c.Environments.List(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, EnvironmentListFailed, apiErr.Kind)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, `{"error":{"code":"Forbidden"}}`, apiErr.Body)
}

func TestEnvironmentsListFault(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `not json`},
		{name: "missing value", body: `{"items":[]}`},
		{name: "missing name", body: `{"value":[{"name":"env1"},{"id":"x"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
				"/environments": respond(http.StatusOK, tt.body),
			})

			_, err := c.Environments.List(context.Background())

			var fault *FaultError
			require.ErrorAs(t, err, &fault)
			assert.Equal(t, "list environments", fault.Op)
		})
	}
}

func TestEnvironmentsListNullName(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments": respond(http.StatusOK, `{"value":[{"name":null},{"name":"env1"}]}`),
	})

	envs, err := c.Environments.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Environment{{Name: ""}, {Name: "env1"}}, envs)
}

func TestFlowsList(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments/env1/flows": respond(http.StatusOK, `{"value":[
			{"name":"F1","properties":{"displayName":"Flow One","state":"Started"}},
			{"name":"F2","properties":{"displayName":"Flow Two"}}
		]}`),
	})

	flows, err := c.Flows.List(context.Background(), Environment{Name: "env1"})
	require.NoError(t, err)
	assert.Equal(t, []FlowRecord{
		{FlowID: "F1", DisplayName: "Flow One", LastRunTime: "Unknown"},
		{FlowID: "F2", DisplayName: "Flow Two", LastRunTime: "Unknown"},
	}, flows)
}

func TestFlowsListNullFields(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments/env1/flows": respond(http.StatusOK, `{"value":[
			{"name":"F1","properties":{"displayName":null}},
			{"name":null,"properties":{"displayName":"Orphan"}}
		]}`),
	})

	flows, err := c.Flows.List(context.Background(), Environment{Name: "env1"})
	require.NoError(t, err)
	assert.Equal(t, []FlowRecord{
		{FlowID: "F1", DisplayName: "", LastRunTime: "Unknown"},
		{FlowID: "", DisplayName: "Orphan", LastRunTime: "Unknown"},
	}, flows)
}

func TestFlowsListEscapesEnvironment(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments/a%2Fb/flows": respond(http.StatusOK, `{"value":[]}`),
	})

	flows, err := c.Flows.List(context.Background(), Environment{Name: "a/b"})
	require.NoError(t, err)
	assert.Empty(t, flows)
}

func TestFlowsListFailed(t *testing.T) {
	c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
		"/environments/env2/flows": respond(http.StatusNotFound, `EnvironmentNotFound`),
	})

	_, err := c.Flows.List(context.Background(), Environment{Name: "env2"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, FlowListFailed, apiErr.Kind)
	assert.Equal(t, "env2", apiErr.Environment)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "EnvironmentNotFound", apiErr.Body)
	assert.Contains(t, apiErr.Error(), "env2")
}

func TestFlowsListFault(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{"value":[`},
		{name: "missing name", body: `{"value":[{"properties":{"displayName":"x"}}]}`},
		{name: "missing properties", body: `{"value":[{"name":"F1"}]}`},
		{name: "null properties", body: `{"value":[{"name":"F1","properties":null}]}`},
		{name: "missing displayName", body: `{"value":[{"name":"F1","properties":{}}]}`},
		{name: "non string displayName", body: `{"value":[{"name":"F1","properties":{"displayName":42}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, map[string]func(http.ResponseWriter, *http.Request){
				"/environments/env1/flows": respond(http.StatusOK, tt.body),
			})

			_, err := c.Flows.List(context.Background(), Environment{Name: "env1"})

			var fault *FaultError
			require.ErrorAs(t, err, &fault)
			var apiErr *APIError
			assert.False(t, errors.As(err, &apiErr))
		})
	}
}
