package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/flowscan/internal/auth"
	"github.com/scan-io-git/flowscan/internal/config"
	"github.com/scan-io-git/flowscan/internal/powerautomate"
)

// State is a step of the run. Transitions only move forward.
type State string

const (
	StateInit             State = "init"
	StateAuthenticated    State = "authenticated"
	StateEnumerating      State = "enumerating"
	StateDone             State = "done"
	StateFailedAuth       State = "failed(auth)"
	StateFailedUnexpected State = "failed(unexpected)"
)

// Failed reports whether the run ended in a failure state.
func (s State) Failed() bool {
	return s == StateFailedAuth || s == StateFailedUnexpected
}

// TokenAcquirer exchanges credentials for an access token.
type TokenAcquirer interface {
	AcquireToken(ctx context.Context, creds config.Credentials) (auth.AccessToken, error)
}

// Connector builds an API client bound to an access token.
type Connector func(token auth.AccessToken) *powerautomate.Client

// Inventory is the ordered list of flows across all environments.
type Inventory []powerautomate.FlowRecord

// Result is the outcome of one run. Absorbed holds the listing failures that did not stop the run.
type Result struct {
	RunID        string
	State        State
	Environments []powerautomate.Environment
	Inventory    Inventory
	Absorbed     []error
}

// Runner drives a single inventory run.
type Runner struct {
	credentials config.Credentials
	tokens      TokenAcquirer
	connect     Connector
	logger      hclog.Logger
}

// NewRunner creates a Runner. Credentials are copied and never modified.
func NewRunner(creds config.Credentials, tokens TokenAcquirer, connect Connector, logger hclog.Logger) *Runner {
	return &Runner{
		credentials: creds,
		tokens:      tokens,
		connect:     connect,
		logger:      logger,
	}
}

// Run acquires a token, lists environments and collects the flows of each environment in order.
// The returned Result is never nil. A token request rejected by the identity provider ends the
// run in StateFailedAuth without an error; any other non-nil error is a fault that stopped the run.
func (r *Runner) Run(ctx context.Context) (result *Result, err error) {
	result = &Result{
		RunID:     uuid.NewString(),
		State:     StateInit,
		Inventory: Inventory{},
	}
	logger := r.logger.With("run_id", result.RunID)

	defer func() {
		if rec := recover(); rec != nil {
			result.State = StateFailedUnexpected
			err = fmt.Errorf("unexpected fault: %v", rec)
			logger.Error("inventory run failed", "error", err)
		}
	}()

	token, err := r.tokens.AcquireToken(ctx, r.credentials)
	if err != nil {
		result.State = StateFailedAuth
		logger.Error("failed to retrieve access token", "error", err)
		var authErr *auth.AuthError
		if errors.As(err, &authErr) && authErr.Kind == auth.RequestRejected {
			result.Absorbed = append(result.Absorbed, authErr)
			return result, nil
		}
		return result, fmt.Errorf("failed to retrieve access token: %w", err)
	}
	result.State = StateAuthenticated

	api := r.connect(token)

	envs, err := api.Environments.List(ctx)
	if err != nil {
		var apiErr *powerautomate.APIError
		if errors.As(err, &apiErr) {
			// The run still finishes with an empty inventory.
			logger.Error("failed to retrieve environments",
				"status_code", apiErr.StatusCode,
				"body", apiErr.Body,
			)
			result.Absorbed = append(result.Absorbed, apiErr)
			result.State = StateDone
			return result, nil
		}
		return r.fail(logger, result, err)
	}
	result.Environments = envs
	result.State = StateEnumerating

	for _, env := range envs {
		logger.Info("processing environment", "environment", env.Name)

		flows, err := api.Flows.List(ctx, env)
		if err != nil {
			var apiErr *powerautomate.APIError
			if errors.As(err, &apiErr) && apiErr.Kind == powerautomate.FlowListFailed {
				logger.Error("failed to retrieve flows for environment",
					"environment", env.Name,
					"status_code", apiErr.StatusCode,
					"body", apiErr.Body,
				)
				result.Absorbed = append(result.Absorbed, apiErr)
				continue
			}
			return r.fail(logger, result, err)
		}
		result.Inventory = append(result.Inventory, flows...)
	}

	result.State = StateDone
	logger.Debug("inventory run completed",
		"environments", len(result.Environments),
		"flows", len(result.Inventory),
	)
	return result, nil
}

func (r *Runner) fail(logger hclog.Logger, result *Result, err error) (*Result, error) {
	result.State = StateFailedUnexpected
	logger.Error("inventory run failed", "error", err)
	return result, fmt.Errorf("unexpected fault: %w", err)
}

// Emit writes every record to the logger, one line per flow, in inventory order.
func Emit(logger hclog.Logger, inv Inventory) {
	logger.Info("power automate flows inventory", "total_flows", len(inv))
	for _, flow := range inv {
		logger.Info("flow",
			"flow_name", flow.DisplayName,
			"flow_id", flow.FlowID,
			"last_run_time", flow.LastRunTime,
		)
	}
}

// MarshalIndent renders the inventory as an indented JSON array.
func (inv Inventory) MarshalIndent() ([]byte, error) {
	if inv == nil {
		inv = Inventory{}
	}
	return json.MarshalIndent([]powerautomate.FlowRecord(inv), "", "    ")
}
