package powerautomate

import (
	"context"
	"fmt"
	"net/url"
)

// flowsService implements the FlowsService interface.
type flowsService struct {
	*service
}

// NewFlowsService initializes a new flows service.
func NewFlowsService(client *Client) FlowsService {
	return &flowsService{service: &service{client}}
}

// List retrieves the flows of one environment and maps them to inventory records.
// The environment name is path-escaped when it is placed in the request URL.
func (fs *flowsService) List(ctx context.Context, env Environment) ([]FlowRecord, error) {
	op := fmt.Sprintf("list flows of environment %s", env.Name)
	fs.client.Logger.Debug("fetching list of flows", "environment", env.Name)

	response, err := fs.client.get(ctx, fmt.Sprintf("/%s/flows", url.PathEscape(env.Name)))
	if err != nil {
		return nil, &FaultError{Op: op, Err: fmt.Errorf("error fetching flows: %w", err)}
	}

	if !response.IsSuccess() {
		return nil, &APIError{
			Kind:        FlowListFailed,
			Environment: env.Name,
			StatusCode:  response.StatusCode(),
			Body:        string(response.Body()),
		}
	}

	resources, err := decodeList[flowResource](op, response)
	if err != nil {
		return nil, err
	}

	result := make([]FlowRecord, 0, len(resources))
	for i, r := range resources {
		if !r.Name.Present {
			return nil, &FaultError{Op: op, Err: fmt.Errorf("flow at index %d has no name", i)}
		}
		if r.Properties == nil || !r.Properties.DisplayName.Present {
			return nil, &FaultError{Op: op, Err: fmt.Errorf("flow %s has no properties.displayName", r.Name.Value)}
		}
		result = append(result, FlowRecord{
			FlowID:      r.Name.Value,
			DisplayName: r.Properties.DisplayName.Value,
			LastRunTime: LastRunTimeUnknown,
		})
	}

	fs.client.Logger.Debug("successfully fetched flows",
		"environment", env.Name,
		"totalFlows", len(result),
	)
	return result, nil
}
